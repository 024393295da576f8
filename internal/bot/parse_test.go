package bot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseUSDArg(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    *float64
		wantErr bool
	}{
		{name: "plain number", args: "100", want: usd(100)},
		{name: "decimal", args: "99.5", want: usd(99.5)},
		{name: "dollar prefix", args: "$2500", want: usd(2500)},
		{name: "off clears", args: "off", want: nil},
		{name: "none clears", args: "none", want: nil},
		{name: "empty", args: "", wantErr: true},
		{name: "negative", args: "-5", wantErr: true},
		{name: "zero", args: "0", wantErr: true},
		{name: "garbage", args: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUSDArg(tt.args)
			gotErr := err != nil
			if diff := cmp.Diff(tt.wantErr, gotErr); diff != "" {
				t.Fatalf("error mismatch (-want +got):\n%s\nerr: %v", diff, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    bool
		wantErr bool
	}{
		{name: "on", args: "on", want: true},
		{name: "off", args: "off", want: false},
		{name: "yes", args: "YES", want: true},
		{name: "whitespace", args: "  off  ", want: false},
		{name: "empty", args: "", wantErr: true},
		{name: "garbage", args: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOnOff(tt.args)
			gotErr := err != nil
			if diff := cmp.Diff(tt.wantErr, gotErr); diff != "" {
				t.Fatalf("error mismatch (-want +got):\n%s\nerr: %v", diff, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSkillsArg(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []string
	}{
		{name: "single", args: "React", want: []string{"React"}},
		{name: "list", args: "React,Rust,Solana", want: []string{"React", "Rust", "Solana"}},
		{name: "spaces trimmed", args: "React , Rust", want: []string{"React", "Rust"}},
		{name: "skill with slash", args: "UI/UX Design,Mobile", want: []string{"UI/UX Design", "Mobile"}},
		{name: "clear", args: "clear", want: nil},
		{name: "empty", args: "", want: nil},
		{name: "stray commas", args: ",React,,", want: []string{"React"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseSkillsArg(tt.args)); diff != "" {
				t.Errorf("ParseSkillsArg() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
