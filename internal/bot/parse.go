package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseUSDArg parses a USD bound argument. "off" and "none" clear the
// bound (nil result); otherwise the value must be a positive number.
func ParseUSDArg(args string) (*float64, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(args), "$"))
	if s == "" {
		return nil, fmt.Errorf("amount is required")
	}
	switch strings.ToLower(s) {
	case "off", "none":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return &v, nil
}

// ParseOnOff parses an on/off toggle argument.
func ParseOnOff(args string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "on", "yes", "enable":
		return true, nil
	case "off", "no", "disable":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", args)
}

// ParseSkillsArg parses a comma-separated skill list. "clear" and
// "none" return an empty list (no skill filter).
func ParseSkillsArg(args string) []string {
	s := strings.TrimSpace(args)
	switch strings.ToLower(s) {
	case "", "clear", "none":
		return nil
	}
	var skills []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		skills = append(skills, part)
	}
	return skills
}
