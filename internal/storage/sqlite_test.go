package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"earnbot/internal/model"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func usd(v float64) *float64 { return &v }

func TestUpsertUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.UpsertUser(ctx, &model.User{TelegramID: 100, Username: "alice", FirstName: "Alice"}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	u, err := s.GetUser(ctx, 100)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if diff := cmp.Diff("alice", u.Username); diff != "" {
		t.Errorf("username mismatch (-want +got):\n%s", diff)
	}
	if !u.IsActive {
		t.Error("new user should be active")
	}

	// Second upsert refreshes profile fields, keeps the row.
	if err := s.UpsertUser(ctx, &model.User{TelegramID: 100, Username: "alice2", FirstName: "Alice"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	u, err = s.GetUser(ctx, 100)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if diff := cmp.Diff("alice2", u.Username); diff != "" {
		t.Errorf("username after upsert mismatch (-want +got):\n%s", diff)
	}
}

func TestSetUserActive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.UpsertUser(ctx, &model.User{TelegramID: 1}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	if err := s.SetUserActive(ctx, 1, false); err != nil {
		t.Fatalf("set inactive: %v", err)
	}

	u, err := s.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.IsActive {
		t.Error("user should be inactive")
	}

	users, err := s.ListNotifiableUsers(ctx)
	if err != nil {
		t.Fatalf("list notifiable: %v", err)
	}
	if diff := cmp.Diff(0, len(users)); diff != "" {
		t.Errorf("inactive user should not be notifiable (-want +got):\n%s", diff)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.UpsertUser(ctx, &model.User{TelegramID: 7}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	got, err := s.GetPreferences(ctx, 7)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil preferences before first upsert, got %+v", got)
	}

	want := &model.UserPreferences{
		UserID:      7,
		MinUSDValue: usd(100),
		MaxUSDValue: usd(3000),
		Bounties:    true,
		Projects:    false,
		Skills:      []string{"React", "Javascript"},
	}
	if err := s.UpsertPreferences(ctx, want); err != nil {
		t.Fatalf("upsert preferences: %v", err)
	}

	got, err = s.GetPreferences(ctx, 7)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}

	// Clearing the bounds persists as nil.
	want.MinUSDValue = nil
	want.Skills = nil
	if err := s.UpsertPreferences(ctx, want); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = s.GetPreferences(ctx, 7)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("preferences after clear mismatch (-want +got):\n%s", diff)
	}
}

func TestListNotifiableUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.UpsertUser(ctx, &model.User{TelegramID: 1, FirstName: "With"}); err != nil {
		t.Fatalf("upsert user 1: %v", err)
	}
	if err := s.UpsertUser(ctx, &model.User{TelegramID: 2, FirstName: "Without"}); err != nil {
		t.Fatalf("upsert user 2: %v", err)
	}
	if err := s.UpsertPreferences(ctx, &model.UserPreferences{
		UserID: 1, Bounties: true, Projects: true, Skills: []string{"Rust"},
	}); err != nil {
		t.Fatalf("upsert preferences: %v", err)
	}

	users, err := s.ListNotifiableUsers(ctx)
	if err != nil {
		t.Fatalf("list notifiable: %v", err)
	}
	if diff := cmp.Diff(2, len(users)); diff != "" {
		t.Fatalf("user count mismatch (-want +got):\n%s", diff)
	}

	if users[0].Preferences == nil {
		t.Fatal("user 1 should have preferences attached")
	}
	if diff := cmp.Diff([]string{"Rust"}, users[0].Preferences.Skills); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}
	if users[1].Preferences != nil {
		t.Errorf("user 2 should have nil preferences, got %+v", users[1].Preferences)
	}
}

func TestLibrarySaveAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	future := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	entry := &model.SavedListing{
		UserID:     9,
		ListingID:  "l1",
		Title:      "Build a React Dashboard",
		Slug:       "react-dashboard",
		Sponsor:    "SuperteamDAO",
		RewardText: "2500 USDC ($2500)",
		Deadline:   &future,
		URL:        "https://earn.superteam.fun/listings/react-dashboard?utm_source=telegrambot",
	}
	if err := s.SaveListing(ctx, entry); err != nil {
		t.Fatalf("save listing: %v", err)
	}
	// Saving twice must not duplicate.
	if err := s.SaveListing(ctx, entry); err != nil {
		t.Fatalf("save listing again: %v", err)
	}

	saved, err := s.ListSavedListings(ctx, 9)
	if err != nil {
		t.Fatalf("list saved: %v", err)
	}
	if diff := cmp.Diff(1, len(saved)); diff != "" {
		t.Fatalf("saved count mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("Build a React Dashboard", saved[0].Title); diff != "" {
		t.Errorf("title mismatch (-want +got):\n%s", diff)
	}

	// Another user's library is separate.
	other, err := s.ListSavedListings(ctx, 10)
	if err != nil {
		t.Fatalf("list saved other: %v", err)
	}
	if diff := cmp.Diff(0, len(other)); diff != "" {
		t.Errorf("other user's library should be empty (-want +got):\n%s", diff)
	}
}

func TestLibraryOrderAndExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	soon := now.Add(12 * time.Hour)
	later := now.Add(96 * time.Hour)
	longGone := now.Add(-48 * time.Hour)

	for _, e := range []*model.SavedListing{
		{UserID: 1, ListingID: "later", Title: "Later", Deadline: &later},
		{UserID: 1, ListingID: "soon", Title: "Soon", Deadline: &soon},
		{UserID: 1, ListingID: "none", Title: "NoDeadline"},
		{UserID: 1, ListingID: "gone", Title: "Gone", Deadline: &longGone},
	} {
		if err := s.SaveListing(ctx, e); err != nil {
			t.Fatalf("save %s: %v", e.ListingID, err)
		}
	}

	saved, err := s.ListSavedListings(ctx, 1)
	if err != nil {
		t.Fatalf("list saved: %v", err)
	}

	var ids []string
	for _, e := range saved {
		ids = append(ids, e.ListingID)
	}
	// Expired entry hidden, soonest deadline first, no-deadline last.
	if diff := cmp.Diff([]string{"soon", "later", "none"}, ids); diff != "" {
		t.Errorf("library order mismatch (-want +got):\n%s", diff)
	}

	count, err := s.DeleteExpiredSaved(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if diff := cmp.Diff(int64(1), count); diff != "" {
		t.Errorf("expired count mismatch (-want +got):\n%s", diff)
	}
}
