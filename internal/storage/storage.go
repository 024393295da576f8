// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"earnbot/internal/model"
)

// Storage is the interface for all persistence operations.
type Storage interface {
	UpsertUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, telegramID int64) (*model.User, error)
	SetUserActive(ctx context.Context, telegramID int64, active bool) error

	// GetPreferences returns nil (without error) when the user has no
	// preferences row yet.
	GetPreferences(ctx context.Context, userID int64) (*model.UserPreferences, error)
	UpsertPreferences(ctx context.Context, prefs *model.UserPreferences) error

	// ListNotifiableUsers returns all active users; Preferences is nil
	// for users who never configured any.
	ListNotifiableUsers(ctx context.Context) ([]model.NotifiableUser, error)

	// SaveListing is idempotent per (user, listing) pair.
	SaveListing(ctx context.Context, entry *model.SavedListing) error
	ListSavedListings(ctx context.Context, userID int64) ([]model.SavedListing, error)
	DeleteExpiredSaved(ctx context.Context) (int64, error)

	Close() error
}
