package notify

import (
	"context"
	"fmt"
	"log/slog"

	"earnbot/internal/eligibility"
	"earnbot/internal/model"
)

// ListingSource supplies newly published listings, already filtered by
// the staleness window.
type ListingSource interface {
	Fetch(ctx context.Context) ([]model.Listing, error)
}

// UserSource supplies the active users and their preferences.
type UserSource interface {
	ListNotifiableUsers(ctx context.Context) ([]model.NotifiableUser, error)
}

// Sender delivers a rendered message to a chat. A returned error
// applies to that single delivery only.
type Sender interface {
	SendListing(chatID int64, msg Message) error
}

// RunSummary reports the outcome of one dispatch batch.
type RunSummary struct {
	ListingsProcessed int
	UsersConsidered   int
	NotificationsSent int
}

// Dispatcher runs the notification batch: for each new listing it
// evaluates every user, renders the message once, delivers it to each
// eligible user, and keeps the listing cache populated for later save
// callbacks.
//
// A batch is strictly sequential; the limiter's pause between sends is
// backpressure against Telegram's rate limits. One user's delivery
// failure never affects other users or listings. There is no cross-run
// "already sent" ledger — the source is expected to return each
// listing only once across runs via its staleness window.
type Dispatcher struct {
	source  ListingSource
	users   UserSource
	sender  Sender
	cache   *Cache
	limiter Limiter
	log     *slog.Logger
}

// NewDispatcher wires a dispatcher. The cache is owned by the
// dispatcher for writes; readers share the same instance.
func NewDispatcher(source ListingSource, users UserSource, sender Sender, cache *Cache, limiter Limiter, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		source:  source,
		users:   users,
		sender:  sender,
		cache:   cache,
		limiter: limiter,
		log:     log,
	}
}

// Run executes one dispatch batch. Failure to pull listings or users
// aborts the run; everything past that point is best-effort.
func (d *Dispatcher) Run(ctx context.Context) (RunSummary, error) {
	listings, err := d.source.Fetch(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("fetch listings: %w", err)
	}

	users, err := d.users.ListNotifiableUsers(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list notifiable users: %w", err)
	}

	summary := RunSummary{
		ListingsProcessed: len(listings),
		UsersConsidered:   len(users),
	}

	if len(listings) == 0 {
		d.log.Info("no new listings to process")
		return summary, nil
	}

	d.log.Info("processing listings", "listings", len(listings), "users", len(users))

	for _, listing := range listings {
		d.cache.Put(listing)
		msg := Render(listing)

		sent := 0
		for _, user := range users {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			if user.Preferences == nil {
				d.log.Debug("user has no preferences, skipping", "user_id", user.TelegramID)
				continue
			}
			if !eligibility.IsEligible(listing, *user.Preferences) {
				d.log.Debug("user not eligible", "user_id", user.TelegramID, "listing_id", listing.ID)
				continue
			}

			if err := d.sender.SendListing(user.TelegramID, msg); err != nil {
				d.log.Error("send notification",
					"user_id", user.TelegramID,
					"listing_id", listing.ID,
					"error", err,
				)
			} else {
				sent++
			}
			d.limiter.Wait(ctx)
		}

		if sent > 0 {
			d.log.Info("listing dispatched", "listing_id", listing.ID, "title", listing.Title, "sent", sent)
		} else {
			d.log.Debug("no eligible users", "listing_id", listing.ID, "title", listing.Title)
		}
		summary.NotificationsSent += sent
	}

	d.cache.Compact()

	d.log.Info("dispatch complete",
		"listings", summary.ListingsProcessed,
		"users", summary.UsersConsidered,
		"sent", summary.NotificationsSent,
	)
	return summary, nil
}
