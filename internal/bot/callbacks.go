package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"earnbot/internal/model"
	"earnbot/internal/notify"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	parts := strings.SplitN(cb.Data, ":", 2)
	if len(parts) != 2 {
		b.answerCallback(cb.ID, "")
		return
	}
	action, listingID := parts[0], parts[1]

	b.log.Info("callback",
		"action", action,
		"listing_id", listingID,
		"user_id", cb.From.ID,
		"username", cb.From.UserName,
	)

	switch action {
	case notify.ActionSave:
		b.handleSave(ctx, cb, listingID)
	case notify.ActionDismiss:
		b.handleDismiss(cb)
	default:
		b.answerCallback(cb.ID, "")
	}
}

// handleSave persists a notified listing into the user's library. The
// listing data comes from the in-memory cache; if it was evicted the
// user gets a soft error, not a crash.
func (b *Bot) handleSave(ctx context.Context, cb *tgbotapi.CallbackQuery, listingID string) {
	listing, ok := b.cache.Get(listingID)
	if !ok {
		b.answerCallback(cb.ID, "This listing is no longer available to save.")
		return
	}

	entry := &model.SavedListing{
		UserID:     cb.From.ID,
		ListingID:  listing.ID,
		Title:      listing.Title,
		Slug:       listing.Slug,
		Sponsor:    listing.Sponsor,
		RewardText: notify.RewardText(listing.Compensation),
		Deadline:   listing.Deadline,
		URL:        notify.ListingURL(listing),
	}
	if err := b.store.SaveListing(ctx, entry); err != nil {
		b.log.Error("save listing", "user_id", cb.From.ID, "listing_id", listingID, "error", err)
		b.answerCallback(cb.ID, "Could not save the listing. Try again later.")
		return
	}

	b.answerCallback(cb.ID, "Saved to your library 💾")
}

// handleDismiss removes the notification message from the chat.
func (b *Bot) handleDismiss(cb *tgbotapi.CallbackQuery) {
	b.answerCallback(cb.ID, "")
	if cb.Message == nil {
		return
	}
	del := tgbotapi.NewDeleteMessage(cb.Message.Chat.ID, cb.Message.MessageID)
	if _, err := b.api.Send(del); err != nil {
		b.log.Error("delete message", "chat_id", cb.Message.Chat.ID, "error", err)
	}
}

func (b *Bot) answerCallback(id, text string) {
	callback := tgbotapi.NewCallback(id, text)
	if _, err := b.api.Send(callback); err != nil {
		b.log.Error("send callback answer", "error", err)
	}
}
