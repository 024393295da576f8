// Package notify implements the notification pipeline: rendering
// listings into Telegram messages, the bounded listing cache, and the
// batch delivery dispatcher.
package notify

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"earnbot/internal/model"
)

const listingBaseURL = "https://earn.superteam.fun/listings/"

// Callback actions carried in notification buttons.
const (
	ActionSave    = "save"
	ActionDismiss = "dismiss"
)

// Message is a rendered notification: text plus its inline keyboard.
type Message struct {
	Text     string
	Keyboard tgbotapi.InlineKeyboardMarkup
}

// ListingURL returns the canonical marketplace URL for a listing.
func ListingURL(l model.Listing) string {
	return listingBaseURL + l.Slug + "?utm_source=telegrambot"
}

// Render formats a listing as a notification message with save/dismiss
// buttons and a link to the listing page. Rendering is deterministic:
// the same listing always yields the same message.
func Render(l model.Listing) Message {
	kind := "Bounty"
	if l.Type == model.TypeProject {
		kind = "Project"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚀 *New %s!*\n\n", kind)
	fmt.Fprintf(&b, "*%s*\n\n", l.Title)
	fmt.Fprintf(&b, "💰 *Reward:* %s\n", RewardText(l.Compensation))
	fmt.Fprintf(&b, "🏢 *Sponsor:* %s\n", l.Sponsor)
	fmt.Fprintf(&b, "🎯 *Skills:* %s\n", skillsText(l.Skills))
	fmt.Fprintf(&b, "⏰ *Deadline:* %s\n", deadlineText(l))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Save to Library", ActionSave+":"+l.ID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Dismiss", ActionDismiss+":"+l.ID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Details", ListingURL(l)),
		),
	)

	return Message{Text: b.String(), Keyboard: keyboard}
}

// RewardText derives the reward line for a compensation. Malformed
// shapes (e.g. a fixed compensation without a USD value) fall back to
// "Amount TBD" rather than failing.
func RewardText(c model.Compensation) string {
	switch {
	case c.Kind == model.CompVariable:
		return "Variable Comp"
	case c.Kind == model.CompRange && c.MinAsk > 0 && c.MaxAsk > 0:
		return fmt.Sprintf("$%s - $%s", formatAmount(c.MinAsk), formatAmount(c.MaxAsk))
	default:
		usd, ok := c.USD()
		if !ok {
			return "Amount TBD"
		}
		amount := c.RewardAmount
		if amount == 0 {
			amount = usd
		}
		token := ""
		if c.Token != "" {
			token = " " + c.Token
		}
		return fmt.Sprintf("%s%s ($%s)", formatAmount(amount), token, formatAmount(usd))
	}
}

func skillsText(skills []string) string {
	if len(skills) == 0 {
		return "Not specified"
	}
	return strings.Join(skills, ", ")
}

func deadlineText(l model.Listing) string {
	if l.Deadline == nil {
		return "No deadline specified"
	}
	return l.Deadline.Format("Jan 2, 2006")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
