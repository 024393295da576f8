package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"earnbot/internal/model"
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	user := &model.User{TelegramID: chatID}
	if msg.From != nil {
		user.Username = msg.From.UserName
		user.FirstName = msg.From.FirstName
	}
	if err := b.store.UpsertUser(ctx, user); err != nil {
		b.log.Error("upsert user", "chat_id", chatID, "error", err)
	}

	b.reply(chatID, `Welcome to Earn Notify Bot!

Get notified about new bounties and projects that match your preferences.

Quick start:
1. /min 100 — set a minimum reward in USD
2. /skills React,Rust — pick your skills
3. Save interesting listings with the 💾 button

Use /help for the full command reference.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Preferences:
/settings — show your current filters
/min <usd|off> — minimum reward in USD
/max <usd|off> — maximum reward in USD
/bounties on|off — receive bounty listings
/projects on|off — receive project listings
/skills <a,b,c> — only listings matching these skills
/skills clear — remove the skill filter

Library:
/library — show your saved listings
/clean — remove expired saved listings

Account:
/pause — stop notifications
/resume — resume notifications
/check — check for new listings now`)
}

func (b *Bot) handleSettings(ctx context.Context, chatID int64) {
	prefs, err := b.store.GetPreferences(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, FormatPreferences(prefs))
}

// loadPrefs returns the user's preferences, or the defaults (both
// listing types on, no bounds, no skills) when none are stored yet.
func (b *Bot) loadPrefs(ctx context.Context, chatID int64) (*model.UserPreferences, error) {
	prefs, err := b.store.GetPreferences(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = &model.UserPreferences{UserID: chatID, Bounties: true, Projects: true}
	}
	return prefs, nil
}

func (b *Bot) handleMin(ctx context.Context, chatID int64, args string) {
	value, err := ParseUSDArg(args)
	if err != nil {
		b.reply(chatID, "Usage: /min <usd amount> or /min off")
		return
	}

	prefs, err := b.loadPrefs(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	if value != nil && prefs.MaxUSDValue != nil && *value >= *prefs.MaxUSDValue {
		b.reply(chatID, fmt.Sprintf("Minimum must be below your maximum of $%.0f.", *prefs.MaxUSDValue))
		return
	}

	prefs.MinUSDValue = value
	if err := b.store.UpsertPreferences(ctx, prefs); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	if value == nil {
		b.reply(chatID, "Minimum reward filter removed.")
	} else {
		b.reply(chatID, fmt.Sprintf("Minimum reward set to $%.0f.", *value))
	}
}

func (b *Bot) handleMax(ctx context.Context, chatID int64, args string) {
	value, err := ParseUSDArg(args)
	if err != nil {
		b.reply(chatID, "Usage: /max <usd amount> or /max off")
		return
	}

	prefs, err := b.loadPrefs(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	if value != nil && prefs.MinUSDValue != nil && *value <= *prefs.MinUSDValue {
		b.reply(chatID, fmt.Sprintf("Maximum must be above your minimum of $%.0f.", *prefs.MinUSDValue))
		return
	}

	prefs.MaxUSDValue = value
	if err := b.store.UpsertPreferences(ctx, prefs); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	if value == nil {
		b.reply(chatID, "Maximum reward filter removed.")
	} else {
		b.reply(chatID, fmt.Sprintf("Maximum reward set to $%.0f.", *value))
	}
}

func (b *Bot) handleTypeFlag(ctx context.Context, chatID int64, args, kind string) {
	on, err := ParseOnOff(args)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Usage: /%s on|off", kind))
		return
	}

	prefs, err := b.loadPrefs(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if kind == "bounties" {
		prefs.Bounties = on
	} else {
		prefs.Projects = on
	}
	if !prefs.Bounties && !prefs.Projects {
		b.reply(chatID, "At least one listing type must stay enabled. Use /pause to stop all notifications.")
		return
	}

	if err := b.store.UpsertPreferences(ctx, prefs); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	state := "off"
	if on {
		state = "on"
	}
	b.reply(chatID, fmt.Sprintf("Notifications for %s are now %s.", kind, state))
}

func (b *Bot) handleSkills(ctx context.Context, chatID int64, args string) {
	if args == "" {
		prefs, err := b.loadPrefs(ctx, chatID)
		if err != nil {
			b.reply(chatID, fmt.Sprintf("Error: %v", err))
			return
		}
		b.reply(chatID, FormatSkills(prefs.Skills)+"\n\nUsage: /skills React,Rust or /skills clear")
		return
	}

	prefs, err := b.loadPrefs(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	skills := ParseSkillsArg(args)
	prefs.Skills = skills
	if err := b.store.UpsertPreferences(ctx, prefs); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if len(skills) == 0 {
		b.reply(chatID, "Skill filter removed — you'll receive listings for any skill.")
	} else {
		b.reply(chatID, FormatSkills(skills))
	}
}

func (b *Bot) handleLibrary(ctx context.Context, chatID int64) {
	saved, err := b.store.ListSavedListings(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.replyMarkdown(chatID, FormatLibrary(saved))
}

func (b *Bot) handleClean(ctx context.Context, chatID int64) {
	count, err := b.store.DeleteExpiredSaved(ctx)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	if count == 0 {
		b.reply(chatID, "No expired listings found.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Removed %d expired listing(s).", count))
}

func (b *Bot) handlePause(ctx context.Context, chatID int64) {
	if err := b.store.SetUserActive(ctx, chatID, false); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, "Notifications paused. Use /resume to turn them back on.")
}

func (b *Bot) handleResume(ctx context.Context, chatID int64) {
	if err := b.store.SetUserActive(ctx, chatID, true); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, "Notifications resumed.")
}

func (b *Bot) handleCheck(ctx context.Context, chatID int64) {
	if b.dispatcher == nil {
		b.reply(chatID, "Checking is not available right now.")
		return
	}

	summary, err := b.dispatcher.Run(ctx)
	if err != nil {
		b.log.Error("manual dispatch", "chat_id", chatID, "error", err)
		b.reply(chatID, "Check failed — the marketplace may be unavailable. Try again later.")
		return
	}
	b.reply(chatID, FormatRunSummary(summary))
}
