// Package bot implements the Telegram command and callback surface.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"earnbot/internal/notify"
	"earnbot/internal/storage"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// DispatchRunner triggers one notification batch. Satisfied by
// notify.Dispatcher; mocked in tests.
type DispatchRunner interface {
	Run(ctx context.Context) (notify.RunSummary, error)
}

// Bot handles user commands, notification callbacks, and outgoing
// notification delivery.
type Bot struct {
	api        telegramAPI
	store      storage.Storage
	cache      *notify.Cache
	dispatcher DispatchRunner
	log        *slog.Logger
}

// New creates a Bot with the given Telegram token, storage, and
// listing cache. The dispatcher is attached later via SetDispatcher
// because it needs the bot as its sender.
func New(token string, store storage.Storage, cache *notify.Cache, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:   api,
		store: store,
		cache: cache,
		log:   log,
	}, nil
}

// SetDispatcher attaches the dispatcher used by /check.
func (b *Bot) SetDispatcher(d DispatchRunner) {
	b.dispatcher = d
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

// SendListing delivers a rendered notification to a chat. It
// implements the dispatcher's Sender interface; the error covers this
// single delivery only.
func (b *Bot) SendListing(chatID int64, msg notify.Message) error {
	m := tgbotapi.NewMessage(chatID, msg.Text)
	m.ParseMode = tgbotapi.ModeMarkdown
	m.DisableWebPagePreview = true
	m.ReplyMarkup = msg.Keyboard
	if _, err := b.api.Send(m); err != nil {
		return fmt.Errorf("send listing: %w", err)
	}
	return nil
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.handleHelp(chatID)
	case "settings":
		b.handleSettings(ctx, chatID)
	case "min":
		b.handleMin(ctx, chatID, args)
	case "max":
		b.handleMax(ctx, chatID, args)
	case "bounties":
		b.handleTypeFlag(ctx, chatID, args, "bounties")
	case "projects":
		b.handleTypeFlag(ctx, chatID, args, "projects")
	case "skills":
		b.handleSkills(ctx, chatID, args)
	case "library":
		b.handleLibrary(ctx, chatID)
	case "clean":
		b.handleClean(ctx, chatID)
	case "pause":
		b.handlePause(ctx, chatID)
	case "resume":
		b.handleResume(ctx, chatID)
	case "check":
		b.handleCheck(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}
