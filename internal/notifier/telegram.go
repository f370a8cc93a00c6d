package notifier

import (
	"fmt"

	"gihanotis/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram pushes coordination events to an admin chat. A nil *Telegram is
// valid and does nothing, so callers never need to guard their calls.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegram creates the notifier, or (nil, nil) when disabled in config.
func NewTelegram(cfg *config.Config, logger *zap.Logger) (*Telegram, error) {
	if !cfg.Telegram.Enabled {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram notifier enabled", zap.String("bot", bot.Self.UserName))
	return &Telegram{
		bot:    bot,
		chatID: cfg.Telegram.ChatID,
		logger: logger,
	}, nil
}

// ResponseSubmitted notifies admins that the public submitted a new offer.
func (t *Telegram) ResponseSubmitted(requestID int64, quantity int, location string) {
	t.send(fmt.Sprintf("New response for request #%d: %d offered at %s", requestID, quantity, location))
}

// RequestFulfilled notifies admins that a request's remaining need hit zero.
func (t *Telegram) RequestFulfilled(requestID int64) {
	t.send(fmt.Sprintf("Request #%d is fully met", requestID))
}

func (t *Telegram) send(text string) {
	if t == nil {
		return
	}

	// Fire and forget; a slow Telegram API must not hold up the request.
	go func() {
		msg := tgbotapi.NewMessage(t.chatID, text)
		if _, err := t.bot.Send(msg); err != nil {
			t.logger.Error("Failed to send Telegram notification", zap.Error(err))
		}
	}()
}
