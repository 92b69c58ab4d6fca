// Package telegram is the Telegram webhook adapter.
package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mymmrac/telego"
	"github.com/sirupsen/logrus"
)

// API is the subset of the Bot API used by the adapter; *telego.Bot implements it.
type API interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
	SetWebhook(ctx context.Context, params *telego.SetWebhookParams) error
	GetWebhookInfo(ctx context.Context) (*telego.WebhookInfo, error)
}

var _ API = (*telego.Bot)(nil)

// NewAPI creates a Bot API client for token.
func NewAPI(token string, logger *logrus.Logger) (*telego.Bot, error) {
	opts := []telego.BotOption{}
	if logger != nil {
		opts = append(opts, telego.WithLogger(logger))
	}
	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	return bot, nil
}

// ConversationID namespaces a Telegram chat id.
func ConversationID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
