package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"transbot/internal/domain"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
	"transbot/pkg/markup"
)

// SecretHeader carries the secret registered with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

const maxUpdateBytes = 1 << 20

var webhookUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "transbot_webhook_updates_total",
		Help: "Telegram webhook updates by outcome",
	},
	[]string{"outcome"},
)

// WebhookHandler receives Telegram updates and replies through the Bot API.
type WebhookHandler struct {
	api        API
	useCase    input.MessageUseCase
	translator output.T
	secret     string
	logger     *logrus.Logger
}

// NewWebhookHandler creates a WebhookHandler. secret may be empty.
func NewWebhookHandler(api API, useCase input.MessageUseCase, translator output.T, secret string, logger *logrus.Logger) *WebhookHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &WebhookHandler{
		api:        api,
		useCase:    useCase,
		translator: translator,
		secret:     secret,
		logger:     logger,
	}
}

// ServeReady answers GET /webhook.
func (h *WebhookHandler) ServeReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "✅ Webhook is ready for POST requests from Telegram")
}

// ServeHTTP handles POST /webhook.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(SecretHeader)), []byte(h.secret)) != 1 {
		webhookUpdatesTotal.WithLabelValues("unauthorized").Inc()
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var update telego.Update
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUpdateBytes)).Decode(&update); err != nil {
		webhookUpdatesTotal.WithLabelValues("malformed").Inc()
		h.logger.WithError(err).Warn("Malformed webhook payload")
		http.Error(w, "malformed update", http.StatusBadRequest)
		return
	}

	if err := h.handleUpdate(r.Context(), update); err != nil {
		webhookUpdatesTotal.WithLabelValues("error").Inc()
		h.logger.WithError(err).WithField("update_id", update.UpdateID).Error("Webhook error")
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}
	_, _ = io.WriteString(w, "OK")
}

func (h *WebhookHandler) handleUpdate(ctx context.Context, update telego.Update) error {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		webhookUpdatesTotal.WithLabelValues("ignored").Inc()
		return nil
	}
	locale := ""
	if msg.From != nil {
		if msg.From.IsBot {
			webhookUpdatesTotal.WithLabelValues("ignored").Inc()
			return nil
		}
		locale = msg.From.LanguageCode
	}

	h.logger.WithFields(logrus.Fields{
		"update_id": update.UpdateID,
		"chat_id":   msg.Chat.ID,
	}).Info("Received update")

	reply, err := h.useCase.HandleMessage(ctx, input.IncomingMessage{
		ConversationID: ConversationID(msg.Chat.ID),
		Text:           msg.Text,
		Locale:         locale,
	})
	if errors.Is(err, domain.ErrEmptyText) {
		webhookUpdatesTotal.WithLabelValues("ignored").Inc()
		return nil
	}
	if err != nil {
		h.send(ctx, msg.Chat.ID, h.translator.T(locale, "InternalError", nil))
		return fmt.Errorf("handle message: %w", err)
	}

	h.send(ctx, msg.Chat.ID, reply)
	webhookUpdatesTotal.WithLabelValues("handled").Inc()
	return nil
}

// send delivers text in HTML mode, split at the Telegram limit. Failures are logged.
func (h *WebhookHandler) send(ctx context.Context, chatID int64, text string) {
	for _, part := range markup.Split(text, markup.TelegramLimit) {
		params := tu.Message(tu.ID(chatID), part).
			WithParseMode(telego.ModeHTML).
			WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})
		if _, err := h.api.SendMessage(ctx, params); err != nil {
			h.logger.WithError(err).WithField("chat_id", chatID).Error("Error sending message")
			return
		}
	}
}
