package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mymmrac/telego"
	"github.com/sirupsen/logrus"
)

// ErrNoWebhookURL is returned when no public URL is configured.
var ErrNoWebhookURL = errors.New("telegram: PUBLIC_URL is not set")

// Admin manages the webhook registration.
type Admin struct {
	api        API
	webhookURL string
	secret     string
	logger     *logrus.Logger
}

// NewAdmin creates an Admin. webhookURL may be empty.
func NewAdmin(api API, webhookURL, secret string, logger *logrus.Logger) *Admin {
	if logger == nil {
		logger = logrus.New()
	}
	return &Admin{api: api, webhookURL: webhookURL, secret: secret, logger: logger}
}

// WebhookURL returns the URL registered by SetWebhook.
func (a *Admin) WebhookURL() string {
	return a.webhookURL
}

// SetWebhook registers the webhook URL with Telegram.
func (a *Admin) SetWebhook(ctx context.Context) error {
	if a.webhookURL == "" {
		return ErrNoWebhookURL
	}
	params := &telego.SetWebhookParams{
		URL:            a.webhookURL,
		SecretToken:    a.secret,
		AllowedUpdates: []string{"message"},
	}
	if err := a.api.SetWebhook(ctx, params); err != nil {
		return fmt.Errorf("telegram: set webhook: %w", err)
	}
	a.logger.WithField("webhook_url", a.webhookURL).Info("Webhook registered")
	return nil
}

// ServeSetWebhook handles GET /set_webhook.
func (a *Admin) ServeSetWebhook(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := a.SetWebhook(r.Context()); err != nil {
		a.logger.WithError(err).Error("Webhook registration failed")
		status := http.StatusBadGateway
		if errors.Is(err, ErrNoWebhookURL) {
			status = http.StatusServiceUnavailable
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, "❌ "+err.Error())
		return
	}
	_, _ = io.WriteString(w, "✅ Webhook set: "+a.webhookURL)
}

// ServeWebhookInfo handles GET /get_webhook_info.
func (a *Admin) ServeWebhookInfo(w http.ResponseWriter, r *http.Request) {
	info, err := a.api.GetWebhookInfo(r.Context())
	if err != nil {
		a.logger.WithError(err).Error("Get webhook info failed")
		http.Error(w, "❌ "+err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}
