// Package httpserver exposes the webhook, admin, health and metrics endpoints.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"transbot/internal/adapters/telegram"
)

// Telegram groups the Telegram endpoints; nil when Telegram is disabled.
type Telegram struct {
	Webhook *telegram.WebhookHandler
	Admin   *telegram.Admin
}

// Server is the HTTP front of the bot.
type Server struct {
	srv    *http.Server
	logger *logrus.Logger
}

// NewRouter builds the route table.
func NewRouter(tg *Telegram, logger *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))

	webhookURL := ""
	if tg != nil && tg.Admin != nil {
		webhookURL = tg.Admin.WebhookURL()
	}

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":       "Bot is running",
			"webhook_url":  webhookURL,
			"instructions": "Open /set_webhook to register the webhook",
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if tg != nil {
		if tg.Webhook != nil {
			r.HandleFunc("/webhook", tg.Webhook.ServeReady).Methods(http.MethodGet)
			r.Handle("/webhook", tg.Webhook).Methods(http.MethodPost)
		}
		if tg.Admin != nil {
			r.HandleFunc("/set_webhook", tg.Admin.ServeSetWebhook).Methods(http.MethodGet)
			r.HandleFunc("/get_webhook_info", tg.Admin.ServeWebhookInfo).Methods(http.MethodGet)
		}
	}
	return r
}

// New creates a Server listening on port.
func New(port int, handler http.Handler, logger *logrus.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      60 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.srv.Addr).Info("HTTP server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
