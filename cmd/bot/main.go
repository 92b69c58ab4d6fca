package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"transbot/internal/adapters/discord"
	"transbot/internal/adapters/httpserver"
	"transbot/internal/adapters/telegram"
	"transbot/internal/application"
	"transbot/internal/config"
	"transbot/internal/domain/entities"
	"transbot/internal/infrastructure/i18n"
	"transbot/internal/infrastructure/langid"
	"transbot/internal/infrastructure/memory"
	"transbot/internal/infrastructure/translate"
)

type healthChecker interface {
	CheckHealth(ctx context.Context) error
}

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("❌ Invalid configuration")
	}
	configureLogger(logger, cfg)

	logger.WithFields(logrus.Fields{
		"port":             cfg.Port,
		"translate_engine": cfg.TranslateEngine,
		"detector_engine":  cfg.DetectorEngine,
		"default_targets":  cfg.DefaultTargets,
		"max_targets":      cfg.MaxTargets,
		"telegram":         cfg.TelegramToken != "",
		"discord":          cfg.DiscordToken != "",
	}).Info("Starting translation bot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := entities.DefaultCatalog()
	codes := make([]string, 0, len(catalog.All()))
	for _, lang := range catalog.All() {
		codes = append(codes, lang.Code)
	}

	identifier, err := langid.New(cfg.DetectorEngine, !cfg.DetectorAllLanguages, codes)
	if err != nil {
		logger.WithError(err).Fatal("❌ Language identifier")
	}
	detector := application.NewLanguageDetector(identifier, catalog, logger).
		WithObserver(langid.Observer(cfg.DetectorEngine))

	engine, err := translate.ParseEngineType(cfg.TranslateEngine)
	if err != nil {
		logger.WithError(err).Fatal("❌ Translation engine")
	}
	translator, err := translate.NewTranslator(translate.Config{
		Engine:  engine,
		BaseURL: cfg.TranslateURL,
		APIKey:  cfg.TranslateAPIKey,
		Timeout: cfg.TranslateTimeout,
		Logger:  logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("❌ Translator")
	}
	if inst, ok := translator.(*translate.Instrumented); ok {
		if hc, ok := inst.Unwrap().(healthChecker); ok {
			hctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := hc.CheckHealth(hctx); err != nil {
				logger.WithError(err).Warn("Translation provider health check failed")
			}
			cancel()
		}
	}

	orchestrator := application.NewOrchestrator(translator, catalog, application.OrchestratorConfig{
		FallbackTargets: cfg.FallbackTargets,
		CallTimeout:     cfg.TranslateTimeout,
		Parallelism:     cfg.MaxTargets,
	}, logger)

	prefs := memory.NewPreferenceRepository()
	prometheus.MustRegister(prefs.Collector())

	messages := i18n.NewTranslator(cfg.DefaultLocale, logger)
	service := application.NewMessageService(
		application.NewCommandRouter(catalog),
		detector,
		orchestrator,
		prefs,
		messages,
		messages,
		catalog,
		application.MessageSettings{
			DefaultTargets: cfg.DefaultTargets,
			MaxTargets:     cfg.MaxTargets,
		},
		logger,
	)

	var tg *httpserver.Telegram
	if cfg.TelegramToken != "" {
		api, err := telegram.NewAPI(cfg.TelegramToken, logger)
		if err != nil {
			logger.WithError(err).Fatal("❌ Telegram")
		}
		tg = &httpserver.Telegram{
			Webhook: telegram.NewWebhookHandler(api, service, messages, cfg.WebhookSecret, logger),
			Admin:   telegram.NewAdmin(api, cfg.WebhookURL(), cfg.WebhookSecret, logger),
		}
		if cfg.PublicURL != "" {
			if err := tg.Admin.SetWebhook(ctx); err != nil {
				logger.WithError(err).Warn("Webhook registration failed; use /set_webhook")
			}
		} else {
			logger.Warn("PUBLIC_URL is not set; Telegram webhook must be registered manually")
		}
	}

	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(cfg.DiscordToken, service, messages, logger)
		if err != nil {
			logger.WithError(err).Fatal("❌ Discord")
		}
		if err := bot.Start(); err != nil {
			logger.WithError(err).Fatal("❌ Discord")
		}
		defer func() {
			if err := bot.Close(); err != nil {
				logger.WithError(err).Warn("Discord session close failed")
			}
		}()
	}

	server := httpserver.New(cfg.Port, httpserver.NewRouter(tg, logger), logger)
	if err := server.Run(ctx); err != nil {
		logger.WithError(err).Error("❌ HTTP server")
		os.Exit(1)
	}
}

func configureLogger(logger *logrus.Logger, cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
