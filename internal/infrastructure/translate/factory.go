package translate

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"transbot/internal/ports/output"
)

// EngineType represents the translation provider to use.
type EngineType string

const (
	EngineGoogle         EngineType = "google"
	EngineLibreTranslate EngineType = "libretranslate"
)

// Config holds configuration for creating a Translator instance.
type Config struct {
	Engine EngineType
	// BaseURL overrides the engine's default endpoint.
	BaseURL string
	// APIKey is sent to engines that accept one (LibreTranslate).
	APIKey  string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// NewTranslator creates the configured provider, wrapped with metrics.
func NewTranslator(cfg Config) (output.Translator, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	cfg.Logger.WithFields(logrus.Fields{
		"engine":   cfg.Engine,
		"base_url": cfg.BaseURL,
	}).Info("Creating translator instance")

	var t output.Translator
	switch cfg.Engine {
	case EngineGoogle:
		t = NewGoogleClient(cfg.BaseURL, cfg.Timeout, cfg.Logger)
	case EngineLibreTranslate:
		t = NewLibreTranslateClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, cfg.Logger)
	default:
		return nil, fmt.Errorf("unknown translation engine: %s", cfg.Engine)
	}
	return NewInstrumented(t, cfg.Engine), nil
}

// ParseEngineType parses a string into an EngineType.
func ParseEngineType(s string) (EngineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "google":
		return EngineGoogle, nil
	case "libretranslate", "libre":
		return EngineLibreTranslate, nil
	default:
		return "", fmt.Errorf("unknown engine type: %s (supported: google, libretranslate)", s)
	}
}
