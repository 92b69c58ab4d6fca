package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
)

const (
	defaultPort        = 5000
	defaultMaxTargets  = 3
	maxMaxTargets      = 5
	defaultCallTimeout = 10 * time.Second
)

type Config struct {
	TelegramToken string
	DiscordToken  string
	PublicURL     string
	WebhookSecret string
	Port          int

	TranslateEngine  string
	TranslateURL     string
	TranslateAPIKey  string
	TranslateTimeout time.Duration

	DetectorEngine string
	// DetectorAllLanguages loads every lingua model instead of the catalog only.
	DetectorAllLanguages bool

	DefaultTargets  []string
	FallbackTargets []string
	MaxTargets      int

	DefaultLocale string
	LogLevel      string
	LogFormat     string
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, Render, CI).
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:        os.Getenv("BOT_TOKEN"),
		DiscordToken:         os.Getenv("DISCORD_TOKEN"),
		PublicURL:            firstNonEmpty(os.Getenv("PUBLIC_URL"), os.Getenv("RENDER_EXTERNAL_URL")),
		WebhookSecret:        os.Getenv("WEBHOOK_SECRET"),
		TranslateEngine:      envOr("TRANSLATE_ENGINE", "google"),
		TranslateURL:         os.Getenv("TRANSLATE_URL"),
		TranslateAPIKey:      os.Getenv("TRANSLATE_API_KEY"),
		DetectorEngine:       envOr("DETECTOR_ENGINE", "lingua"),
		DetectorAllLanguages: strings.EqualFold(os.Getenv("DETECTOR_ALL_LANGUAGES"), "true"),
		DefaultTargets:       splitCodes(envOr("DEFAULT_TARGETS", "en,ru,es")),
		FallbackTargets:      splitCodes(envOr("FALLBACK_TARGETS", "en,ru")),
		DefaultLocale:        envOr("DEFAULT_LOCALE", "ru"),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		LogFormat:            envOr("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.Port, err = intEnv("PORT", defaultPort); err != nil {
		return nil, err
	}
	if cfg.MaxTargets, err = intEnv("MAX_TARGETS", defaultMaxTargets); err != nil {
		return nil, err
	}
	if cfg.TranslateTimeout, err = durationEnv("TRANSLATE_TIMEOUT", defaultCallTimeout); err != nil {
		return nil, err
	}

	if err := cfg.validate(entities.DefaultCatalog()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WebhookURL is the Telegram webhook endpoint, or "" when PublicURL is unset.
func (c *Config) WebhookURL() string {
	if c.PublicURL == "" {
		return ""
	}
	return strings.TrimRight(c.PublicURL, "/") + "/webhook"
}

// validate applies the configuration rules.
func (c *Config) validate(catalog *entities.Catalog) error {
	if strings.TrimSpace(c.TelegramToken) == "" && strings.TrimSpace(c.DiscordToken) == "" {
		return fmt.Errorf("config: BOT_TOKEN or DISCORD_TOKEN is required")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT must be between 1 and 65535, got %d", c.Port)
	}

	if c.MaxTargets < 1 || c.MaxTargets > maxMaxTargets {
		return fmt.Errorf("config: MAX_TARGETS must be between 1 and %d, got %d", maxMaxTargets, c.MaxTargets)
	}

	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("config: TRANSLATE_TIMEOUT must be positive")
	}

	if c.PublicURL != "" {
		if err := checkURL("PUBLIC_URL", c.PublicURL); err != nil {
			return err
		}
	}
	if c.TranslateURL != "" {
		if err := checkURL("TRANSLATE_URL", c.TranslateURL); err != nil {
			return err
		}
	}

	if len(c.DefaultTargets) == 0 {
		return fmt.Errorf("config: DEFAULT_TARGETS must list at least one language")
	}
	if len(c.FallbackTargets) < 2 {
		return fmt.Errorf("config: FALLBACK_TARGETS must list at least two distinct languages")
	}
	for _, code := range append(append([]string{}, c.DefaultTargets...), c.FallbackTargets...) {
		if !catalog.Has(code) {
			return fmt.Errorf("config: language code %q: %w", code, domain.ErrUnsupportedLanguage)
		}
	}
	return nil
}

func checkURL(name, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: %s invalid (%q): %w", name, raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: %s invalid (%q): missing scheme or host", name, raw)
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer (%q): %w", key, raw, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	// Bare numbers are seconds.
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration (%q): %w", key, raw, err)
	}
	return d, nil
}

// splitCodes parses a comma separated code list, dropping blanks and duplicates.
func splitCodes(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
