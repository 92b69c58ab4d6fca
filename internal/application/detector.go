package application

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

// minModelRunes is the shortest trimmed text handed to the statistical model.
const minModelRunes = 3

// Detection path labels, used for metrics.
const (
	PathModel    = "model"
	PathFallback = "fallback"
)

// LanguageDetector resolves the source language of free text.
// Detect never fails and always returns a catalog member.
type LanguageDetector struct {
	identifier output.LanguageIdentifier
	catalog    *entities.Catalog
	logger     *logrus.Logger
	observe    func(path string)
}

// NewLanguageDetector creates a LanguageDetector. identifier may be nil, in which
// case only the character-range heuristic is used.
func NewLanguageDetector(identifier output.LanguageIdentifier, catalog *entities.Catalog, logger *logrus.Logger) *LanguageDetector {
	if logger == nil {
		logger = logrus.New()
	}
	return &LanguageDetector{
		identifier: identifier,
		catalog:    catalog,
		logger:     logger,
		observe:    func(string) {},
	}
}

// WithObserver registers a callback invoked with the path taken by each detection.
func (d *LanguageDetector) WithObserver(fn func(path string)) *LanguageDetector {
	if fn != nil {
		d.observe = fn
	}
	return d
}

// Detect returns the best-guess catalog code for text.
func (d *LanguageDetector) Detect(text string) string {
	trimmed := strings.TrimSpace(text)
	code, err := d.fromModel(trimmed)
	if err == nil {
		d.observe(PathModel)
		return code
	}
	d.logger.WithError(err).WithField("text_length", len(trimmed)).Debug("Language model skipped, using script fallback")
	d.observe(PathFallback)
	return d.fallback(trimmed)
}

func (d *LanguageDetector) fromModel(text string) (code string, err error) {
	if d.identifier == nil {
		return "", domain.ErrNoIdentification
	}
	if utf8.RuneCountInString(text) < minModelRunes {
		return "", domain.ErrNoIdentification
	}
	defer func() {
		// Identifier panics are treated like any other detection failure.
		if r := recover(); r != nil {
			code, err = "", errors.New("language identifier panicked")
		}
	}()
	candidates, err := d.identifier.Identify(text)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if resolved, ok := d.catalog.Resolve(c.Code); ok {
			return resolved, nil
		}
	}
	return "", domain.ErrNoIdentification
}

// scriptCounts holds per-block character counts for the fallback heuristic.
type scriptCounts struct {
	cyrillic, latin, arabic, hebrew, greek int
}

func countScripts(text string) scriptCounts {
	var c scriptCounts
	for _, r := range text {
		switch {
		case r >= 0x0400 && r <= 0x04FF:
			c.cyrillic++
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= 0x00C0 && r <= 0x024F && r != 0x00D7 && r != 0x00F7):
			c.latin++
		case r >= 0x0600 && r <= 0x06FF:
			c.arabic++
		case r >= 0x0590 && r <= 0x05FF:
			c.hebrew++
		case r >= 0x0370 && r <= 0x03FF:
			c.greek++
		}
	}
	return c
}

// fallback classifies by Unicode block counts; first matching rule wins.
func (d *LanguageDetector) fallback(text string) string {
	c := countScripts(text)
	switch {
	case c.cyrillic > 0 && c.cyrillic > c.latin:
		return "ru"
	case c.arabic > 0:
		return "ar"
	case c.hebrew > 0:
		return "he"
	case c.greek > 0:
		return "el"
	default:
		return "en"
	}
}
