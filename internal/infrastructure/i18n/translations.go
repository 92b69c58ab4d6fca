package i18n

import (
	"embed"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"transbot/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var (
	_ output.T             = (*Translator)(nil)
	_ output.LanguageNamer = (*Translator)(nil)
)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	logger          *logrus.Logger
}

// NewTranslator builds a Translator backed by go-i18n using the given default
// locale (e.g. "ru").
//
// It loads the bot messages from the embedded active.*.toml files.
func NewTranslator(defaultLocale string, logger *logrus.Logger) *Translator {
	if logger == nil {
		logger = logrus.New()
	}
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Russian
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.ru.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.WithError(err).WithField("file", file).Error("i18n: failed to load message file")
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		logger:          logger,
	}
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	localizer := i18n.NewLocalizer(t.bundle, t.languages(locale)...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.WithError(err).WithFields(logrus.Fields{
			"key":    key,
			"locale": locale,
		}).Warn("i18n: localize failed")
		return key
	}
	return msg
}

// LanguageName renders the name of the language code in the reader's locale,
// e.g. "es" is "испанский" for "ru" and "Spanish" for "en". Returns "" when
// the code cannot be parsed.
func (t *Translator) LanguageName(locale, code string) string {
	target, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, _ := target.Base()
	reader := t.matchLocale(locale)
	name := display.Tags(reader).Name(language.Make(base.String()))
	if name == "" {
		return ""
	}
	// Display names are lowercase in several locales; capitalise the first rune.
	r := []rune(name)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func (t *Translator) languages(locale string) []string {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	return append(languages, t.defaultLanguage.String())
}

func (t *Translator) matchLocale(locale string) language.Tag {
	matcher := language.NewMatcher(t.bundle.LanguageTags())
	_, idx, conf := matcher.Match(language.Make(locale))
	if locale == "" || conf == language.No {
		return t.defaultLanguage
	}
	return t.bundle.LanguageTags()[idx]
}
