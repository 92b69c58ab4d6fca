package application

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
)

var _ input.MessageUseCase = (*MessageService)(nil)

// MessageSettings are the per-process translation defaults.
type MessageSettings struct {
	DefaultTargets []string
	MaxTargets     int
}

// MessageService routes an incoming message and composes the HTML reply.
type MessageService struct {
	router       *CommandRouter
	detector     *LanguageDetector
	orchestrator *Orchestrator
	prefs        output.PreferenceRepository
	translator   output.T
	namer        output.LanguageNamer
	catalog      *entities.Catalog
	settings     MessageSettings
	logger       *logrus.Logger
}

// NewMessageService wires the core components together. namer may be nil.
func NewMessageService(
	router *CommandRouter,
	detector *LanguageDetector,
	orchestrator *Orchestrator,
	prefs output.PreferenceRepository,
	translator output.T,
	namer output.LanguageNamer,
	catalog *entities.Catalog,
	settings MessageSettings,
	logger *logrus.Logger,
) *MessageService {
	if settings.MaxTargets <= 0 {
		settings.MaxTargets = DefaultMaxTargets
	}
	if len(settings.DefaultTargets) == 0 {
		settings.DefaultTargets = []string{"en", "ru", "es"}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &MessageService{
		router:       router,
		detector:     detector,
		orchestrator: orchestrator,
		prefs:        prefs,
		translator:   translator,
		namer:        namer,
		catalog:      catalog,
		settings:     settings,
		logger:       logger,
	}
}

// HandleMessage returns the reply for msg. An empty text yields domain.ErrEmptyText.
func (s *MessageService) HandleMessage(ctx context.Context, msg input.IncomingMessage) (string, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return "", domain.ErrEmptyText
	}

	route := s.router.Classify(text)
	switch route.Kind {
	case entities.RouteCommand:
		return s.handleCommand(ctx, msg, route)
	case entities.RouteExplicitTranslate:
		return s.handleExplicit(ctx, msg.Locale, route), nil
	default:
		return s.handleAuto(ctx, msg, text)
	}
}

func (s *MessageService) handleCommand(ctx context.Context, msg input.IncomingMessage, route entities.Route) (string, error) {
	switch route.Command {
	case entities.CommandStart:
		return s.translator.T(msg.Locale, "Start", nil), nil
	case entities.CommandHelp:
		return s.translator.T(msg.Locale, "Help", map[string]any{
			"Targets": s.formatLanguages(msg.Locale, s.settings.DefaultTargets),
			"Max":     s.settings.MaxTargets,
		}), nil
	case entities.CommandLang:
		return s.languageList(msg.Locale), nil
	case entities.CommandSetLang:
		return s.setTargets(ctx, msg, route.Args)
	default:
		s.logger.WithFields(logrus.Fields{
			"conversation_id": msg.ConversationID,
			"command":         route.Name,
		}).Debug("Unknown command")
		return s.translator.T(msg.Locale, "UnknownCommand", nil), nil
	}
}

func (s *MessageService) languageList(locale string) string {
	var b strings.Builder
	b.WriteString(s.translator.T(locale, "LanguagesHeader", nil))
	b.WriteString("\n\n")
	for _, l := range s.catalog.All() {
		b.WriteString(s.translator.T(locale, "LanguagesItem", map[string]any{
			"Flag": l.Flag,
			"Code": l.Code,
			"Name": s.languageName(locale, l.Code),
		}))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *MessageService) setTargets(ctx context.Context, msg input.IncomingMessage, args []string) (string, error) {
	if len(args) == 0 {
		current, err := s.targetsFor(ctx, msg.ConversationID)
		if err != nil {
			return "", err
		}
		return s.translator.T(msg.Locale, "SetLangUsage", map[string]any{
			"Current": s.formatLanguages(msg.Locale, current),
			"Max":     s.settings.MaxTargets,
		}), nil
	}

	targets, unknown, err := s.parseTargets(args)
	switch {
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return s.translator.T(msg.Locale, "SetLangUnknown", map[string]any{
			"Codes": strings.Join(unknown, ", "),
		}), nil
	case errors.Is(err, domain.ErrTooManyTargets):
		return s.translator.T(msg.Locale, "SetLangTooMany", map[string]any{
			"Max": s.settings.MaxTargets,
		}), nil
	}
	if len(targets) == 0 {
		return s.translator.T(msg.Locale, "SetLangUsage", map[string]any{
			"Current": s.formatLanguages(msg.Locale, s.settings.DefaultTargets),
			"Max":     s.settings.MaxTargets,
		}), nil
	}

	pref := entities.ChatPreference{
		ConversationID: msg.ConversationID,
		Targets:        targets,
		UpdatedAt:      time.Now(),
	}
	if err := s.prefs.Save(ctx, pref); err != nil {
		return "", fmt.Errorf("save preference: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"conversation_id": msg.ConversationID,
		"targets":         targets,
	}).Info("Target languages updated")
	return s.translator.T(msg.Locale, "SetLangSaved", map[string]any{
		"Targets": s.formatLanguages(msg.Locale, targets),
	}), nil
}

// parseTargets accepts "/setlang en,es" as well as "/setlang en es". unknown
// holds the HTML-escaped codes missing from the catalog.
func (s *MessageService) parseTargets(args []string) (targets, unknown []string, err error) {
	seen := make(map[string]struct{}, len(args))
	for _, arg := range args {
		for _, code := range strings.Split(arg, ",") {
			code = strings.ToLower(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			lang, ok := s.catalog.Get(code)
			if !ok {
				unknown = append(unknown, html.EscapeString(code))
				continue
			}
			if _, dup := seen[lang.Code]; dup {
				continue
			}
			seen[lang.Code] = struct{}{}
			targets = append(targets, lang.Code)
		}
	}
	if len(unknown) > 0 {
		return nil, unknown, domain.ErrUnsupportedLanguage
	}
	if len(targets) > s.settings.MaxTargets {
		return nil, nil, fmt.Errorf("%d targets, max %d: %w", len(targets), s.settings.MaxTargets, domain.ErrTooManyTargets)
	}
	return targets, nil, nil
}

func (s *MessageService) targetsFor(ctx context.Context, conversationID string) ([]string, error) {
	pref, ok, err := s.prefs.Find(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("find preference: %w", err)
	}
	if ok && len(pref.Targets) > 0 {
		return pref.Targets, nil
	}
	return s.settings.DefaultTargets, nil
}

func (s *MessageService) handleExplicit(ctx context.Context, locale string, route entities.Route) string {
	result := s.orchestrator.Translate(ctx, entities.TranslationRequest{
		Text:       route.Text,
		SourceLang: domain.SourceAuto,
		Targets:    []string{route.Target},
		MaxTargets: 1,
	})
	if result.Err() != nil {
		return s.translator.T(locale, "TranslateFailed", nil)
	}
	out := result.Successes()[0]
	return s.translator.T(locale, "ExplicitReply", map[string]any{
		"Original": html.EscapeString(route.Text),
		"Flag":     s.catalog.Flag(out.Lang),
		"Language": s.languageName(locale, out.Lang),
		"Text":     html.EscapeString(out.Text),
	})
}

func (s *MessageService) handleAuto(ctx context.Context, msg input.IncomingMessage, text string) (string, error) {
	source := s.detector.Detect(text)
	targets, err := s.targetsFor(ctx, msg.ConversationID)
	if err != nil {
		return "", err
	}

	result := s.orchestrator.Translate(ctx, entities.TranslationRequest{
		Text:       text,
		SourceLang: source,
		Targets:    targets,
		MaxTargets: s.settings.MaxTargets,
	})
	if result.Err() != nil {
		s.logger.WithFields(logrus.Fields{
			"conversation_id": msg.ConversationID,
			"targets":         result.Attempted(),
		}).Error("All translations failed")
		return s.translator.T(msg.Locale, "TranslateFailed", nil), nil
	}

	var b strings.Builder
	b.WriteString(s.translator.T(msg.Locale, "AutoHeader", map[string]any{
		"Language": s.languageName(msg.Locale, source),
		"Text":     html.EscapeString(text),
	}))
	b.WriteString("\n\n")
	for _, out := range result.Successes() {
		b.WriteString(s.translator.T(msg.Locale, "AutoItem", map[string]any{
			"Flag":     s.catalog.Flag(out.Lang),
			"Language": s.languageName(msg.Locale, out.Lang),
			"Text":     html.EscapeString(out.Text),
		}))
		b.WriteString("\n\n")
	}
	b.WriteString(s.translator.T(msg.Locale, "AutoFooter", nil))
	return b.String(), nil
}

func (s *MessageService) languageName(locale, code string) string {
	if s.namer != nil {
		if name := s.namer.LanguageName(locale, code); name != "" {
			return name
		}
	}
	return s.catalog.Name(code)
}

func (s *MessageService) formatLanguages(locale string, codes []string) string {
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, s.catalog.Flag(c)+" "+s.languageName(locale, c))
	}
	return strings.Join(parts, ", ")
}
