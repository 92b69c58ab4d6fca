package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

const (
	// DefaultMaxTargets bounds a request when the caller passes no limit.
	DefaultMaxTargets = 3
	// DefaultCallTimeout bounds each provider call.
	DefaultCallTimeout = 10 * time.Second
)

// DefaultFallbackTargets is used when excluding the source empties the target set.
var DefaultFallbackTargets = []string{"en", "ru"}

// OrchestratorConfig tunes an Orchestrator.
type OrchestratorConfig struct {
	FallbackTargets []string
	CallTimeout     time.Duration
	// Parallelism caps concurrent provider calls; 1 means sequential.
	Parallelism int
}

// Orchestrator translates one text into several target languages.
// A failed target never aborts its siblings.
type Orchestrator struct {
	translator output.Translator
	catalog    *entities.Catalog
	cfg        OrchestratorConfig
	logger     *logrus.Logger
}

// NewOrchestrator creates an Orchestrator. Targets outside catalog are never attempted.
func NewOrchestrator(translator output.Translator, catalog *entities.Catalog, cfg OrchestratorConfig, logger *logrus.Logger) *Orchestrator {
	if catalog == nil {
		catalog = entities.DefaultCatalog()
	}
	if len(cfg.FallbackTargets) == 0 {
		cfg.FallbackTargets = DefaultFallbackTargets
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = DefaultMaxTargets
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Orchestrator{translator: translator, catalog: catalog, cfg: cfg, logger: logger}
}

// PlanTargets applies the skip-self rule, drops duplicates and keeps the first
// maxTargets codes. An empty plan is replaced by the fallback set, still without source.
func (o *Orchestrator) PlanTargets(sourceLang string, targets []string, maxTargets int) []string {
	if maxTargets <= 0 {
		maxTargets = DefaultMaxTargets
	}
	plan := o.selectTargets(sourceLang, targets, maxTargets)
	if len(plan) == 0 {
		plan = o.selectTargets(sourceLang, o.cfg.FallbackTargets, maxTargets)
	}
	return plan
}

// selectTargets resolves codes against the catalog and drops non-members.
func (o *Orchestrator) selectTargets(sourceLang string, targets []string, max int) []string {
	source := strings.ToLower(sourceLang)
	if resolved, ok := o.catalog.Resolve(source); ok {
		source = resolved
	}
	seen := make(map[string]struct{}, len(targets))
	out := make([]string, 0, max)
	for _, t := range targets {
		code, ok := o.catalog.Resolve(t)
		if !ok || code == source {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
		if len(out) == max {
			break
		}
	}
	return out
}

// Translate runs one provider call per planned target and returns the outcomes
// in planned order. Use result.Err() to detect total failure.
func (o *Orchestrator) Translate(ctx context.Context, req entities.TranslationRequest) entities.TranslationResult {
	source := req.SourceLang
	if source == "" {
		source = domain.SourceAuto
	}
	plan := o.PlanTargets(source, req.Targets, req.MaxTargets)
	result := entities.TranslationResult{
		SourceLang: source,
		Attempts:   make([]entities.TargetOutcome, len(plan)),
	}

	var g errgroup.Group
	g.SetLimit(o.cfg.Parallelism)
	for i, target := range plan {
		g.Go(func() error {
			result.Attempts[i] = o.translateOne(ctx, req.Text, source, target)
			return nil
		})
	}
	_ = g.Wait()

	succeeded := len(result.Successes())
	o.logger.WithFields(logrus.Fields{
		"source_lang": source,
		"targets":     plan,
		"succeeded":   succeeded,
		"failed":      len(plan) - succeeded,
	}).Info("Translation request completed")
	return result
}

func (o *Orchestrator) translateOne(ctx context.Context, text, source, target string) (out entities.TargetOutcome) {
	out.Lang = target
	defer func() {
		if r := recover(); r != nil {
			out.Text, out.Err = "", fmt.Errorf("translator panicked: %v", r)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
	defer cancel()

	translated, err := o.translator.Translate(callCtx, text, source, target)
	if err == nil && strings.TrimSpace(translated) == "" {
		err = domain.ErrEmptyText
	}
	if err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"source_lang": source,
			"target_lang": target,
		}).Warn("Translation failed for target")
		out.Err = err
		return out
	}
	out.Text = translated
	return out
}
