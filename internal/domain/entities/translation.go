package entities

import "transbot/internal/domain"

// TranslationRequest is the input of one orchestrated translation.
type TranslationRequest struct {
	Text       string
	SourceLang string // catalog code or domain.SourceAuto
	Targets    []string
	MaxTargets int
}

// TargetOutcome is the outcome of a single target language attempt.
type TargetOutcome struct {
	Lang string
	Text string
	Err  error
}

// OK reports whether the attempt produced a translation.
func (o TargetOutcome) OK() bool {
	return o.Err == nil
}

// TranslationResult aggregates the attempts of one request in requested order.
type TranslationResult struct {
	SourceLang string
	Attempts   []TargetOutcome
}

// Successes returns the attempts that produced a translation, in requested order.
func (r TranslationResult) Successes() []TargetOutcome {
	out := make([]TargetOutcome, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		if a.OK() {
			out = append(out, a)
		}
	}
	return out
}

// Attempted returns the target codes that were tried.
func (r TranslationResult) Attempted() []string {
	out := make([]string, len(r.Attempts))
	for i, a := range r.Attempts {
		out[i] = a.Lang
	}
	return out
}

// Err returns domain.ErrAllTranslationsFailed when no attempt succeeded.
func (r TranslationResult) Err() error {
	for _, a := range r.Attempts {
		if a.OK() {
			return nil
		}
	}
	return domain.ErrAllTranslationsFailed
}
