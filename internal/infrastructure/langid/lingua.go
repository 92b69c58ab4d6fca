// Package langid adapts statistical language identification libraries to the
// output.LanguageIdentifier port.
package langid

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"transbot/internal/domain"
	"transbot/internal/ports/output"
)

var _ output.LanguageIdentifier = (*Lingua)(nil)

// Lingua identifies languages with lingua-go. The detector is expensive to
// build; reuse the instance.
type Lingua struct {
	detector lingua.LanguageDetector
}

// NewLingua builds a detector over all languages lingua knows, in low accuracy
// mode to keep memory bounded. Candidates outside the catalog are skipped by
// the caller.
func NewLingua() *Lingua {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		WithLowAccuracyMode().
		Build()
	return &Lingua{detector: detector}
}

// NewLinguaFrom builds a detector restricted to the given ISO 639-1 codes.
// Unknown codes are ignored; at least two languages must remain.
func NewLinguaFrom(codes ...string) (*Lingua, error) {
	var languages []lingua.Language
	for _, code := range codes {
		iso := lingua.GetIsoCode639_1FromValue(strings.ToUpper(baseCode(code)))
		lang := lingua.GetLanguageFromIsoCode639_1(iso)
		if lang == lingua.Unknown {
			continue
		}
		languages = append(languages, lang)
	}
	if len(languages) < 2 {
		return nil, fmt.Errorf("langid: need at least two known languages, got %d", len(languages))
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()
	return &Lingua{detector: detector}, nil
}

// Identify returns lingua's confidence values, highest first.
func (l *Lingua) Identify(text string) ([]output.Candidate, error) {
	values := l.detector.ComputeLanguageConfidenceValues(text)
	out := make([]output.Candidate, 0, len(values))
	for _, v := range values {
		if v.Value() <= 0 {
			continue
		}
		out = append(out, output.Candidate{
			Code:       strings.ToLower(v.Language().IsoCode639_1().String()),
			Confidence: v.Value(),
		})
	}
	if len(out) == 0 {
		return nil, domain.ErrNoIdentification
	}
	return out, nil
}

func baseCode(code string) string {
	code = strings.TrimSpace(code)
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		return code[:idx]
	}
	return code
}
