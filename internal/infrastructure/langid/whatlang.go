package langid

import (
	"github.com/abadojack/whatlanggo"

	"transbot/internal/domain"
	"transbot/internal/ports/output"
)

var _ output.LanguageIdentifier = (*Whatlang)(nil)

// Whatlang identifies languages with whatlanggo. It yields a single candidate.
type Whatlang struct {
	minConfidence float64
}

// NewWhatlang creates a Whatlang identifier. Guesses below minConfidence, or
// flagged unreliable by whatlanggo, are reported as failures.
func NewWhatlang(minConfidence float64) *Whatlang {
	return &Whatlang{minConfidence: minConfidence}
}

// Identify returns whatlanggo's guess.
func (w *Whatlang) Identify(text string) ([]output.Candidate, error) {
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || !info.IsReliable() || info.Confidence < w.minConfidence {
		return nil, domain.ErrNoIdentification
	}
	return []output.Candidate{{Code: code, Confidence: info.Confidence}}, nil
}
