package langid

import (
	"fmt"
	"strings"

	"transbot/internal/ports/output"
)

// Engine names accepted by New.
const (
	EngineLingua    = "lingua"
	EngineWhatlang  = "whatlanggo"
	whatlangMinConf = 0.25
)

// New builds the identifier for engine. When catalogOnly is set, lingua only
// loads models for codes.
func New(engine string, catalogOnly bool, codes []string) (output.LanguageIdentifier, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineLingua:
		if catalogOnly {
			return NewLinguaFrom(codes...)
		}
		return NewLingua(), nil
	case EngineWhatlang, "whatlang":
		return NewWhatlang(whatlangMinConf), nil
	default:
		return nil, fmt.Errorf("unknown detector engine: %s (supported: lingua, whatlanggo)", engine)
	}
}
