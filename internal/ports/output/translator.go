package output

import "context"

// Translator is the external translation capability.
// sourceLang may be domain.SourceAuto.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
