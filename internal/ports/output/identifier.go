package output

// Candidate is one language guess of a statistical identifier.
type Candidate struct {
	Code       string
	Confidence float64
}

// LanguageIdentifier returns candidates ordered by descending confidence.
// It may fail on short or ambiguous input.
type LanguageIdentifier interface {
	Identify(text string) ([]Candidate, error)
}
