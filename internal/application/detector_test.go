package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

func TestLanguageDetector_Fallback(t *testing.T) {
	d := NewLanguageDetector(nil, entities.DefaultCatalog(), quietLogger())

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "cyrillic", text: "Привет", want: "ru"},
		{name: "arabic", text: "مرحبا", want: "ar"},
		{name: "hebrew", text: "שלום", want: "he"},
		{name: "greek", text: "Γειά σου", want: "el"},
		{name: "latin", text: "Hello", want: "en"},
		{name: "empty", text: "", want: "en"},
		{name: "whitespace", text: "   \n\t", want: "en"},
		{name: "digits only", text: "12345", want: "en"},
		{name: "cyrillic majority", text: "Привет hi", want: "ru"},
		{name: "latin majority", text: "hello мир", want: "en"},
		{name: "accented latin counts as latin", text: "éééé да", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.text))
		})
	}
}

func TestLanguageDetector_Model(t *testing.T) {
	catalog := entities.DefaultCatalog()

	tests := []struct {
		name       string
		identifier *fakeIdentifier
		text       string
		want       string
		wantCalls  int
	}{
		{
			name:       "first catalog candidate wins",
			identifier: &fakeIdentifier{candidates: []output.Candidate{{Code: "xx", Confidence: 0.9}, {Code: "fr", Confidence: 0.5}}},
			text:       "Bonjour tout le monde",
			want:       "fr",
			wantCalls:  1,
		},
		{
			name:       "base subtag resolves to catalog variant",
			identifier: &fakeIdentifier{candidates: []output.Candidate{{Code: "zh", Confidence: 0.8}}},
			text:       "你好世界",
			want:       "zh-cn",
			wantCalls:  1,
		},
		{
			name:       "no catalog candidate falls back",
			identifier: &fakeIdentifier{candidates: []output.Candidate{{Code: "xx", Confidence: 0.9}}},
			text:       "Привет мир",
			want:       "ru",
			wantCalls:  1,
		},
		{
			name:       "identifier error falls back",
			identifier: &fakeIdentifier{err: errProvider},
			text:       "مرحبا بالعالم",
			want:       "ar",
			wantCalls:  1,
		},
		{
			name:       "identifier panic falls back",
			identifier: &fakeIdentifier{panics: true},
			text:       "Привет мир",
			want:       "ru",
			wantCalls:  1,
		},
		{
			name:       "short text skips the model",
			identifier: &fakeIdentifier{candidates: []output.Candidate{{Code: "fr", Confidence: 1}}},
			text:       " ok ",
			want:       "en",
			wantCalls:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			d := NewLanguageDetector(tt.identifier, catalog, quietLogger()).
				WithObserver(func(path string) { paths = append(paths, path) })

			got := d.Detect(tt.text)
			assert.Equal(t, tt.want, got)
			assert.True(t, catalog.Has(got))
			assert.Equal(t, tt.wantCalls, tt.identifier.calls)
			assert.Len(t, paths, 1)
		})
	}
}

func TestLanguageDetector_ObserverPaths(t *testing.T) {
	var paths []string
	id := &fakeIdentifier{candidates: []output.Candidate{{Code: "de", Confidence: 0.7}}}
	d := NewLanguageDetector(id, entities.DefaultCatalog(), quietLogger()).
		WithObserver(func(path string) { paths = append(paths, path) })

	d.Detect("Guten Morgen")
	d.Detect("")

	assert.Equal(t, []string{PathModel, PathFallback}, paths)
}
