package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"transbot/internal/domain"
)

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.All(), 16)
	assert.True(t, c.Has("EN"))
	assert.False(t, c.Has("xx"))
	assert.Equal(t, "🇷🇺", c.Flag("ru"))
	assert.Equal(t, DefaultFlag, c.Flag("xx"))
	assert.Equal(t, "xx", c.Name("xx"))

	for _, code := range []string{"en", "ru", "ar", "he", "el"} {
		assert.True(t, c.Has(code), code)
	}
}

func TestCatalog_Resolve(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "fr", want: "fr", ok: true},
		{in: "ZH-CN", want: "zh-cn", ok: true},
		{in: "zh", want: "zh-cn", ok: true},
		{in: "pt_BR", want: "pt", ok: true},
		{in: "xx", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := c.Resolve(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCatalog_Dedup(t *testing.T) {
	c := NewCatalog(Language{Code: " EN ", Name: "English"}, Language{Code: "en", Name: "Dup"}, Language{Code: ""})
	assert.Len(t, c.All(), 1)
	assert.Equal(t, "English", c.Name("en"))
	assert.Equal(t, DefaultFlag, c.Flag("en"))
}

func TestTranslationResult(t *testing.T) {
	r := TranslationResult{Attempts: []TargetOutcome{
		{Lang: "es", Err: domain.ErrEmptyText},
		{Lang: "ru", Text: "Привет"},
	}}
	assert.NoError(t, r.Err())
	assert.Equal(t, []string{"es", "ru"}, r.Attempted())
	assert.Len(t, r.Successes(), 1)

	r.Attempts[1].Err = domain.ErrEmptyText
	assert.ErrorIs(t, r.Err(), domain.ErrAllTranslationsFailed)
}
