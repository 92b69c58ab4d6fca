package entities

import "strings"

// DefaultFlag is shown for languages without a dedicated glyph.
const DefaultFlag = "🌐"

// Language is an entry of the supported language catalog.
type Language struct {
	Code string
	Name string
	Flag string
}

// Catalog is the fixed, read-only set of supported languages.
// Order is preserved for listing.
type Catalog struct {
	languages []Language
	byCode    map[string]Language
}

// NewCatalog builds a catalog from the given entries. Codes are stored lowercase.
func NewCatalog(languages ...Language) *Catalog {
	c := &Catalog{
		languages: make([]Language, 0, len(languages)),
		byCode:    make(map[string]Language, len(languages)),
	}
	for _, l := range languages {
		l.Code = strings.ToLower(strings.TrimSpace(l.Code))
		if l.Code == "" {
			continue
		}
		if _, dup := c.byCode[l.Code]; dup {
			continue
		}
		if l.Flag == "" {
			l.Flag = DefaultFlag
		}
		c.languages = append(c.languages, l)
		c.byCode[l.Code] = l
	}
	return c
}

// DefaultCatalog returns the languages the bot advertises.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Language{Code: "en", Name: "English", Flag: "🇺🇸"},
		Language{Code: "ru", Name: "Russian", Flag: "🇷🇺"},
		Language{Code: "es", Name: "Spanish", Flag: "🇪🇸"},
		Language{Code: "fr", Name: "French", Flag: "🇫🇷"},
		Language{Code: "de", Name: "German", Flag: "🇩🇪"},
		Language{Code: "it", Name: "Italian", Flag: "🇮🇹"},
		Language{Code: "pt", Name: "Portuguese", Flag: "🇵🇹"},
		Language{Code: "zh-cn", Name: "Chinese", Flag: "🇨🇳"},
		Language{Code: "ja", Name: "Japanese", Flag: "🇯🇵"},
		Language{Code: "ko", Name: "Korean", Flag: "🇰🇷"},
		Language{Code: "ar", Name: "Arabic", Flag: "🇸🇦"},
		Language{Code: "tr", Name: "Turkish", Flag: "🇹🇷"},
		Language{Code: "hi", Name: "Hindi", Flag: "🇮🇳"},
		Language{Code: "uk", Name: "Ukrainian", Flag: "🇺🇦"},
		Language{Code: "he", Name: "Hebrew", Flag: "🇮🇱"},
		Language{Code: "el", Name: "Greek", Flag: "🇬🇷"},
	)
}

// Get returns the language registered under code (case-insensitive).
func (c *Catalog) Get(code string) (Language, bool) {
	l, ok := c.byCode[strings.ToLower(strings.TrimSpace(code))]
	return l, ok
}

// Has reports whether code is a catalog member.
func (c *Catalog) Has(code string) bool {
	_, ok := c.Get(code)
	return ok
}

// Resolve maps an identifier code such as "zh" or "pt-BR" onto a catalog code.
// Exact matches win; otherwise the first catalog entry sharing the base subtag is used.
func (c *Catalog) Resolve(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", false
	}
	if l, ok := c.byCode[code]; ok {
		return l.Code, true
	}
	base := code
	if idx := strings.IndexAny(base, "-_"); idx >= 0 {
		base = base[:idx]
	}
	for _, l := range c.languages {
		lb := l.Code
		if idx := strings.IndexAny(lb, "-_"); idx >= 0 {
			lb = lb[:idx]
		}
		if lb == base {
			return l.Code, true
		}
	}
	return "", false
}

// Name returns the display name for code, or code itself when unknown.
func (c *Catalog) Name(code string) string {
	if l, ok := c.Get(code); ok {
		return l.Name
	}
	return code
}

// Flag returns the glyph for code, or DefaultFlag when unknown.
func (c *Catalog) Flag(code string) string {
	if l, ok := c.Get(code); ok {
		return l.Flag
	}
	return DefaultFlag
}

// All returns the catalog entries in declaration order.
func (c *Catalog) All() []Language {
	out := make([]Language, len(c.languages))
	copy(out, c.languages)
	return out
}
