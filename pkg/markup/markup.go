// Package markup adapts HTML bot replies to platform constraints.
package markup

import (
	"html"
	"strings"
	"unicode/utf8"
)

// Platform message limits, in characters.
const (
	TelegramLimit = 4096
	DiscordLimit  = 2000
)

var htmlToMarkdown = strings.NewReplacer(
	"<b>", "**", "</b>", "**",
	"<i>", "*", "</i>", "*",
	"<code>", "`", "</code>", "`",
)

// HTMLToMarkdown converts the tag subset used by the bot (b, i, code) to
// Discord Markdown and unescapes entities.
func HTMLToMarkdown(s string) string {
	return html.UnescapeString(htmlToMarkdown.Replace(s))
}

// Split cuts s into parts of at most limit characters, preferring line breaks.
// Lines longer than limit are hard-wrapped on rune boundaries, never inside an
// HTML entity or tag.
func Split(s string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}

	var (
		parts   []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if part := strings.TrimRight(current.String(), "\n"); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
		size = 0
	}

	for _, line := range strings.SplitAfter(s, "\n") {
		n := utf8.RuneCountInString(line)
		if size+n > limit {
			flush()
		}
		for n > limit {
			head, tail := splitMarkup(line, limit)
			parts = append(parts, head)
			line, n = tail, utf8.RuneCountInString(tail)
		}
		current.WriteString(line)
		size += n
	}
	flush()
	return parts
}

// splitMarkup cuts s after at most n runes, moving the cut back to the start
// of an entity ("&amp;") or tag ("<b>") that would otherwise be split.
func splitMarkup(s string, n int) (string, string) {
	cut := len(s)
	i := 0
	for pos := range s {
		if i == n {
			cut = pos
			break
		}
		i++
	}
	head := s[:cut]
	if open := strings.LastIndexAny(head, "&<"); open > 0 {
		closer := ";"
		if head[open] == '<' {
			closer = ">"
		}
		if !strings.Contains(head[open:], closer) {
			cut = open
		}
	}
	return s[:cut], s[cut:]
}
