package application

import (
	"strings"

	"transbot/internal/domain/entities"
)

const (
	commandPrefix     = "/"
	explicitSeparator = " /"
)

// CommandRouter classifies inbound text. It is pure and safe for concurrent use.
type CommandRouter struct {
	catalog *entities.Catalog
}

// NewCommandRouter creates a CommandRouter backed by catalog.
func NewCommandRouter(catalog *entities.Catalog) *CommandRouter {
	return &CommandRouter{catalog: catalog}
}

// Classify returns the Route for rawText.
func (r *CommandRouter) Classify(rawText string) entities.Route {
	text := strings.TrimSpace(rawText)
	if strings.HasPrefix(text, commandPrefix) {
		fields := strings.Fields(text[len(commandPrefix):])
		name := ""
		var args []string
		if len(fields) > 0 {
			name = fields[0]
			args = fields[1:]
		}
		// Telegram appends the bot username in groups: /help@my_bot
		if idx := strings.Index(name, "@"); idx >= 0 {
			name = name[:idx]
		}
		return entities.CommandRoute(strings.ToLower(name), args)
	}

	if strings.Count(rawText, explicitSeparator) == 1 {
		parts := strings.SplitN(rawText, explicitSeparator, 2)
		body := strings.TrimSpace(parts[0])
		code := strings.ToLower(strings.TrimSpace(parts[1]))
		if body != "" && code != "" {
			if lang, ok := r.catalog.Get(code); ok {
				return entities.ExplicitTranslate(body, lang.Code)
			}
		}
	}

	return entities.PlainText(rawText)
}
