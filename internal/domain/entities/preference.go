package entities

import "time"

// ChatPreference holds the target languages chosen for one conversation.
type ChatPreference struct {
	ConversationID string
	Targets        []string
	UpdatedAt      time.Time
}
