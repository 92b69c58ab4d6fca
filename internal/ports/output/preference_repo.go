package output

import (
	"context"

	"transbot/internal/domain/entities"
)

// PreferenceRepository stores per-conversation target languages.
// Save replaces any previous list for the conversation atomically.
type PreferenceRepository interface {
	Save(ctx context.Context, pref entities.ChatPreference) error
	Find(ctx context.Context, conversationID string) (*entities.ChatPreference, bool, error)
}
