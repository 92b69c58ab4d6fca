package memory

import (
	"context"
	"sync"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

var _ output.PreferenceRepository = (*PreferenceRepository)(nil)

// PreferenceRepository keeps chat preferences in process memory.
// Contents are lost on restart.
type PreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[string]entities.ChatPreference
}

// NewPreferenceRepository creates an empty PreferenceRepository.
func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{prefs: make(map[string]entities.ChatPreference)}
}

// Save replaces the stored preference for pref.ConversationID.
func (r *PreferenceRepository) Save(_ context.Context, pref entities.ChatPreference) error {
	pref.Targets = cloneTargets(pref.Targets)
	r.mu.Lock()
	r.prefs[pref.ConversationID] = pref
	r.mu.Unlock()
	return nil
}

// Find returns a copy of the stored preference, if any.
func (r *PreferenceRepository) Find(_ context.Context, conversationID string) (*entities.ChatPreference, bool, error) {
	r.mu.RLock()
	pref, ok := r.prefs[conversationID]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	pref.Targets = cloneTargets(pref.Targets)
	return &pref, true, nil
}

// Len returns the number of stored preferences.
func (r *PreferenceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prefs)
}

func cloneTargets(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
