package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transbot/internal/domain/entities"
)

func TestPreferenceRepository_SaveFind(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository()

	_, ok, err := repo.Find(ctx, "tg:1")
	require.NoError(t, err)
	assert.False(t, ok)

	targets := []string{"de", "fr"}
	require.NoError(t, repo.Save(ctx, entities.ChatPreference{ConversationID: "tg:1", Targets: targets, UpdatedAt: time.Now()}))

	// Mutating the caller's slice must not leak into the store.
	targets[0] = "xx"

	pref, ok, err := repo.Find(ctx, "tg:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"de", "fr"}, pref.Targets)

	pref.Targets[1] = "yy"
	again, _, _ := repo.Find(ctx, "tg:1")
	assert.Equal(t, []string{"de", "fr"}, again.Targets)

	require.NoError(t, repo.Save(ctx, entities.ChatPreference{ConversationID: "tg:1", Targets: []string{"es"}}))
	again, _, _ = repo.Find(ctx, "tg:1")
	assert.Equal(t, []string{"es"}, again.Targets)
	assert.Equal(t, 1, repo.Len())
}

func TestPreferenceRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("dc:%d", i%10)
			_ = repo.Save(ctx, entities.ChatPreference{ConversationID: id, Targets: []string{"en"}})
			_, _, _ = repo.Find(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, repo.Len())
}

func TestPreferenceRepository_Collector(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository()
	collector := repo.Collector()

	assert.Equal(t, float64(0), testutil.ToFloat64(collector))

	require.NoError(t, repo.Save(ctx, entities.ChatPreference{ConversationID: "tg:1", Targets: []string{"en"}}))
	require.NoError(t, repo.Save(ctx, entities.ChatPreference{ConversationID: "dc:2", Targets: []string{"ru"}}))

	assert.Equal(t, float64(2), testutil.ToFloat64(collector))
}
