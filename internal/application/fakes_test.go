package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeIdentifier struct {
	candidates []output.Candidate
	err        error
	panics     bool
	calls      int
}

func (f *fakeIdentifier) Identify(string) ([]output.Candidate, error) {
	f.calls++
	if f.panics {
		panic("model exploded")
	}
	return f.candidates, f.err
}

// fakeTranslator answers "<target>:<text>" unless the target is listed in fail.
type fakeTranslator struct {
	mu    sync.Mutex
	fail  map[string]error
	empty map[string]bool
	panic map[string]bool
	calls []string
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, target)
	f.mu.Unlock()
	if f.panic[target] {
		panic("provider bug")
	}
	if err, ok := f.fail[target]; ok {
		return "", err
	}
	if f.empty[target] {
		return "  ", nil
	}
	return target + ":" + text, nil
}

func (f *fakeTranslator) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.calls...)
	sort.Strings(out)
	return out
}

var errProvider = errors.New("provider unavailable")

// fakeT renders "Key" or "Key{A=1;B=2}" so assertions can check template data.
type fakeT struct{}

func (fakeT) T(_ string, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return key + "{" + strings.Join(parts, ";") + "}"
}

type fakePrefs struct {
	mu    sync.Mutex
	saved map[string]entities.ChatPreference
	err   error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{saved: map[string]entities.ChatPreference{}}
}

func (f *fakePrefs) Save(_ context.Context, pref entities.ChatPreference) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[pref.ConversationID] = pref
	return nil
}

func (f *fakePrefs) Find(_ context.Context, id string) (*entities.ChatPreference, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.saved[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}
