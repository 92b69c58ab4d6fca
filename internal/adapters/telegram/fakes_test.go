package telegram

import (
	"context"
	"io"
	"sync"

	"github.com/mymmrac/telego"
	"github.com/sirupsen/logrus"

	"transbot/internal/ports/input"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeAPI struct {
	mu      sync.Mutex
	sent    []*telego.SendMessageParams
	sendErr error
	webhook *telego.SetWebhookParams
	hookErr error
	info    *telego.WebhookInfo
}

func (f *fakeAPI) SendMessage(_ context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &telego.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeAPI) SetWebhook(_ context.Context, params *telego.SetWebhookParams) error {
	f.webhook = params
	return f.hookErr
}

func (f *fakeAPI) GetWebhookInfo(context.Context) (*telego.WebhookInfo, error) {
	if f.hookErr != nil {
		return nil, f.hookErr
	}
	return f.info, nil
}

type fakeUseCase struct {
	reply string
	err   error
	got   []input.IncomingMessage
}

func (f *fakeUseCase) HandleMessage(_ context.Context, msg input.IncomingMessage) (string, error) {
	f.got = append(f.got, msg)
	return f.reply, f.err
}

type keyT struct{}

func (keyT) T(_, key string, _ map[string]any) string { return key }
