package input

import "context"

// IncomingMessage is a platform-neutral text message addressed to the bot.
type IncomingMessage struct {
	ConversationID string
	Text           string
	Locale         string
}

// MessageUseCase turns an incoming message into the reply to send back.
// The reply is HTML formatted; adapters convert it for their platform.
type MessageUseCase interface {
	HandleMessage(ctx context.Context, msg IncomingMessage) (string, error)
}
