package discord

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"transbot/internal/domain"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
	"transbot/pkg/markup"
)

const handleTimeout = 30 * time.Second

// Sender is the part of *discordgo.Session used to reply.
type Sender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

var _ Sender = (*discordgo.Session)(nil)

// Handler handles Discord messages using the message use case.
type Handler struct {
	useCase    input.MessageUseCase
	translator output.T
	logger     *logrus.Logger
}

// NewHandler creates a Handler.
func NewHandler(useCase input.MessageUseCase, translator output.T, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{useCase: useCase, translator: translator, logger: logger}
}

// ConversationID namespaces a Discord channel id.
func ConversationID(channelID string) string {
	return "dc:" + channelID
}

// HandleMessage answers direct messages and guild messages that mention the bot.
func (h *Handler) HandleMessage(s Sender, botID string, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil {
		return
	}
	if m.Author.ID == botID || m.Author.Bot {
		return
	}

	text := m.Content
	if m.GuildID != "" {
		if !mentions(m.Message, botID) {
			return
		}
		text = stripMention(text, botID)
	}
	if strings.TrimSpace(text) == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	reply, ok := h.dispatch(ctx, ConversationID(m.ChannelID), text, "")
	if !ok {
		return
	}
	for _, part := range markup.Split(markup.HTMLToMarkdown(reply), markup.DiscordLimit) {
		if _, err := s.ChannelMessageSend(m.ChannelID, part); err != nil {
			h.logger.WithError(err).WithField("channel_id", m.ChannelID).Error("Error sending message")
			return
		}
	}
}

// HandleCommand maps a slash command onto the equivalent text command.
func (h *Handler) HandleCommand(s Sender, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	text := "/" + data.Name
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			text += " " + opt.StringValue()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	reply, ok := h.dispatch(ctx, ConversationID(i.ChannelID), text, string(i.Locale))
	if !ok {
		return
	}
	// Interaction responses carry a single message.
	parts := markup.Split(markup.HTMLToMarkdown(reply), markup.DiscordLimit)
	if len(parts) == 0 {
		return
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: parts[0]},
	})
	if err != nil {
		h.logger.WithError(err).WithField("command", data.Name).Error("Interaction response failed")
	}
}

func (h *Handler) dispatch(ctx context.Context, conversationID, text, locale string) (string, bool) {
	reply, err := h.useCase.HandleMessage(ctx, input.IncomingMessage{
		ConversationID: conversationID,
		Text:           text,
		Locale:         locale,
	})
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		return "", false
	case err != nil:
		h.logger.WithError(err).WithField("conversation_id", conversationID).Error("Message handling failed")
		return h.translator.T(locale, "InternalError", nil), true
	}
	return reply, true
}

func mentions(m *discordgo.Message, botID string) bool {
	for _, u := range m.Mentions {
		if u != nil && u.ID == botID {
			return true
		}
	}
	return false
}

func stripMention(content, botID string) string {
	content = strings.ReplaceAll(content, "<@"+botID+">", "")
	content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	return strings.TrimSpace(content)
}
