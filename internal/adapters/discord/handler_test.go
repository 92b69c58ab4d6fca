package discord

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transbot/internal/domain"
	"transbot/internal/ports/input"
	"transbot/pkg/markup"
)

const botID = "999"

type fakeSender struct {
	messages  []string
	responses []*discordgo.InteractionResponse
	err       error
}

func (f *fakeSender) ChannelMessageSend(_ string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.messages = append(f.messages, content)
	return &discordgo.Message{}, f.err
}

func (f *fakeSender) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return f.err
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

func newTestHandler(uc *fakeUseCase) *Handler {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewHandler(uc, keyT{}, l)
}

func message(guildID, authorID, content string, mentions ...string) *discordgo.MessageCreate {
	m := &discordgo.Message{
		ChannelID: "c1",
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID},
	}
	for _, id := range mentions {
		m.Mentions = append(m.Mentions, &discordgo.User{ID: id})
	}
	return &discordgo.MessageCreate{Message: m}
}

func TestHandler_HandleMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      *discordgo.MessageCreate
		wantText string
		handled  bool
	}{
		{name: "direct message", msg: message("", "1", "Привет"), wantText: "Привет", handled: true},
		{name: "guild mention", msg: message("g1", "1", "<@999> Hello /ru", botID), wantText: "Hello /ru", handled: true},
		{name: "guild nickname mention", msg: message("g1", "1", "<@!999> /help", botID), wantText: "/help", handled: true},
		{name: "guild without mention", msg: message("g1", "1", "Hello"), handled: false},
		{name: "own message", msg: message("", botID, "Hello"), handled: false},
		{name: "mention only", msg: message("g1", "1", "<@999>", botID), handled: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{reply: "<b>Hi</b> &amp; bye"}
			s := &fakeSender{}
			newTestHandler(uc).HandleMessage(s, botID, tt.msg)

			if !tt.handled {
				assert.Empty(t, uc.got)
				assert.Empty(t, s.messages)
				return
			}
			require.Len(t, uc.got, 1)
			assert.Equal(t, tt.wantText, uc.got[0].Text)
			assert.Equal(t, "dc:c1", uc.got[0].ConversationID)
			assert.Equal(t, []string{"**Hi** & bye"}, s.messages)
		})
	}
}

func TestHandler_HandleMessage_BotAuthor(t *testing.T) {
	uc := &fakeUseCase{reply: "x"}
	msg := message("", "5", "Hello")
	msg.Author.Bot = true

	newTestHandler(uc).HandleMessage(&fakeSender{}, botID, msg)
	assert.Empty(t, uc.got)
}

func TestHandler_HandleMessage_SplitsLongReplies(t *testing.T) {
	uc := &fakeUseCase{reply: strings.Repeat(strings.Repeat("x", 99)+"\n", 30)}
	s := &fakeSender{}

	newTestHandler(uc).HandleMessage(s, botID, message("", "1", "Hello"))

	require.Len(t, s.messages, 2)
	for _, m := range s.messages {
		assert.LessOrEqual(t, len([]rune(m)), markup.DiscordLimit)
	}
}

func TestHandler_HandleMessage_Errors(t *testing.T) {
	s := &fakeSender{}
	newTestHandler(&fakeUseCase{err: errors.New("boom")}).HandleMessage(s, botID, message("", "1", "Hello"))
	assert.Equal(t, []string{"InternalError"}, s.messages)

	s = &fakeSender{}
	newTestHandler(&fakeUseCase{err: domain.ErrEmptyText}).HandleMessage(s, botID, message("", "1", "Hello"))
	assert.Empty(t, s.messages)
}

func TestHandler_HandleCommand(t *testing.T) {
	uc := &fakeUseCase{reply: "✅ <b>saved</b>"}
	s := &fakeSender{}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "c2",
		Locale:    discordgo.EnglishUS,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "setlang",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "codes", Type: discordgo.ApplicationCommandOptionString, Value: "en es"},
			},
		},
	}}

	newTestHandler(uc).HandleCommand(s, i)

	require.Len(t, uc.got, 1)
	assert.Equal(t, input.IncomingMessage{ConversationID: "dc:c2", Text: "/setlang en es", Locale: "en-US"}, uc.got[0])
	require.Len(t, s.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, s.responses[0].Type)
	assert.Equal(t, "✅ **saved**", s.responses[0].Data.Content)
}

func TestSlashCommands(t *testing.T) {
	names := []string{}
	for _, c := range slashCommands() {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"start", "help", "lang", "setlang"}, names)
}
