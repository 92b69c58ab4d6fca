// Package discord is the Discord gateway adapter.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	logger  *logrus.Logger
}

// NewBot creates a Bot and registers its gateway handlers.
func NewBot(token string, useCase input.MessageUseCase, translator output.T, logger *logrus.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	bot := &Bot{
		session: s,
		handler: NewHandler(useCase, translator, logger),
		logger:  logger,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.handler.HandleMessage(s, s.State.User.ID, m)
	})
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type == discordgo.InteractionApplicationCommand {
			b.handler.HandleCommand(s, i)
		}
	})
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}

	for _, cmd := range slashCommands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			b.logger.WithError(err).WithField("command", cmd.Name).Warn("Slash command registration failed")
		}
	}

	b.logger.WithField("user", b.session.State.User.Username).Info("Discord bot online")
	return nil
}

// Close closes the gateway connection.
func (b *Bot) Close() error {
	return b.session.Close()
}
