package discord

import (
	"github.com/bwmarrin/discordgo"
)

func slashCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{Name: "start", Description: "Show the welcome message"},
		{Name: "help", Description: "Show usage"},
		{Name: "lang", Description: "List supported languages"},
		{
			Name:        "setlang",
			Description: "Choose target languages for this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "codes",
					Description: "Comma or space separated codes, e.g. en,es",
					Required:    false,
				},
			},
		},
	}
}
