package notifier

import (
	"fmt"

	"officepool/events"

	"github.com/bwmarrin/discordgo"
)

func buildPoolCreatedEmbed(e events.PoolCreatedEvent) *discordgo.MessageEmbed {
	footer := "Anyone with the code can join and claim it"
	if e.OwnerID != nil {
		footer = "Share the code to invite your colleagues"
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 New pool created",
		Description: fmt.Sprintf("**%s**", e.Title),
		Color:       ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Join code",
				Value:  fmt.Sprintf("`%s`", e.Code),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer,
		},
	}
}

func buildPoolJoinedEmbed(e events.PoolJoinedEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "👋 New participant",
		Description: fmt.Sprintf("**%s** joined **%s**", e.UserName, e.PoolTitle),
		Color:       ColorSuccess,
	}
}

func buildOwnershipClaimedEmbed(e events.PoolOwnershipClaimedEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "👑 Pool claimed",
		Description: fmt.Sprintf("**%s** joined **%s** first and now owns it", e.OwnerName, e.PoolTitle),
		Color:       ColorWarning,
	}
}
