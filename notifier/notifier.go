package notifier

import (
	"context"
	"fmt"

	"officepool/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Discord embed colors
const (
	ColorPrimary = 0x5865F2
	ColorSuccess = 0x57F287
	ColorWarning = 0xFEE75C
)

// MessageSender is the part of a discordgo session the notifier needs
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier announces pool activity in a Discord channel
type DiscordNotifier struct {
	sender    MessageSender
	channelID string
}

// New creates a notifier backed by a bot session. The session is only used
// for REST calls, so no gateway connection is opened.
func New(token, channelID string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	return NewWithSender(session, channelID), nil
}

// NewWithSender creates a notifier that posts through sender
func NewWithSender(sender MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		sender:    sender,
		channelID: channelID,
	}
}

// Register subscribes the notifier to the events it announces
func (n *DiscordNotifier) Register(bus *events.Bus) {
	bus.Subscribe(events.EventTypePoolCreated, n.Handle)
	bus.Subscribe(events.EventTypePoolJoined, n.Handle)
	bus.Subscribe(events.EventTypePoolOwnershipClaimed, n.Handle)
}

// Handle posts an announcement for event. Failures are logged.
func (n *DiscordNotifier) Handle(ctx context.Context, event events.Event) {
	embed := buildEmbed(event)
	if embed == nil {
		return
	}

	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"eventType": event.Type(),
			"channelID": n.channelID,
		}).Error("Failed to send Discord notification")
		return
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"channelID": n.channelID,
	}).Debug("Sent Discord notification")
}

func buildEmbed(event events.Event) *discordgo.MessageEmbed {
	switch e := event.(type) {
	case events.PoolCreatedEvent:
		return buildPoolCreatedEmbed(e)
	case events.PoolJoinedEvent:
		// The ownership claim is announced on its own
		if e.ClaimedOwnership {
			return nil
		}
		return buildPoolJoinedEmbed(e)
	case events.PoolOwnershipClaimedEvent:
		return buildOwnershipClaimedEmbed(e)
	default:
		return nil
	}
}
