package clients

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"claudecord/models"
)

// DiscordClient wraps a discordgo session. Connection handshake, reconnection
// and rate limiting are all handled by discordgo itself.
type DiscordClient struct {
	session *discordgo.Session
}

func NewDiscordClient(botToken string) (*DiscordClient, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Message content requires its own privileged intent on top of the
	// guild/DM message events.
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return &DiscordClient{session: session}, nil
}

// OnIncomingMessage registers a handler for message-create events. Messages
// authored by bots (including this one) are dropped before the handler runs.
func (c *DiscordClient) OnIncomingMessage(handler func(msg models.IncomingMessage)) {
	c.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		if s.State.User != nil && m.Author.ID == s.State.User.ID {
			return
		}

		handler(models.IncomingMessage{
			MessageID:  m.ID,
			ChannelID:  m.ChannelID,
			AuthorID:   m.Author.ID,
			AuthorName: m.Author.Username,
			Content:    m.Content,
		})
	})
}

// Open starts the websocket connection to Discord.
func (c *DiscordClient) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	return nil
}

func (c *DiscordClient) Close() error {
	if err := c.session.Close(); err != nil {
		return fmt.Errorf("failed to close Discord session: %w", err)
	}
	return nil
}

// SendMessage sends one outgoing message to a channel.
func (c *DiscordClient) SendMessage(channelID, content string) error {
	if _, err := c.session.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("failed to send Discord message: %w", err)
	}
	return nil
}

// BotUser fetches the bot's own user, for the startup log line.
func (c *DiscordClient) BotUser() (*discordgo.User, error) {
	botUser, err := c.session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("failed to get bot user: %w", err)
	}
	return botUser, nil
}
