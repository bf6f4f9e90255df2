package client

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"gold-bot/internal/interfaces"
)

const discordUserAgent = "DiscordBot (https://github.com/gold-bot, 1.0)"

// Intents: GUILDS | GUILD_MESSAGES | MESSAGE_CONTENT
const DiscordIntents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

// NewSession готовит сессию discordgo: одна и та же сессия обслуживает
// gateway (event.Gateway) и REST (Discord). Соединение не открывается.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "create discord session")
	}
	s.Identify.Intents = DiscordIntents
	s.UserAgent = discordUserAgent
	s.Client = &http.Client{Timeout: 10 * time.Second}
	s.Dialer = &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 15 * time.Second,
	}
	s.ShouldReconnectOnError = true
	s.StateEnabled = true
	s.LogLevel = discordgo.LogWarning

	discordgo.Logger = discordLog
	return s, nil
}

// discordLog перенаправляет внутренние логи discordgo в logrus.
func discordLog(level, _ int, format string, a ...interface{}) {
	entry := log.WithField("component", "discordgo")
	switch level {
	case discordgo.LogError:
		entry.Errorf("[Discord] "+format, a...)
	case discordgo.LogWarning:
		entry.Warnf("[Discord] "+format, a...)
	case discordgo.LogInformational:
		entry.Infof("[Discord] "+format, a...)
	default:
		entry.Debugf("[Discord] "+format, a...)
	}
}

// Discord — поиск канала, отправка и ответ поверх сессии discordgo.
type Discord struct {
	Session *discordgo.Session
}

func NewDiscord(session *discordgo.Session) *Discord {
	return &Discord{Session: session}
}

// TextChannel — найденный канал, в который бот может писать.
type TextChannel struct {
	Info    *discordgo.Channel
	session *discordgo.Session
}

func (c *TextChannel) ID() string {
	return c.Info.ID
}

func (c *TextChannel) Send(ctx context.Context, text string) error {
	if _, err := c.session.ChannelMessageSend(c.Info.ID, text, discordgo.WithContext(ctx)); err != nil {
		return errors.Wrapf(err, "send message to %s", c.Info.ID)
	}
	return nil
}

// Channel возвращает хэндл канала: сначала из кэша сессии, затем через REST.
// Ошибка, если канала нет, у бота нет доступа или в канал нельзя писать текст.
func (d *Discord) Channel(ctx context.Context, id string) (interfaces.Channel, error) {
	var ch *discordgo.Channel
	if d.Session.State != nil {
		ch, _ = d.Session.State.Channel(id)
	}
	if ch == nil {
		var err error
		ch, err = d.Session.Channel(id, discordgo.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrapf(err, "get channel %s", id)
		}
	}
	if !isTextBased(ch.Type) {
		return nil, errors.Errorf("channel %s (type %d) is not a text channel", id, ch.Type)
	}
	return &TextChannel{Info: ch, session: d.Session}, nil
}

func (d *Discord) Reply(ctx context.Context, channelID, messageID, text string) error {
	ref := &discordgo.MessageReference{MessageID: messageID, ChannelID: channelID}
	if _, err := d.Session.ChannelMessageSendReply(channelID, text, ref, discordgo.WithContext(ctx)); err != nil {
		return errors.Wrapf(err, "reply to %s in %s", messageID, channelID)
	}
	return nil
}

func isTextBased(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread, discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread:
		return true
	}
	return false
}
