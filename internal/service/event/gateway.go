package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"gold-bot/internal/model"
)

var ErrFatalClose = errors.New("gateway closed with non-recoverable code")

// Коды закрытия, после которых переподключаться бессмысленно:
// неверный токен, шардинг, неверные или запрещённые intents.
var fatalCloseCodes = map[int]bool{
	4004: true,
	4010: true,
	4011: true,
	4012: true,
	4013: true,
	4014: true,
}

// Gateway держит сессию discordgo и передаёт READY и MESSAGE_CREATE
// обработчикам. После установленного соединения обрывы переживает сама
// сессия (ShouldReconnectOnError); Run повторяет только первое подключение.
type Gateway struct {
	Session        *discordgo.Session
	ReconnectDelay time.Duration

	OnReady   func(model.User)
	OnMessage func(model.Message)

	ready atomic.Bool
}

func NewGateway(session *discordgo.Session) *Gateway {
	g := &Gateway{
		Session:        session,
		ReconnectDelay: 5 * time.Second,
	}
	session.AddHandler(g.onReady)
	session.AddHandler(g.onResumed)
	session.AddHandler(g.onDisconnect)
	session.AddHandler(g.onMessageCreate)
	return g
}

// Ready — true между READY (или RESUMED) и разрывом соединения.
func (g *Gateway) Ready() bool {
	return g.ready.Load()
}

// Run открывает сессию и держит её до отмены ctx. Возвращает ошибку только
// для фатальных кодов закрытия.
func (g *Gateway) Run(ctx context.Context) error {
	for {
		err := g.Session.Open()
		if err == nil {
			break
		}

		var ce *websocket.CloseError
		if errors.As(err, &ce) && fatalCloseCodes[ce.Code] {
			return errors.Wrapf(ErrFatalClose, "code %d: %s", ce.Code, ce.Text)
		}

		log.Warnf("[Gateway] Не удалось подключиться: %v, повтор через %s", err, g.ReconnectDelay)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(g.ReconnectDelay):
		}
	}

	<-ctx.Done()
	g.ready.Store(false)
	if err := g.Session.Close(); err != nil {
		log.Warnf("[Gateway] Ошибка закрытия сессии: %v", err)
	}
	log.Info("[Gateway] Сессия остановлена")
	return nil
}

func (g *Gateway) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	defer g.recoverHandler("READY")

	g.ready.Store(true)
	user := toUser(r.User)
	log.Infof("[Gateway] Бот вошёл как %s", user.Tag())
	if g.OnReady != nil {
		g.OnReady(user)
	}
}

func (g *Gateway) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	g.ready.Store(true)
	log.Info("[Gateway] Сессия возобновлена")
}

func (g *Gateway) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	g.ready.Store(false)
	log.Warn("[Gateway] Соединение потеряно")
}

func (g *Gateway) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	defer g.recoverHandler("MESSAGE_CREATE")

	if m.Message == nil || g.OnMessage == nil {
		return
	}
	g.OnMessage(model.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
		Author:    toUser(m.Author),
	})
}

func (g *Gateway) recoverHandler(event string) {
	if r := recover(); r != nil {
		log.Errorf("[Gateway] Паника в обработчике %s: %v", event, r)
	}
}

func toUser(u *discordgo.User) model.User {
	if u == nil {
		return model.User{}
	}
	return model.User{
		ID:         u.ID,
		Username:   u.Username,
		GlobalName: u.GlobalName,
		Bot:        u.Bot,
	}
}
