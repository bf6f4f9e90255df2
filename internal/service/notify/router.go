package notify

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"gold-bot/internal/interfaces"
	"gold-bot/internal/model"
)

type Action int

const (
	ActionNone Action = iota
	ActionDispatch
	ActionHelp
)

func (a Action) String() string {
	switch a {
	case ActionDispatch:
		return "dispatch"
	case ActionHelp:
		return "help"
	default:
		return "none"
	}
}

const (
	CommandGold      = "!gold"
	CommandGoldPrice = "!goldprice"
	CommandHelp      = "!help"
)

// CommandRouter разбирает входящие сообщения. Состояния между событиями нет.
type CommandRouter struct {
	ChannelID string
	Dispatch  func(ctx context.Context)
	Replier   interfaces.Replier
	HelpText  string
}

func (r *CommandRouter) Classify(msg model.Message) Action {
	if msg.Author.Bot {
		return ActionNone
	}
	if msg.ChannelID != r.ChannelID {
		return ActionNone
	}
	switch strings.ToLower(strings.TrimSpace(msg.Content)) {
	case CommandGold, CommandGoldPrice:
		return ActionDispatch
	case CommandHelp:
		return ActionHelp
	}
	return ActionNone
}

// Handle выполняет действие для сообщения и возвращает его.
func (r *CommandRouter) Handle(ctx context.Context, msg model.Message) Action {
	action := r.Classify(msg)

	switch action {
	case ActionDispatch:
		log.Infof("[Router] 🤖 %s вызвал %s", msg.Author.Tag(), strings.TrimSpace(msg.Content))
		r.Dispatch(ctx)
	case ActionHelp:
		log.Infof("[Router] 🤖 %s вызвал %s", msg.Author.Tag(), CommandHelp)
		if err := r.Replier.Reply(ctx, msg.ChannelID, msg.ID, r.HelpText); err != nil {
			log.Errorf("[Router] Ошибка ответа на %s: %v", CommandHelp, err)
		}
	}
	return action
}
