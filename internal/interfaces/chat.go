package interfaces

import "context"

// Channel — хэндл текстового канала, в который можно писать.
type Channel interface {
	ID() string
	Send(ctx context.Context, text string) error
}

type ChannelResolver interface {
	Channel(ctx context.Context, id string) (Channel, error)
}

// Replier отвечает на конкретное сообщение (message reference), минуя рассылку.
type Replier interface {
	Reply(ctx context.Context, channelID, messageID, text string) error
}

// GatewayStatus нужен health-эндпоинту.
type GatewayStatus interface {
	Ready() bool
}
