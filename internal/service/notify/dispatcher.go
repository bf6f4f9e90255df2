package notify

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"gold-bot/internal/interfaces"
	"gold-bot/internal/model"
)

// MessageFormatter — то, что Dispatcher берёт у utils.Formatter.
type MessageFormatter interface {
	FormatGoldPrice(data model.PriceRecord) string
}

// Dispatcher выполняет один цикл рассылки: цена -> канал -> текст -> отправка.
type Dispatcher struct {
	Prices    interfaces.PriceFetcher
	Channels  interfaces.ChannelResolver
	Formatter MessageFormatter
	ChannelID string
}

// SendUpdate никогда не возвращает ошибку и не паникует наружу: сбой
// доставки только логируется, обновление за этот цикл пропадает.
// Одна и та же функция вызывается при старте, по расписанию и по команде.
func (d *Dispatcher) SendUpdate(ctx context.Context) {
	logger := log.WithFields(log.Fields{
		"cycle":   uuid.NewString(),
		"channel": d.ChannelID,
	})
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[Dispatcher] Паника при отправке обновления: %v", r)
		}
	}()

	logger.Info("[Dispatcher] 📊 Получаем цену золота...")
	data := d.Prices.FetchPrice(ctx)
	if data.Synthetic {
		logger.Warnf("[Dispatcher] Отправляем подставную цену %.2f", data.Price)
	}

	channel, err := d.Channels.Channel(ctx, d.ChannelID)
	if err != nil {
		logger.Errorf("[Dispatcher] ❌ Канал не найден или у бота нет доступа: %v", err)
		return
	}

	message := d.Formatter.FormatGoldPrice(data)
	if err := channel.Send(ctx, message); err != nil {
		logger.Errorf("[Dispatcher] ❌ Ошибка отправки обновления: %v", err)
		return
	}

	logger.Info("[Dispatcher] ✅ Обновление цены золота отправлено")
}
