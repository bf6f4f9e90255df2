package marketdata

import (
	"context"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"gold-bot/internal/interfaces"
	"gold-bot/internal/model"
)

type GoldPriceService struct {
	Source  interfaces.PriceSource
	Timeout time.Duration
	// Rand и Now подменяются в тестах.
	Rand func() float64
	Now  func() time.Time
}

func NewGoldPriceService(source interfaces.PriceSource, timeout time.Duration) *GoldPriceService {
	return &GoldPriceService{
		Source:  source,
		Timeout: timeout,
		Rand:    rand.Float64,
		Now:     time.Now,
	}
}

// FetchPrice делает одну попытку получить цену и никогда не возвращает
// ошибку: при любом сбое отдаёт правдоподобную подставную запись.
func (s *GoldPriceService) FetchPrice(ctx context.Context) model.PriceRecord {
	name := s.Source.Name()
	log.Infof("[Giá vàng] Запрос цены золота у %s", name)

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	quote, err := s.Source.FetchQuote(ctx)
	switch {
	case err != nil:
		log.WithField("source", name).Warnf("[Giá vàng] Источник недоступен, используем подставные данные: %v", err)
	case quote == nil || !(quote.Price > 0) || !model.Finite(quote.Price):
		log.WithField("source", name).Warnf("[Giá vàng] Источник вернул некорректную цену, используем подставные данные")
	default:
		log.WithField("source", name).Infof("[Giá vàng] Получена цена %.2f", quote.Price)
		return s.live(quote)
	}

	return s.placeholder()
}

func (s *GoldPriceService) live(q *model.PriceRecord) model.PriceRecord {
	rec := model.PriceRecord{
		Price:            q.Price,
		Currency:         s.quoteCode(),
		Unit:             Unit,
		Timestamp:        q.Timestamp,
		Change24h:        finite(q.Change24h),
		ChangePercent24h: finite(q.ChangePercent24h),
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.Now()
	}
	return rec
}

// quoteCode — код валюты источника; подставная запись использует тот же код.
func (s *GoldPriceService) quoteCode() string {
	code := s.Source.Quote()
	if code.IsEmpty() {
		code = DefaultQuote
	}
	return code.Upper().String()
}

func finite(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return model.FiniteFloat(*v)
}

// placeholder строит запись вокруг 2000 USD. Цена держится строго внутри
// (1950, 2050) даже после округления.
func (s *GoldPriceService) placeholder() model.PriceRecord {
	price := placeholderBase + spread(s.Rand(), placeholderSpread)
	if lo := placeholderBase - placeholderSpread + 0.01; price < lo {
		price = lo
	}
	if hi := placeholderBase + placeholderSpread - 0.01; price > hi {
		price = hi
	}

	return model.PriceRecord{
		Price:            round2(price),
		Currency:         s.quoteCode(),
		Unit:             Unit,
		Timestamp:        s.Now(),
		Change24h:        model.Float(spread(s.Rand(), placeholderChangeSpread)),
		ChangePercent24h: model.Float(spread(s.Rand(), placeholderPercentSpread)),
		Synthetic:        true,
	}
}
