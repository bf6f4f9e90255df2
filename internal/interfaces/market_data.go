package interfaces

import (
	"context"

	"github.com/thrasher-corp/gocryptotrader/currency"

	"gold-bot/internal/model"
)

// PriceSource — внешний источник котировки. Один вызов — один запрос,
// без повторов. Currency и Unit заполняет вызывающая сторона; Quote —
// валюта, в которой источник котирует золото.
type PriceSource interface {
	Name() string
	Quote() currency.Code
	FetchQuote(ctx context.Context) (*model.PriceRecord, error)
}

// PriceFetcher никогда не возвращает ошибку: при сбое источника отдаёт
// синтезированную запись.
type PriceFetcher interface {
	FetchPrice(ctx context.Context) model.PriceRecord
}
