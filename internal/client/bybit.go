package client

import (
	"context"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/thrasher-corp/gocryptotrader/currency"
	bybit_connector "github.com/wuhewuhe/bybit.go.api"

	"gold-bot/internal/model"
)

// ByBit берёт цену токенизированного золота (XAUT) со спотового рынка Bybit.
// Публичный эндпоинт, ключи не нужны.
type ByBit struct {
	Pair   currency.Pair
	Symbol string
	client *bybit_connector.Client
}

func NewByBit(baseURL string) *ByBit {
	pair := currency.NewPair(currency.NewCode("XAUT"), currency.USDT)
	return &ByBit{
		Pair:   pair,
		Symbol: pair.Base.Upper().String() + pair.Quote.Upper().String(),
		client: bybit_connector.NewBybitHttpClient("", "", bybit_connector.WithBaseURL(baseURL)),
	}
}

func (b *ByBit) Name() string {
	return "bybit"
}

// Quote — котируемая валюта пары (USDT для XAUTUSDT).
func (b *ByBit) Quote() currency.Code {
	return b.Pair.Quote
}

// FetchQuote запрашивает /v5/market/tickers для одного символа.
// Изменение за 24ч считается как lastPrice - prevPrice24h.
func (b *ByBit) FetchQuote(ctx context.Context) (*model.PriceRecord, error) {
	params := map[string]interface{}{"category": "spot", "symbol": b.Symbol}
	resp, err := b.client.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "bybit tickers request")
	}
	if resp == nil {
		return nil, errors.New("bybit returned empty response")
	}
	if resp.RetCode != 0 {
		return nil, errors.Errorf("bybit error %d: %s", resp.RetCode, resp.RetMsg)
	}

	var result model.BybitTickersResult
	if err := mapstructure.Decode(resp.Result, &result); err != nil {
		return nil, errors.Wrap(err, "decode bybit tickers")
	}

	for _, t := range result.List {
		if !strings.EqualFold(t.Symbol, b.Symbol) {
			continue
		}
		return tickerToRecord(t)
	}
	return nil, errors.Errorf("ticker %s not found", b.Symbol)
}

func tickerToRecord(t model.BybitTicker) (*model.PriceRecord, error) {
	if t.LastPrice == "" {
		return nil, ErrPriceMissing
	}
	last, err := decimal.NewFromString(t.LastPrice)
	if err != nil {
		return nil, errors.Wrapf(err, "parse lastPrice %q", t.LastPrice)
	}

	rec := &model.PriceRecord{Price: last.InexactFloat64()}

	prev, err := decimal.NewFromString(t.PrevPrice24h)
	if err != nil || prev.IsZero() {
		log.Debugf("[Bybit] нет prevPrice24h для %s, изменение не заполняем", t.Symbol)
		return rec, nil
	}
	rec.Change24h = model.Float(last.Sub(prev).InexactFloat64())

	if pcnt, err := decimal.NewFromString(t.Price24hPcnt); err == nil {
		rec.ChangePercent24h = model.Float(pcnt.Mul(decimal.NewFromInt(100)).InexactFloat64())
	}
	return rec, nil
}
