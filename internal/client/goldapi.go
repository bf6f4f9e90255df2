package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/thrasher-corp/gocryptotrader/currency"

	"gold-bot/internal/model"
)

const UserAgent = "Discord-Gold-Bot/1.0"

var (
	ErrPriceMissing = errors.New("price field is missing")
	ErrPriceInvalid = errors.New("price is not a finite number")
)

// GoldAPI — клиент https://gold-api.com. Ключ не нужен, лимитов нет.
type GoldAPI struct {
	BaseURL string
	Symbol  string
	http    *http.Client
}

func NewGoldAPI(baseURL string, timeout time.Duration) *GoldAPI {
	return &GoldAPI{
		BaseURL: baseURL,
		Symbol:  "XAU",
		http:    &http.Client{Timeout: timeout},
	}
}

func (g *GoldAPI) Name() string {
	return "gold-api"
}

// Quote: gold-api.com отдаёт XAU в долларах.
func (g *GoldAPI) Quote() currency.Code {
	return currency.USD
}

// FetchQuote делает ровно один GET /price/{symbol}.
func (g *GoldAPI) FetchQuote(ctx context.Context) (*model.PriceRecord, error) {
	url := g.BaseURL + "/price/" + g.Symbol

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build gold-api request")
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "gold-api request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read gold-api response")
	}
	log.Debugf("[Gold-API] %s -> %d: %s", url, resp.StatusCode, body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("gold-api returned %s", resp.Status)
	}

	var payload model.GoldAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(err, "decode gold-api response")
	}
	if payload.Price == nil {
		return nil, ErrPriceMissing
	}

	price := payload.Price.Float64()
	if !model.Finite(price) {
		return nil, errors.Wrapf(ErrPriceInvalid, "got %v", price)
	}

	rec := &model.PriceRecord{Price: price}
	if payload.UpdatedAt != "" {
		ts, err := time.Parse(time.RFC3339, payload.UpdatedAt)
		if err != nil {
			log.Debugf("[Gold-API] не удалось разобрать updatedAt %q: %v", payload.UpdatedAt, err)
		} else {
			rec.Timestamp = ts
		}
	}
	// NaN и Inf в изменениях отбрасываем: строка изменения просто не выводится
	if payload.Change24h != nil {
		rec.Change24h = model.FiniteFloat(payload.Change24h.Float64())
	}
	if payload.ChangePercent24h != nil {
		rec.ChangePercent24h = model.FiniteFloat(payload.ChangePercent24h.Float64())
	}
	return rec, nil
}
