package marketdata

import (
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gocryptotrader/currency"
)

// Цена всегда за тройскую унцию; валюта берётся у источника.
const Unit = "oz"

// DefaultQuote — валюта, если источник её не назвал.
var DefaultQuote = currency.USD

// Параметры подставного значения на случай недоступности источника.
const (
	placeholderBase          = 2000.0
	placeholderSpread        = 50.0
	placeholderChangeSpread  = 25.0
	placeholderPercentSpread = 1.25
)

// spread отображает r из [0, 1) в [-width, width) и округляет до центов.
func spread(r, width float64) float64 {
	return round2((r - 0.5) * 2 * width)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
