package model

import (
	"math"
	"time"
)

// PriceRecord — одна котировка золота, полученная из источника или
// синтезированная при его недоступности. Живёт только в рамках одного цикла
// рассылки и нигде не сохраняется.
type PriceRecord struct {
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	Unit             string    `json:"unit"`
	Timestamp        time.Time `json:"timestamp"`
	Change24h        *float64  `json:"change24h,omitempty"`
	ChangePercent24h *float64  `json:"changePercent24h,omitempty"`
	// Synthetic отмечает подставное значение. Используется только в логах,
	// в сообщение не попадает.
	Synthetic bool `json:"-"`
}

func (p *PriceRecord) HasChange() bool {
	return p.Change24h != nil
}

func (p *PriceRecord) HasChangePercent() bool {
	return p.Change24h != nil && p.ChangePercent24h != nil
}

// Float возвращает указатель на копию значения; удобно для опциональных полей.
func Float(v float64) *float64 {
	return &v
}

// Finite — false для NaN и ±Inf.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteFloat как Float, но для NaN и ±Inf возвращает nil.
func FiniteFloat(v float64) *float64 {
	if !Finite(v) {
		return nil
	}
	return &v
}
