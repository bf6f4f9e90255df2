package model

import "github.com/thrasher-corp/gocryptotrader/types"

// GoldAPIResponse — ответ https://api.gold-api.com/price/XAU.
// Числа принимаются и в виде строк, отсутствующие поля остаются nil.
type GoldAPIResponse struct {
	Name             string        `json:"name"`
	Symbol           string        `json:"symbol"`
	Price            *types.Number `json:"price"`
	UpdatedAt        string        `json:"updatedAt"`
	Change24h        *types.Number `json:"change_24h"`
	ChangePercent24h *types.Number `json:"change_percent_24h"`
}
