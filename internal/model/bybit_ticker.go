package model

// BybitTickersResult — поле result ответа /v5/market/tickers.
type BybitTickersResult struct {
	Category string        `mapstructure:"category"`
	List     []BybitTicker `mapstructure:"list"`
}

// BybitTicker содержит только те поля спотового тикера, что нужны боту.
// Bybit отдаёт цены строками.
type BybitTicker struct {
	Symbol       string `mapstructure:"symbol"`
	LastPrice    string `mapstructure:"lastPrice"`
	PrevPrice24h string `mapstructure:"prevPrice24h"`
	Price24hPcnt string `mapstructure:"price24hPcnt"`
}
