package config

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

const (
	DefaultTimezone     = "Asia/Ho_Chi_Minh"
	DefaultSchedule     = "0 9 * * *"
	DefaultGoldAPIURL   = "https://api.gold-api.com"
	DefaultBybitAPIURL  = "https://api.bybit.com"
	DefaultLogLevel     = "info"
	DefaultFetchTimeout = 10 * time.Second

	SourceGoldAPI = "gold-api"
	SourceBybit   = "bybit"
)

var (
	ErrMissingToken   = errors.New("DISCORD_TOKEN is required")
	ErrMissingChannel = errors.New("CHANNEL_ID is required")
)

// Config читается один раз при старте и дальше не меняется.
// Компоненты получают нужные поля явно, а не лезут в окружение.
type Config struct {
	DiscordToken string
	ChannelID    string
	Timezone     string
	Location     *time.Location
	Schedule     string

	PriceSource  string
	GoldAPIURL   string
	BybitAPIURL  string
	FetchTimeout time.Duration

	HealthAddr string
	LogLevel   string
	LogFile    string
}

// Load собирает конфигурацию из getenv (обычно os.Getenv после godotenv.Load).
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DiscordToken: strings.TrimSpace(getenv("DISCORD_TOKEN")),
		ChannelID:    strings.TrimSpace(getenv("CHANNEL_ID")),
		Timezone:     valueOr(getenv("TIMEZONE"), DefaultTimezone),
		Schedule:     valueOr(getenv("CRON_SCHEDULE"), DefaultSchedule),
		PriceSource:  strings.ToLower(valueOr(getenv("PRICE_SOURCE"), SourceGoldAPI)),
		GoldAPIURL:   strings.TrimRight(valueOr(getenv("GOLD_API_URL"), DefaultGoldAPIURL), "/"),
		BybitAPIURL:  strings.TrimRight(valueOr(getenv("BYBIT_API_URL"), DefaultBybitAPIURL), "/"),
		FetchTimeout: DefaultFetchTimeout,
		HealthAddr:   strings.TrimSpace(getenv("HEALTH_ADDR")),
		LogLevel:     valueOr(getenv("LOG_LEVEL"), DefaultLogLevel),
		LogFile:      strings.TrimSpace(getenv("LOG_FILE")),
	}

	if cfg.DiscordToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid TIMEZONE %q", cfg.Timezone)
	}
	cfg.Location = loc

	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, errors.Wrapf(err, "invalid CRON_SCHEDULE %q", cfg.Schedule)
	}

	switch cfg.PriceSource {
	case SourceGoldAPI, SourceBybit:
	default:
		return nil, errors.Errorf("unsupported PRICE_SOURCE %q", cfg.PriceSource)
	}

	return cfg, nil
}

func valueOr(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
