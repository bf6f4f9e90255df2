package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"gold-bot/internal/client"
	"gold-bot/internal/config"
	"gold-bot/internal/handler"
	"gold-bot/internal/interfaces"
	"gold-bot/internal/model"
	"gold-bot/internal/service/event"
	"gold-bot/internal/service/marketdata"
	"gold-bot/internal/service/notify"
	"gold-bot/internal/service/schedule"
	"gold-bot/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf(".env не загружен: %v", err)
	}

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации: %v", err)
	}

	logFile := setupLogging(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var source interfaces.PriceSource
	switch cfg.PriceSource {
	case config.SourceBybit:
		source = client.NewByBit(cfg.BybitAPIURL)
	default:
		source = client.NewGoldAPI(cfg.GoldAPIURL, cfg.FetchTimeout)
	}
	log.Infof("Источник цены: %s", source.Name())

	session, err := client.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatalf("❌ Ошибка создания сессии Discord: %v", err)
	}
	discord := client.NewDiscord(session)
	formatter := utils.NewFormatter(cfg.Location, cfg.Schedule, cfg.Timezone)

	dispatcher := &notify.Dispatcher{
		Prices:    marketdata.NewGoldPriceService(source, cfg.FetchTimeout),
		Channels:  discord,
		Formatter: formatter,
		ChannelID: cfg.ChannelID,
	}
	// одна функция на все три триггера: старт, расписание, команда
	sendUpdate := dispatcher.SendUpdate

	router := &notify.CommandRouter{
		ChannelID: cfg.ChannelID,
		Dispatch:  sendUpdate,
		Replier:   discord,
		HelpText:  formatter.FormatHelp(),
	}

	daily, err := schedule.NewDaily(cfg.Schedule, cfg.Location, sendUpdate)
	if err != nil {
		log.Fatalf("❌ Ошибка расписания: %v", err)
	}

	gateway := event.NewGateway(session)
	var startup sync.Once
	gateway.OnReady = func(model.User) {
		startup.Do(func() {
			log.Infof("📅 Обновления по расписанию: %s (%s)", utils.DescribeSchedule(cfg.Schedule), cfg.Timezone)
			// стартовое сообщение — подтверждение, что бот работает
			sendUpdate(ctx)
		})
	}
	gateway.OnMessage = func(m model.Message) {
		router.Handle(ctx, m)
	}

	var healthSrv *http.Server
	if cfg.HealthAddr != "" {
		healthSrv = &http.Server{
			Addr:              cfg.HealthAddr,
			Handler:           handler.NewRouter(handler.NewHealthHandler(gateway)),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Infof("Health-эндпоинт слушает %s", cfg.HealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("Ошибка health-сервера: %v", err)
			}
		}()
	}

	daily.Start()
	runErr := gateway.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	daily.Stop(shutdownCtx)
	if healthSrv != nil {
		_ = healthSrv.Shutdown(shutdownCtx)
	}

	if runErr != nil {
		log.Fatalf("❌ Gateway остановлен: %v", runErr)
	}
	log.Info("Бот остановлен")
}

// setupLogging настраивает logrus. Если задан LOG_FILE, пишем и в консоль,
// и в файл.
func setupLogging(cfg *config.Config) *os.File {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Неизвестный LOG_LEVEL %q, используем info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFile == "" {
		return nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		log.Fatalf("не удалось открыть лог-файл: %v", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f
}
