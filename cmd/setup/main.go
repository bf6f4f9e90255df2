package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"gold-bot/internal/config"
)

// Мастер первичной настройки: спрашивает токен, канал и часовой пояс и
// создаёт .env в текущей папке.
func main() {
	if err := config.RunSetup(os.Stdin, os.Stdout, ".env"); err != nil {
		log.Fatalf("❌ Не удалось создать .env: %v", err)
	}
}
