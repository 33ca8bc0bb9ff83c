package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken   string
	BaseAdminChatID int64
	DatabaseURL     string
	ExtractPath     string
	ExtractSheet    string
	PromotionsPath  string
}

var instance *BotConfig
var once sync.Once

func GetBotConfig() *BotConfig {
	once.Do(func() {
		instance = &BotConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Fatalf("error loading env variables: %s", err.Error())
		}

		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
		if instance.TelegramToken == "" {
			logrus.Fatal("could not get bot token")
		}

		instance.BaseAdminChatID = getEnvAsInt("BASE_ADMIN_CHAT_ID", -2)
		if instance.BaseAdminChatID == -2 {
			logrus.Fatal("could not get admin chat id")
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.ExtractPath = getEnv("EXTRACT_PATH", "")
		if instance.ExtractPath == "" {
			logrus.Fatal("could not get extract path")
		}

		instance.ExtractSheet = getEnv("EXTRACT_SHEET", "Base 2025")

		// Optional: promotions workbook is a separate file and may be absent.
		instance.PromotionsPath = getEnv("PROMOTIONS_PATH", "")
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
