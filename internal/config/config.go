package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type BotMode string

const (
	// BotModeConversation бот сам ведёт пошаговую регистрацию в чате
	BotModeConversation BotMode = "conversation"
	// BotModeWebApp бот отдаёт кнопку с мини-приложением и на этом всё
	BotModeWebApp BotMode = "webapp"
)

type Config struct {
	TelegramToken  string
	DBDSN          string
	Environment    string
	HTTPAddr       string
	WebAppURL      string
	ManagerChatID  int64
	Mode           BotMode
	SessionTTL     time.Duration
	MigrationsPath string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		WebAppURL:      os.Getenv("WEB_APP_URL"),
		Mode:           BotMode(os.Getenv("BOT_MODE")),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.Mode == "" {
		cfg.Mode = BotModeConversation
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "./migrations"
	}

	// Обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.Mode != BotModeConversation && cfg.Mode != BotModeWebApp {
		return nil, fmt.Errorf("BOT_MODE must be %q or %q, got %q", BotModeConversation, BotModeWebApp, cfg.Mode)
	}
	if cfg.Mode == BotModeWebApp && cfg.WebAppURL == "" {
		return nil, fmt.Errorf("WEB_APP_URL is required in webapp mode")
	}

	if raw := os.Getenv("MANAGER_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MANAGER_CHAT_ID must be an integer: %w", err)
		}
		cfg.ManagerChatID = id
	} else if cfg.Mode == BotModeConversation {
		return nil, fmt.Errorf("MANAGER_CHAT_ID is required in conversation mode")
	}

	cfg.SessionTTL = 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer, got %q", raw)
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}
