package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "postgres://localhost:5432/tourbeau")
	t.Setenv("MANAGER_CHAT_ID", "-1002760039877")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.Mode != BotModeConversation {
		t.Errorf("Mode = %q, want %q", cfg.Mode, BotModeConversation)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.ManagerChatID != -1002760039877 {
		t.Errorf("ManagerChatID = %d", cfg.ManagerChatID)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DB_DSN", "postgres://localhost:5432/tourbeau")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing token error")
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing dsn error")
	}
}

func TestLoad_WebAppModeRequiresURL(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_MODE", "webapp")
	t.Setenv("WEB_APP_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing web app url error")
	}

	t.Setenv("WEB_APP_URL", "https://webapp.example")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode != BotModeWebApp {
		t.Errorf("Mode = %q, want %q", cfg.Mode, BotModeWebApp)
	}
}

func TestLoad_UnknownMode(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_MODE", "hybrid")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want unknown mode error")
	}
}

func TestLoad_SessionTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL_HOURS", "6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SessionTTL != 6*time.Hour {
		t.Errorf("SessionTTL = %v, want 6h", cfg.SessionTTL)
	}

	t.Setenv("SESSION_TTL_HOURS", "zero")
	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want invalid ttl error")
	}
}

func TestLoad_ConversationModeRequiresManagerChat(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "postgres://localhost:5432/tourbeau")
	t.Setenv("MANAGER_CHAT_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing manager chat error")
	}
}
