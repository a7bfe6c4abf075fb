package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	TelegramToken string
	PublicName    string // nombre que el bot usa en el /start
	WebhookSecret string // header X-Telegram-Bot-Api-Secret-Token
	HTTPAddr      string // default :8080

	// Backing store: Sheets (deploy real) o Postgres si DATABASE_URL viene.
	SpreadsheetID      string
	ServiceAccountJSON string
	DatabaseURL        string

	// Destinos de avisos; 0 = apagado.
	AdminChatID    int64
	NotifyChatID   int64
	NotifyThreadID int

	ResponseCooldown time.Duration // ventana anti re-otklik, default 10m
	StaleRequestAge  time.Duration // corte del janitor, default 48h
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("missing env %s", k)
		}
		return v
	}

	cfg := Config{
		TelegramToken:      get("TELEGRAM_TOKEN", true),
		PublicName:         get("BOT_PUBLIC_NAME", false),
		WebhookSecret:      get("WEBHOOK_SECRET", false),
		HTTPAddr:           get("HTTP_ADDR", false),
		SpreadsheetID:      get("SPREADSHEET_ID", false),
		ServiceAccountJSON: get("GOOGLE_SERVICE_ACCOUNT_JSON", false),
		DatabaseURL:        get("DATABASE_URL", false),
		AdminChatID:        getInt64("ADMIN_CHAT_ID"),
		NotifyChatID:       getInt64("COOP_NOTIFY_CHAT_ID"),
		NotifyThreadID:     int(getInt64("COOP_NOTIFY_THREAD_ID")),
		ResponseCooldown:   getDuration("RESPONSE_COOLDOWN", 10*time.Minute),
		StaleRequestAge:    getDuration("STALE_REQUEST_AGE", 48*time.Hour),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.DatabaseURL == "" && (cfg.SpreadsheetID == "" || cfg.ServiceAccountJSON == "") {
		log.Fatal("need SPREADSHEET_ID + GOOGLE_SERVICE_ACCOUNT_JSON, or DATABASE_URL")
	}
	return cfg
}

func getInt64(k string) int64 {
	v := os.Getenv(k)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("env %s: %v", k, err)
	}
	return n
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("env %s: %v", k, err)
	}
	return d
}
