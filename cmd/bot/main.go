package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ancr33z/TGRRCOOP/internal/adapters/telegram"
	"github.com/Ancr33z/TGRRCOOP/internal/app/service"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/config"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/pgstore"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/sheets"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	ctx := context.Background()

	table, err := openTable(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("✅ backing store listo")

	// Repos
	users := storage.NewUserRepo(table)
	requests := storage.NewRequestRepo(table)
	responses := storage.NewResponseRepo(table)

	// Telegram client (notifier + transporte)
	client, err := telegram.NewClient(cfg.TelegramToken, users)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("✅ conectado a la Bot API")

	// Services
	matchSvc := service.NewMatchService(users, requests, responses, client, service.MatchConfig{
		AdminChatID:      cfg.AdminChatID,
		NotifyChatID:     cfg.NotifyChatID,
		NotifyThreadID:   cfg.NotifyThreadID,
		ResponseCooldown: cfg.ResponseCooldown,
	})
	profileSvc := service.NewProfileService(users, requests)

	r := telegram.NewRouter(client, users, matchSvc, profileSvc, cfg.PublicName, cfg.WebhookSecret)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r.Handler()}
	go func() {
		log.Printf("🌐 HTTP listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
}

// openTable elige el adapter: Postgres si DATABASE_URL está, si no Sheets.
func openTable(ctx context.Context, cfg config.Config) (storage.Table, error) {
	if cfg.DatabaseURL != "" {
		db, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Println("✅ DB lista y migrada")
		return pgstore.New(db), nil
	}
	return sheets.New(ctx, cfg.SpreadsheetID, cfg.ServiceAccountJSON)
}
