// Entrypoint lambda del webhook de Telegram (API Gateway v2). Mismo router
// que cmd/bot, pero el dispatch corre síncrono: la lambda se congela al
// devolver la respuesta.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ancr33z/TGRRCOOP/internal/adapters/telegram"
	"github.com/Ancr33z/TGRRCOOP/internal/app/service"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/config"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/pgstore"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/sheets"
)

var (
	rtr    *telegram.Router
	secret string
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cfg := config.Load()
	secret = cfg.WebhookSecret

	ctx := context.Background()
	var table storage.Table
	if cfg.DatabaseURL != "" {
		db, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		if err := pgstore.Migrate(db); err != nil {
			log.Fatal("migrate:", err)
		}
		table = pgstore.New(db)
	} else {
		st, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.ServiceAccountJSON)
		if err != nil {
			log.Fatal(err)
		}
		table = st
	}

	users := storage.NewUserRepo(table)
	requests := storage.NewRequestRepo(table)
	responses := storage.NewResponseRepo(table)

	client, err := telegram.NewClient(cfg.TelegramToken, users)
	if err != nil {
		log.Fatal(err)
	}
	matchSvc := service.NewMatchService(users, requests, responses, client, service.MatchConfig{
		AdminChatID:      cfg.AdminChatID,
		NotifyChatID:     cfg.NotifyChatID,
		NotifyThreadID:   cfg.NotifyThreadID,
		ResponseCooldown: cfg.ResponseCooldown,
	})
	profileSvc := service.NewProfileService(users, requests)
	rtr = telegram.NewRouter(client, users, matchSvc, profileSvc, cfg.PublicName, cfg.WebhookSecret)
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if secret != "" {
		got := req.Headers["x-telegram-bot-api-secret-token"]
		if got == "" {
			got = req.Headers["X-Telegram-Bot-Api-Secret-Token"]
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return events.APIGatewayV2HTTPResponse{StatusCode: 401, Body: "unauthorized"}, nil
		}
	}

	body := req.Body
	if req.IsBase64Encoded {
		dec, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: 400, Body: "invalid base64"}, nil
		}
		body = string(dec)
	}

	var upd tgbotapi.Update
	if err := json.Unmarshal([]byte(body), &upd); err != nil {
		// payload roto: 200 igual, que Telegram no reintente basura
		log.Printf("bad update payload: %v", err)
	} else {
		rtr.Dispatch(ctx, upd)
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"ok":true}`,
	}, nil
}

func main() { lambda.Start(handler) }
