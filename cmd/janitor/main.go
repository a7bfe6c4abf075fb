// Janitor: lambda programada que cierra requests OPEN abandonados y rechaza
// sus PENDING. No manda avisos a usuarios, sólo limpia.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Ancr33z/TGRRCOOP/internal/app/service"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/pgstore"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/sheets"
)

// silentNotifier: el barrido no avisa a nadie.
type silentNotifier struct{}

func (silentNotifier) SendText(context.Context, string, string) error { return nil }
func (silentNotifier) SendOptions(context.Context, string, string, []service.Option) error {
	return nil
}
func (silentNotifier) SendChannel(context.Context, int64, int, string) error { return nil }

func handler(ctx context.Context) (string, error) {
	table, err := openTable(ctx)
	if err != nil {
		return fmt.Sprintf("store: %v", err), nil
	}

	maxAge := 48 * time.Hour
	if v := os.Getenv("STALE_REQUEST_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Sprintf("STALE_REQUEST_AGE: %v", err), nil
		}
		maxAge = d
	}

	users := storage.NewUserRepo(table)
	requests := storage.NewRequestRepo(table)
	responses := storage.NewResponseRepo(table)
	svc := service.NewMatchService(users, requests, responses, silentNotifier{}, service.MatchConfig{})

	closed, rejected, err := svc.CloseStale(ctx, maxAge)
	if err != nil {
		return fmt.Sprintf("sweep: %v", err), nil
	}
	log.Printf("janitor: closed=%d rejected=%d", closed, rejected)
	return fmt.Sprintf("ok closed=%d rejected=%d", closed, rejected), nil
}

func openTable(ctx context.Context) (storage.Table, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := pgstore.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pgstore.New(db), nil
	}
	return sheets.New(ctx, os.Getenv("SPREADSHEET_ID"), os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
}

func main() { lambda.Start(handler) }
