package service

import (
	"context"
	"time"

	"github.com/Ancr33z/TGRRCOOP/internal/domain"
)

// Lo implementa internal/infra/storage.UserRepo
type UserRegistry interface {
	Upsert(ctx context.Context, tgID, username, name string) error
	SetNickname(ctx context.Context, tgID, nick string) error
	IncrementScore(ctx context.Context, tgID string, delta int) error
	Brief(ctx context.Context, tgID string) (*domain.User, error)
	DisplayName(ctx context.Context, tgID string) (string, error)
}

// Lo implementa internal/infra/storage.RequestRepo
type RequestLedger interface {
	Create(ctx context.Context, requestID, requesterID string) error
	FindOpenByRequester(ctx context.Context, requesterID string) (*domain.Request, error)
	FindByID(ctx context.Context, requestID string) (*domain.Request, error)
	MarkMatched(ctx context.Context, requestID, responderID string) error
	MarkClosed(ctx context.Context, requestID string) error
	ListOpenExcluding(ctx context.Context, requesterID string) ([]domain.Request, error)
	ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Request, error)
}

// Lo implementa internal/infra/storage.ResponseRepo
type ResponseLedger interface {
	Get(ctx context.Context, requestID, responderID string) (*domain.Response, error)
	Upsert(ctx context.Context, requestID, responderID string, status domain.ResponseStatus) error
	SetStatus(ctx context.Context, requestID, responderID string, status domain.ResponseStatus) error
	ListPendingResponders(ctx context.Context, requestID string) ([]string, error)
	RejectOthers(ctx context.Context, requestID, keepResponderID string) ([]string, error)
	RejectAllPending(ctx context.Context, requestID string) ([]string, error)
}

// Option es un botón seleccionable: label visible + token que vuelve por el
// callback.
type Option struct {
	Label string
	Token string
}

// Notifier lo implementa internal/adapters/telegram.Client. El gateway es un
// colaborador externo: el engine sólo emite intents, el rendering es cosa
// del adapter.
type Notifier interface {
	SendText(ctx context.Context, recipientID, text string) error
	SendOptions(ctx context.Context, recipientID, text string, options []Option) error
	SendChannel(ctx context.Context, chatID int64, threadID int, text string) error
}
