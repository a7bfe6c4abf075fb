package domain

import (
	"fmt"
	"strings"
	"time"
)

type RequestStatus string

const (
	RequestOpen    RequestStatus = "OPEN"
	RequestMatched RequestStatus = "MATCHED"
	RequestClosed  RequestStatus = "CLOSED"
)

type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "PENDING"
	ResponseAccepted ResponseStatus = "ACCEPTED"
	ResponseRejected ResponseStatus = "REJECTED"
)

// User es la fila de Users: identidad de Telegram + ник de juego + score.
type User struct {
	TGID       string
	Username   string // "@handle", puede estar vacío
	Name       string
	GameNick   string
	Score      int
	CreatedAt  time.Time
	LastActive time.Time
}

// DisplayName resuelve qué mostrar en listas: nick de juego, luego @username,
// luego nombre real, y como último recurso el tg_id crudo.
func (u User) DisplayName() string {
	for _, s := range []string{u.GameNick, u.Username, u.Name} {
		if v := strings.TrimSpace(s); v != "" {
			return v
		}
	}
	return u.TGID
}

type Request struct {
	ID                string
	RequesterID       string
	CreatedAt         time.Time
	Status            RequestStatus
	ChosenResponderID string
	ClosedAt          time.Time
}

// Response es única por (request_id, responder_id); reintentos pisan la misma fila.
type Response struct {
	RequestID   string
	ResponderID string
	CreatedAt   time.Time
	Status      ResponseStatus
}

// NewRequestID genera un id monotónico sin contador central:
// milisegundos de creación + id del solicitante.
func NewRequestID(now time.Time, requesterID string) string {
	return fmt.Sprintf("R%d_%s", now.UnixMilli(), requesterID)
}
