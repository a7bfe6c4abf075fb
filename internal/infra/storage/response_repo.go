package storage

import (
	"context"
	"time"

	"github.com/Ancr33z/TGRRCOOP/internal/domain"
)

// ResponseRepo: una fila por (request_id, responder_id); un reintento del
// mismo responder pisa la fila existente en vez de apendear otra.
type ResponseRepo struct {
	t   Table
	now func() time.Time
}

func NewResponseRepo(t Table) *ResponseRepo { return &ResponseRepo{t: t, now: time.Now} }

func (r *ResponseRepo) Get(ctx context.Context, requestID, responderID string) (*domain.Response, error) {
	rows, err := r.scanPair(ctx, requestID, responderID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	resp := rowToResponse(rows[0])
	return &resp, nil
}

// Upsert crea la fila con el status dado o, si ya existe, refresca timestamp
// y status. El chequeo de cooldown es responsabilidad del engine, antes de
// llamar acá.
func (r *ResponseRepo) Upsert(ctx context.Context, requestID, responderID string, status domain.ResponseStatus) error {
	rows, err := r.scanPair(ctx, requestID, responderID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return r.t.Append(ctx, TableResponses, map[string]string{
			ColRequestID:   requestID,
			ColResponderID: responderID,
			ColCreatedAt:   NowISO(r.now()),
			ColStatus:      string(status),
		})
	}
	row := rows[0]
	if row.Has(ColCreatedAt) {
		if err := r.t.UpdateCell(ctx, TableResponses, row.Index, ColCreatedAt, NowISO(r.now())); err != nil {
			return err
		}
	}
	return r.t.UpdateCell(ctx, TableResponses, row.Index, ColStatus, string(status))
}

// SetStatus es Upsert cuando sólo cambia el status (sin nuevo submit).
func (r *ResponseRepo) SetStatus(ctx context.Context, requestID, responderID string, status domain.ResponseStatus) error {
	return r.Upsert(ctx, requestID, responderID, status)
}

func (r *ResponseRepo) ListPendingResponders(ctx context.Context, requestID string) ([]string, error) {
	rows, err := r.t.Scan(ctx, TableResponses, func(row Row) bool {
		return row.Get(ColRequestID) == requestID && row.Get(ColStatus) == string(domain.ResponsePending)
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Get(ColResponderID))
	}
	return out, nil
}

// RejectOthers pasa a REJECTED todo PENDING del request salvo el elegido y
// devuelve exactamente los que transicionó acá, para que el caller avise
// sólo a esos (los rechazados de antes ya recibieron su mensaje).
func (r *ResponseRepo) RejectOthers(ctx context.Context, requestID, keepResponderID string) ([]string, error) {
	rows, err := r.t.Scan(ctx, TableResponses, func(row Row) bool {
		return row.Get(ColRequestID) == requestID &&
			row.Get(ColStatus) == string(domain.ResponsePending) &&
			row.Get(ColResponderID) != keepResponderID
	})
	if err != nil {
		return nil, err
	}
	rejected := make([]string, 0, len(rows))
	for _, row := range rows {
		if err := r.t.UpdateCell(ctx, TableResponses, row.Index, ColStatus, string(domain.ResponseRejected)); err != nil {
			return rejected, err
		}
		rejected = append(rejected, row.Get(ColResponderID))
	}
	return rejected, nil
}

// RejectAllPending: igual que RejectOthers pero sin excepción; lo usa la
// salida de la cola y el janitor.
func (r *ResponseRepo) RejectAllPending(ctx context.Context, requestID string) ([]string, error) {
	return r.RejectOthers(ctx, requestID, "")
}

func (r *ResponseRepo) scanPair(ctx context.Context, requestID, responderID string) ([]Row, error) {
	return r.t.Scan(ctx, TableResponses, func(row Row) bool {
		return row.Get(ColRequestID) == requestID && row.Get(ColResponderID) == responderID
	})
}

func rowToResponse(row Row) domain.Response {
	return domain.Response{
		RequestID:   row.Get(ColRequestID),
		ResponderID: row.Get(ColResponderID),
		CreatedAt:   ParseISO(row.Get(ColCreatedAt)),
		Status:      domain.ResponseStatus(row.Get(ColStatus)),
	}
}
