package storage

import (
	"context"
	"time"

	"github.com/Ancr33z/TGRRCOOP/internal/domain"
)

// RequestRepo es el ledger de pedidos de coop. Las filas nunca se borran:
// CLOSED es el estado terminal y queda para auditar.
type RequestRepo struct {
	t   Table
	now func() time.Time
}

func NewRequestRepo(t Table) *RequestRepo { return &RequestRepo{t: t, now: time.Now} }

// Create apendea la fila OPEN. El caller ya verificó que no haya otro OPEN
// del mismo requester; entre esa lectura y este append hay una ventana de
// carrera conocida (dos submits casi simultáneos pueden colarse los dos).
func (r *RequestRepo) Create(ctx context.Context, requestID, requesterID string) error {
	return r.t.Append(ctx, TableRequests, map[string]string{
		ColRequestID:   requestID,
		ColRequesterID: requesterID,
		ColCreatedAt:   NowISO(r.now()),
		ColStatus:      string(domain.RequestOpen),
		ColChosenResp:  "",
		ColClosedAt:    "",
	})
}

// FindOpenByRequester: el store no garantiza más orden que el físico de
// append, así que nos quedamos con la última fila que matchea (la más nueva
// queda más abajo).
func (r *RequestRepo) FindOpenByRequester(ctx context.Context, requesterID string) (*domain.Request, error) {
	rows, err := r.t.Scan(ctx, TableRequests, func(row Row) bool {
		return row.Get(ColRequesterID) == requesterID && row.Get(ColStatus) == string(domain.RequestOpen)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	req := rowToRequest(rows[len(rows)-1])
	return &req, nil
}

func (r *RequestRepo) FindByID(ctx context.Context, requestID string) (*domain.Request, error) {
	row, err := r.t.Find(ctx, TableRequests, ColRequestID, requestID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	req := rowToRequest(*row)
	return &req, nil
}

// MarkMatched transiciona a MATCHED y estampa al elegido. Silencioso si el
// request ya no está.
func (r *RequestRepo) MarkMatched(ctx context.Context, requestID, responderID string) error {
	row, err := r.t.Find(ctx, TableRequests, ColRequestID, requestID)
	if err != nil || row == nil {
		return err
	}
	if err := r.t.UpdateCell(ctx, TableRequests, row.Index, ColStatus, string(domain.RequestMatched)); err != nil {
		return err
	}
	if row.Has(ColChosenResp) {
		return r.t.UpdateCell(ctx, TableRequests, row.Index, ColChosenResp, responderID)
	}
	return nil
}

func (r *RequestRepo) MarkClosed(ctx context.Context, requestID string) error {
	row, err := r.t.Find(ctx, TableRequests, ColRequestID, requestID)
	if err != nil || row == nil {
		return err
	}
	if err := r.t.UpdateCell(ctx, TableRequests, row.Index, ColStatus, string(domain.RequestClosed)); err != nil {
		return err
	}
	if row.Has(ColClosedAt) {
		return r.t.UpdateCell(ctx, TableRequests, row.Index, ColClosedAt, NowISO(r.now()))
	}
	return nil
}

// ListOpenExcluding: pedidos OPEN ajenos, los más nuevos primero (orden de
// scan invertido) para ofrecerle al responder lo más fresco arriba.
func (r *RequestRepo) ListOpenExcluding(ctx context.Context, requesterID string) ([]domain.Request, error) {
	rows, err := r.t.Scan(ctx, TableRequests, func(row Row) bool {
		return row.Get(ColStatus) == string(domain.RequestOpen) && row.Get(ColRequesterID) != requesterID
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Request, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rowToRequest(rows[i]))
	}
	return out, nil
}

// ListOpenOlderThan: pedidos OPEN creados antes del corte; lo usa el janitor.
func (r *RequestRepo) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Request, error) {
	rows, err := r.t.Scan(ctx, TableRequests, func(row Row) bool {
		if row.Get(ColStatus) != string(domain.RequestOpen) {
			return false
		}
		created := ParseISO(row.Get(ColCreatedAt))
		return !created.IsZero() && created.Before(cutoff)
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToRequest(row))
	}
	return out, nil
}

func rowToRequest(row Row) domain.Request {
	return domain.Request{
		ID:                row.Get(ColRequestID),
		RequesterID:       row.Get(ColRequesterID),
		CreatedAt:         ParseISO(row.Get(ColCreatedAt)),
		Status:            domain.RequestStatus(row.Get(ColStatus)),
		ChosenResponderID: row.Get(ColChosenResp),
		ClosedAt:          ParseISO(row.Get(ColClosedAt)),
	}
}
