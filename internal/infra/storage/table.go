package storage

import (
	"context"
	"time"
)

// Nombres de las tablas lógicas del backing store.
const (
	TableUsers     = "Users"
	TableRequests  = "Requests"
	TableResponses = "Responses"
	TableStates    = "States" // reservada, sin uso todavía
)

// Columnas por tabla. El orden físico no importa: todo se direcciona por header.
const (
	ColTGID        = "tg_id"
	ColUsername    = "tg_username"
	ColName        = "tg_name"
	ColGameNick    = "game_nick"
	ColScore       = "score"
	ColCreatedAt   = "created_at"
	ColLastActive  = "last_active"
	ColRequestID   = "request_id"
	ColRequesterID = "requester_id"
	ColStatus      = "status"
	ColChosenResp  = "chosen_responder_id"
	ColClosedAt    = "closed_at"
	ColResponderID = "responder_id"
	ColState       = "state"
)

// Schema fija las columnas esperadas por tabla. Los adapters la usan para
// resolver header→posición una sola vez por acceso; que falte una columna
// esperada es un error de configuración, no algo recuperable.
var Schema = map[string][]string{
	TableUsers:     {ColTGID, ColUsername, ColName, ColGameNick, ColScore, ColCreatedAt, ColLastActive},
	TableRequests:  {ColRequestID, ColRequesterID, ColCreatedAt, ColStatus, ColChosenResp, ColClosedAt},
	TableResponses: {ColRequestID, ColResponderID, ColCreatedAt, ColStatus},
	TableStates:    {ColTGID, ColState, ColCreatedAt},
}

// Row es una fila leída: celdas por nombre de columna más la posición 1-based
// que el adapter registró al momento del scan/find. Esa posición es la
// dirección para UpdateCell y puede quedar stale frente a escrituras
// concurrentes: no hay aislamiento ni compare-and-swap en el store.
type Row struct {
	Index int
	Cells map[string]string
}

func (r Row) Get(col string) string { return r.Cells[col] }

func (r Row) Has(col string) bool {
	_, ok := r.Cells[col]
	return ok
}

// Table es la fachada sin estado sobre el backing store. find/scan devuelven
// una foto best-effort: para cuando el caller actúa sobre ella, otro append o
// updateCell pudo haber aterrizado. Toda capa de arriba tolera eso.
type Table interface {
	// Find devuelve la primera fila cuyo valor en column coincide, o nil.
	Find(ctx context.Context, table, column, value string) (*Row, error)
	// Scan devuelve las filas que cumplen pred, en orden físico de append.
	Scan(ctx context.Context, table string, pred func(Row) bool) ([]Row, error)
	// Append agrega una fila al final; celdas ausentes quedan vacías.
	Append(ctx context.Context, table string, cells map[string]string) error
	// UpdateCell escribe una celda puntual de una fila ya ubicada.
	UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error
}

// NowISO / ParseISO: los timestamps viajan como texto RFC3339 en las celdas.
func NowISO(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// ParseISO devuelve zero time si la celda está vacía o ilegible; los callers
// tratan eso como "sin timestamp" (p.ej. el cooldown no aplica).
func ParseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
