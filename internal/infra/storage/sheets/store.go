// Package sheets es el adapter "remote table" contra Google Sheets, el
// backing store del deploy real. Una tabla lógica = una pestaña con la fila 1
// de headers. No hay transacciones ni row locks: cada Get/Append/Update es un
// round-trip independiente y lo leído puede quedar stale enseguida.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
)

type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New autentica con el JSON de la service account (scope spreadsheets).
func New(ctx context.Context, spreadsheetID, serviceAccountJSON string) (*Store, error) {
	// En algunas plataformas el JSON llega con los saltos del private_key
	// escapados dos veces; los restauramos antes de parsear.
	raw := strings.ReplaceAll(serviceAccountJSON, `\n`, "\n")

	cfg, err := google.JWTConfigFromJSON([]byte(raw), sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("service account: %w", err)
	}
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *Store) Find(ctx context.Context, table, column, value string) (*storage.Row, error) {
	header, rows, err := s.readTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if _, ok := header[column]; !ok {
		return nil, &storage.SchemaError{Table: table, Column: column}
	}
	for i, cells := range rows {
		row := makeRow(header, cells, i)
		if row.Get(column) == value {
			return &row, nil
		}
	}
	return nil, nil
}

func (s *Store) Scan(ctx context.Context, table string, pred func(storage.Row) bool) ([]storage.Row, error) {
	header, rows, err := s.readTable(ctx, table)
	if err != nil {
		return nil, err
	}
	var out []storage.Row
	for i, cells := range rows {
		row := makeRow(header, cells, i)
		if pred(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, table string, cells map[string]string) error {
	header, _, err := s.readHeader(ctx, table)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(header))
	for col, idx := range header {
		row[idx] = cells[col]
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, table+"!A:A", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return storeErr("append", table, err)
}

func (s *Store) UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error {
	header, _, err := s.readHeader(ctx, table)
	if err != nil {
		return err
	}
	idx, ok := header[column]
	if !ok {
		return &storage.SchemaError{Table: table, Column: column}
	}
	rng := fmt.Sprintf("%s!%s%d", table, ColumnLetter(idx), rowIndex)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return storeErr("updateCell", table, err)
}

// readTable trae la pestaña completa y resuelve el header una sola vez.
// Row.Index queda como número de fila de la planilla (los datos arrancan
// en la 2), que es la dirección que UpdateCell espera.
func (s *Store) readTable(ctx context.Context, table string) (map[string]int, [][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return nil, nil, storeErr("read", table, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil, &storage.StoreError{Op: "read", Table: table, Err: fmt.Errorf("empty sheet, header row missing")}
	}
	return headerMap(resp.Values[0]), resp.Values[1:], nil
}

func (s *Store) readHeader(ctx context.Context, table string) (map[string]int, int, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table+"!1:1").Context(ctx).Do()
	if err != nil {
		return nil, 0, storeErr("read", table, err)
	}
	if len(resp.Values) == 0 {
		return nil, 0, &storage.StoreError{Op: "read", Table: table, Err: fmt.Errorf("empty sheet, header row missing")}
	}
	h := headerMap(resp.Values[0])
	return h, len(h), nil
}

func headerMap(cells []interface{}) map[string]int {
	h := make(map[string]int, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(fmt.Sprint(c))
		if name != "" {
			h[name] = i
		}
	}
	return h
}

func makeRow(header map[string]int, cells []interface{}, dataIdx int) storage.Row {
	m := make(map[string]string, len(header))
	for col, idx := range header {
		if idx < len(cells) {
			m[col] = fmt.Sprint(cells[idx])
		} else {
			m[col] = ""
		}
	}
	return storage.Row{Index: dataIdx + 2, Cells: m}
}

// ColumnLetter: 0→A, 25→Z, 26→AA.
func ColumnLetter(idx int) string {
	n := idx + 1
	s := ""
	for n > 0 {
		r := (n - 1) % 26
		s = string(rune('A'+r)) + s
		n = (n - 1) / 26
	}
	return s
}

func storeErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &storage.StoreError{Op: op, Table: table, Err: err}
}
