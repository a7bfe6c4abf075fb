// Package memstore implementa storage.Table en memoria. Sirve para tests y
// como referencia de la semántica que los adapters remotos deben respetar:
// orden físico de append, direccionamiento por header, sin aislamiento entre
// un scan y el updateCell que le sigue.
package memstore

import (
	"context"
	"sync"

	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
)

type table struct {
	header []string
	rows   [][]string
}

type Store struct {
	mu     sync.Mutex
	tables map[string]*table
}

// New crea el store con las cuatro tablas canónicas de storage.Schema.
func New() *Store {
	s := NewEmpty()
	for name, cols := range storage.Schema {
		s.CreateTable(name, cols)
	}
	return s
}

func NewEmpty() *Store {
	return &Store{tables: map[string]*table{}}
}

// CreateTable permite armar tablas con headers arbitrarios (p.ej. para
// simular una planilla a la que le falta una columna).
func (s *Store) CreateTable(name string, header []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cols := make([]string, len(header))
	copy(cols, header)
	s.tables[name] = &table{header: cols}
}

func (s *Store) Find(ctx context.Context, tbl, column, value string) (*storage.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tbl)
	if err != nil {
		return nil, err
	}
	if colIndex(t.header, column) < 0 {
		return nil, &storage.SchemaError{Table: tbl, Column: column}
	}
	for i := range t.rows {
		row := t.rowAt(i)
		if row.Get(column) == value {
			return &row, nil
		}
	}
	return nil, nil
}

func (s *Store) Scan(ctx context.Context, tbl string, pred func(storage.Row) bool) ([]storage.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tbl)
	if err != nil {
		return nil, err
	}
	var out []storage.Row
	for i := range t.rows {
		row := t.rowAt(i)
		if pred(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, tbl string, cells map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tbl)
	if err != nil {
		return err
	}
	row := make([]string, len(t.header))
	for i, col := range t.header {
		row[i] = cells[col]
	}
	t.rows = append(t.rows, row)
	return nil
}

func (s *Store) UpdateCell(ctx context.Context, tbl string, rowIndex int, column, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tbl)
	if err != nil {
		return err
	}
	ci := colIndex(t.header, column)
	if ci < 0 {
		return &storage.SchemaError{Table: tbl, Column: column}
	}
	ri := rowIndex - 1
	if ri < 0 || ri >= len(t.rows) {
		return &storage.StoreError{Op: "updateCell", Table: tbl, Err: storage.ErrNotFound}
	}
	t.rows[ri][ci] = value
	return nil
}

func (s *Store) table(name string) (*table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, &storage.StoreError{Op: "open", Table: name, Err: storage.ErrNotFound}
	}
	return t, nil
}

// rowAt copia las celdas: el caller se queda con una foto, no con la fila viva.
func (t *table) rowAt(i int) storage.Row {
	cells := make(map[string]string, len(t.header))
	for ci, col := range t.header {
		cells[col] = t.rows[i][ci]
	}
	return storage.Row{Index: i + 1, Cells: cells}
}

func colIndex(header []string, col string) int {
	for i, h := range header {
		if h == col {
			return i
		}
	}
	return -1
}
