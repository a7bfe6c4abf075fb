// Package pgstore implementa storage.Table sobre Postgres manteniendo la
// semántica de planilla: tablas de texto, append al final, updateCell por
// fila, filtrado del lado del cliente. No usa transacciones a propósito:
// el contrato del adapter es best-effort y las capas de arriba ya están
// escritas para tolerarlo (ver storage.Table).
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
)

type Store struct {
	db     *sql.DB
	schema map[string][]string
}

func New(db *sql.DB) *Store {
	return &Store{db: db, schema: storage.Schema}
}

func (s *Store) Find(ctx context.Context, table, column, value string) (*storage.Row, error) {
	if _, err := s.column(table, column); err != nil {
		return nil, err
	}
	rows, err := s.Scan(ctx, table, func(r storage.Row) bool { return r.Get(column) == value })
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) Scan(ctx context.Context, table string, pred func(storage.Row) bool) ([]storage.Row, error) {
	cols, err := s.columns(table)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT row_id, %s FROM %s ORDER BY row_id`, strings.Join(cols, ", "), sqlTable(table))
	rs, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, storeErr("scan", table, err)
	}
	defer rs.Close()

	var out []storage.Row
	for rs.Next() {
		var rowID int64
		vals := make([]string, len(cols))
		dest := make([]any, 0, len(cols)+1)
		dest = append(dest, &rowID)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rs.Scan(dest...); err != nil {
			return nil, storeErr("scan", table, err)
		}
		cells := make(map[string]string, len(cols))
		for i, c := range cols {
			cells[c] = vals[i]
		}
		row := storage.Row{Index: int(rowID), Cells: cells}
		if pred(row) {
			out = append(out, row)
		}
	}
	if err := rs.Err(); err != nil {
		return nil, storeErr("scan", table, err)
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, table string, cells map[string]string) error {
	cols, err := s.columns(table)
	if err != nil {
		return err
	}
	ph := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = cells[c]
	}
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		sqlTable(table), strings.Join(cols, ", "), strings.Join(ph, ", "))
	_, err = s.db.ExecContext(ctx, q, args...)
	return storeErr("append", table, err)
}

func (s *Store) UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error {
	col, err := s.column(table, column)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE row_id = $2`, sqlTable(table), col)
	_, err = s.db.ExecContext(ctx, q, value, int64(rowIndex))
	return storeErr("updateCell", table, err)
}

// columns devuelve la lista fija de columnas; identificadores salen siempre
// de storage.Schema, nunca del input, así el SQL armado por fmt es seguro.
func (s *Store) columns(table string) ([]string, error) {
	cols, ok := s.schema[table]
	if !ok {
		return nil, &storage.StoreError{Op: "open", Table: table, Err: storage.ErrNotFound}
	}
	return cols, nil
}

func (s *Store) column(table, column string) (string, error) {
	cols, err := s.columns(table)
	if err != nil {
		return "", err
	}
	for _, c := range cols {
		if c == column {
			return c, nil
		}
	}
	return "", &storage.SchemaError{Table: table, Column: column}
}

func sqlTable(table string) string { return strings.ToLower(table) }

func storeErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &storage.StoreError{Op: op, Table: table, Err: err}
}
