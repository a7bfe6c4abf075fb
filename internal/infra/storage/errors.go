package storage

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// StoreError envuelve una falla de transporte contra el backing store.
// Aborta la acción en curso; el boundary le muestra al usuario un error
// genérico y loguea el detalle.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// SchemaError: falta una columna esperada en la tabla. Misconfiguración
// fatal de la planilla/DB, no se reintenta.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s.%s column missing", e.Table, e.Column)
}
