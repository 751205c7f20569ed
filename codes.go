package main

import (
	"database/sql"
	"fmt"
)

// Code widths for generated identifiers.
const (
	userIDWidth  = 5
	taxCodeWidth = 2
	locCodeWidth = 2
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx so code generation
// can run inside the same transaction as the insert that uses the code.
type rowQuerier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

// nextCode returns the next sequential zero-padded code for the given
// column. Non-numeric values cast to 0, which never wins the MAX, so a
// corrupted row never breaks generation. An empty table yields the base
// code ("00001", "01", ...).
func nextCode(q rowQuerier, table, col string, width int) (string, error) {
	var max sql.NullInt64
	if err := q.QueryRow("SELECT MAX(CAST(" + col + " AS INTEGER)) FROM " + table).Scan(&max); err != nil {
		return "", err
	}
	next := int64(1)
	if max.Valid {
		next = max.Int64 + 1
	}
	return fmt.Sprintf("%0*d", width, next), nil
}
