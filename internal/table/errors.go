package table

import "errors"

var (
	// ErrMalformedRow is returned when a row does not hold exactly three
	// numeric columns.
	ErrMalformedRow = errors.New("malformed table row")

	// ErrEmptyTable is returned by ReadFile when the table has no rows.
	ErrEmptyTable = errors.New("table has no rows")
)
