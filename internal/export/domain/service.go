package domain

import (
	"context"
	"errors"
	"io"
)

// Service produces backup workbooks of the business data.
type Service interface {
	// ExportExcel writes one .xlsx workbook with a sheet per table.
	ExportExcel(ctx context.Context) (io.Reader, error)
	// ExportCSV writes a single table as CSV.
	ExportCSV(ctx context.Context, table string) (io.Reader, error)
}

var ErrUnknownTable = errors.New("unknown_table")
