package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"go-shop-admin/internal/tabular"
)

// ExportService renders table rows as CSV using each column's display
// formatting, so the export matches what the admin table shows on screen.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

func (s *ExportService) CSV(columns []tabular.Column, rows []tabular.Row) ([]byte, error) {
	exportable := make([]tabular.Column, 0, len(columns))
	for _, col := range columns {
		if col.Type == tabular.ColumnActions {
			continue
		}
		exportable = append(exportable, col)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(exportable))
	for i, col := range exportable {
		header[i] = col.Header
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(exportable))
	for _, row := range rows {
		for i, col := range exportable {
			record[i] = tabular.DisplayValue(col, row[col.Field])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
