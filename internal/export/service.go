package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
)

// Writer renders invoice tables as single-sheet XLSX workbooks.
type Writer struct {
	sheet  string
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{sheet: constants.ExportSheetName, logger: logger}
}

// WriteXLSX returns an XLSX workbook (as bytes) holding one header row with the table's
// column names followed by one row per record. NULL values become empty cells.
func (w *Writer) WriteXLSX(t *entity.Table) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()

	// NewFile starts with "Sheet1"; rename it so the workbook has exactly one sheet.
	if err := f.SetSheetName(f.GetSheetName(0), w.sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet index: %w", err)
	}
	f.SetActiveSheet(idx)

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = strings.ToLower(c)
	}
	if len(header) > 0 {
		if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range t.Rows {
		row := make([]any, len(r))
		for j, v := range r {
			if v == nil {
				row[j] = ""
				continue
			}
			row[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	// Widen the text-heavy columns
	for i, c := range t.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 18.0
		switch strings.ToLower(c) {
		case constants.ColShipper, constants.ColConsignee, constants.ColItemName:
			width = 32
		case constants.ColDescriptionOfGoods:
			width = 60
		}
		_ = f.SetColWidth(w.sheet, col, col, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.xlsx.ok",
		"rows", len(t.Rows),
		"columns", len(t.Columns),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
