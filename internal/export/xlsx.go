package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sadopc/daytask/internal/store"
)

const xlsxSheet = "Tasks"

// Column widths in characters for Date, Start Time, Stop Time, Title, Task Detail.
var xlsxWidths = []float64{15, 12, 12, 25, 40}

// WriteXLSX writes a single-sheet workbook, one row per task, oldest first.
func WriteXLSX(w io.Writer, tasks []store.Task) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range sortAscending(tasks) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{FormatDate(t.Date), t.StartTime, t.StopTime, t.Title, t.TaskDetail}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	for i, width := range xlsxWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
