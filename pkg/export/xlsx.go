package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column describes one column of an exported sheet
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) any
}

// WriteSheet streams rows into a single-sheet workbook and writes it to w.
// Row 1 holds the bold headers; data starts on row 2.
func WriteSheet[T any](w io.Writer, sheet string, cols []Column[T], rows []T) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBE3"}},
	})
	if err != nil {
		return err
	}

	// column widths must be set before the first row
	headers := make([]interface{}, len(cols))
	for i, col := range cols {
		if col.Width > 0 {
			if err := sw.SetColWidth(i+1, i+1, col.Width); err != nil {
				return err
			}
		}
		headers[i] = excelize.Cell{Value: col.Header, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for r, row := range rows {
		values := make([]interface{}, len(cols))
		for i, col := range cols {
			values[i] = col.Value(row)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
