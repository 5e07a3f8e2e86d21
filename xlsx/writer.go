package xlsx

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/fileio/model"
)

// DefaultSheetName is used when a sheet has no name.
const DefaultSheetName = "Sheet1"

const (
	minColumnWidth = 8
	maxColumnWidth = 80
	dateWidth      = 18
)

// Export writes sheet to path as a single-sheet workbook, replacing any
// existing file. Row 1 holds the headers; data rows follow in order.
func Export(sheet model.Sheet, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = DefaultSheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	widths := make([]int, len(sheet.Headers))
	fit := func(col, width int) {
		for len(widths) <= col {
			widths = append(widths, 0)
		}
		if width > widths[col] {
			widths[col] = width
		}
	}

	for col, header := range sheet.Headers {
		if err := f.SetCellValue(name, CellRef(col, 0), header); err != nil {
			return fmt.Errorf("writing header %s: %w", CellRef(col, 0), err)
		}
		fit(col, utf8.RuneCountInString(header))
	}

	for i, row := range sheet.Rows {
		for col, v := range row {
			ref := CellRef(col, i+1)
			if formula, ok := v.(model.Formula); ok {
				if err := f.SetCellFormula(name, ref, string(formula)); err != nil {
					return fmt.Errorf("writing formula %s: %w", ref, err)
				}
				continue
			}
			cell, ok := cellValue(v)
			if !ok {
				continue
			}
			if err := f.SetCellValue(name, ref, cell); err != nil {
				return fmt.Errorf("writing cell %s: %w", ref, err)
			}
			fit(col, displayWidth(v))
		}
	}

	if err := autoSizeColumns(f, name, widths); err != nil {
		return err
	}

	return save(f, path)
}

// save writes the workbook to path. Unlike SaveAs it accepts any file name.
func save(f *excelize.File, path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating workbook file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook file: %w", cerr)
		}
	}()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// cellValue converts a Value to the Go value stored in the cell. Empty and
// nil values leave the cell unset. Formulas are written separately.
func cellValue(v model.Value) (any, bool) {
	switch x := v.(type) {
	case model.Text:
		return string(x), true
	case model.Int:
		return int64(x), true
	case model.Real:
		return float64(x), true
	case model.Bool:
		return bool(x), true
	case model.Date:
		// Workbooks have no time zones; keep the wall clock reading
		t := time.Time(x)
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
	default:
		return nil, false
	}
}

func displayWidth(v model.Value) int {
	if v.Kind() == model.KindDate {
		return dateWidth
	}
	return utf8.RuneCountInString(v.String())
}

// autoSizeColumns fits each column to its widest entry.
func autoSizeColumns(f *excelize.File, sheet string, widths []int) error {
	for col, w := range widths {
		width := w + 2
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		letter := IndexToColumn(col)
		if err := f.SetColWidth(sheet, letter, letter, float64(width)); err != nil {
			return fmt.Errorf("sizing column %s: %w", letter, err)
		}
	}
	return nil
}
