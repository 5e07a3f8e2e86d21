package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/fileio/model"
)

// Reader provides access to XLSX workbook content.
type Reader struct {
	zipReader     *zip.ReadCloser
	files         map[string]*zip.File
	workbook      *workbookXML
	sharedStrings []string
	styles        *stylesXML
	customFormats map[int]string    // numFmtId -> format code
	sheetRels     map[string]string // RID -> target path
	sheets        []*Sheet
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader:     zr,
		files:         make(map[string]*zip.File, len(zr.File)),
		customFormats: make(map[int]string),
		sheetRels:     make(map[string]string),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	if err := r.load(); err != nil {
		zr.Close()
		return nil, err
	}

	return r, nil
}

func (r *Reader) load() error {
	if err := r.validate(); err != nil {
		return err
	}

	if err := r.parseRelationships(); err != nil {
		return fmt.Errorf("parsing relationships: %w", err)
	}

	if err := r.parseWorkbook(); err != nil {
		return fmt.Errorf("parsing workbook: %w", err)
	}

	// Shared strings and styles are optional
	_ = r.parseSharedStrings()
	_ = r.parseStyles()

	if err := r.parseWorksheets(); err != nil {
		return fmt.Errorf("parsing worksheets: %w", err)
	}

	return nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required XLSX files exist.
func (r *Reader) validate() error {
	for _, name := range []string{"[Content_Types].xml", "xl/workbook.xml"} {
		if _, ok := r.files[name]; !ok {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseRelationships parses the workbook relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil // Relationships are optional
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}
	for _, rel := range rels.Relationship {
		r.sheetRels[rel.ID] = rel.Target
	}

	return nil
}

// parseWorkbook parses the main workbook file.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}

	r.workbook = &workbookXML{}
	return xml.Unmarshal(data, r.workbook)
}

// parseSharedStrings parses the shared strings table.
func (r *Reader) parseSharedStrings() error {
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return err
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		r.sharedStrings[i] = joinRuns(si.T, si.R)
	}

	return nil
}

// joinRuns returns plain text, or the concatenated rich text runs when
// there is no plain text.
func joinRuns(plain string, runs []rXML) string {
	if plain != "" || len(runs) == 0 {
		return plain
	}
	var text strings.Builder
	for _, run := range runs {
		text.WriteString(run.T)
	}
	return text.String()
}

// parseStyles parses the styles file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("xl/styles.xml")
	if err != nil {
		return err
	}

	r.styles = &stylesXML{}
	if err := xml.Unmarshal(data, r.styles); err != nil {
		r.styles = nil
		return err
	}
	if r.styles.NumFmts != nil {
		for _, nf := range r.styles.NumFmts.NumFmt {
			r.customFormats[nf.NumFmtID] = nf.FormatCode
		}
	}

	return nil
}

// parseWorksheets parses all worksheet files.
func (r *Reader) parseWorksheets() error {
	r.sheets = make([]*Sheet, 0, len(r.workbook.Sheets.Sheet))

	for i, sheetRef := range r.workbook.Sheets.Sheet {
		target := r.sheetRels[sheetRef.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}

		// Targets are relative to xl/ unless absolute
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else if !strings.HasPrefix(target, "xl/") {
			target = "xl/" + target
		}

		data, err := r.getFileContent(target)
		if err != nil {
			continue // Skip sheets we can't read
		}

		sheet, err := r.parseWorksheet(data, sheetRef.Name, i)
		if err != nil {
			continue
		}

		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}

	return nil
}

// parseWorksheet parses a single worksheet.
func (r *Reader) parseWorksheet(data []byte, name string, index int) (*Sheet, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Name:  name,
		Index: index,
	}

	// Rows without an r attribute follow the previous row
	type located struct {
		row   int
		cells []cellXML
	}
	rows := make([]located, 0, len(ws.SheetData.Rows))
	next := 0
	for _, row := range ws.SheetData.Rows {
		idx := next
		if row.R > 0 {
			idx = row.R - 1
		}
		rows = append(rows, located{row: idx, cells: row.Cells})
		next = idx + 1
	}

	for _, row := range rows {
		if row.row >= len(sheet.Rows) {
			grown := make([][]Cell, row.row+1)
			copy(grown, sheet.Rows)
			sheet.Rows = grown
		}

		col := 0
		for _, cx := range row.cells {
			if cx.R != "" {
				c, _, err := ParseCellRef(cx.R)
				if err != nil {
					continue
				}
				col = c
			}

			cells := sheet.Rows[row.row]
			for len(cells) <= col {
				cells = append(cells, Cell{Value: model.Empty{}, Row: row.row, Col: len(cells)})
			}
			cells[col] = r.parseCell(cx, row.row, col)
			sheet.Rows[row.row] = cells
			col++
		}
	}

	// Rows missing from the file read as empty rows
	for i := range sheet.Rows {
		if sheet.Rows[i] == nil {
			sheet.Rows[i] = []Cell{}
		}
	}

	return sheet, nil
}

// parseCell infers a cell's value from its type attribute, formula and
// number format.
func (r *Reader) parseCell(cx cellXML, row, col int) Cell {
	cell := Cell{
		Value:      model.Empty{},
		RawValue:   cx.V,
		Row:        row,
		Col:        col,
		StyleIndex: cx.S,
		Formula:    cx.F,
	}

	if cx.F != "" {
		cell.Value = model.Formula(cx.F)
		return cell
	}

	switch cx.T {
	case "s": // Shared string
		idx, err := strconv.Atoi(cx.V)
		if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
			cell.Value = model.Text(r.sharedStrings[idx])
		}
	case "b":
		cell.Value = model.Bool(cx.V == "1" || strings.EqualFold(cx.V, "true"))
	case "str": // Cached string result
		cell.Value = model.Text(cx.V)
	case "inlineStr":
		if cx.Is != nil {
			cell.Value = model.Text(joinRuns(cx.Is.T, cx.Is.R))
		}
	case "e":
		// Error values carry no usable data
	default: // Number or empty
		if cx.V == "" {
			break
		}
		n, err := strconv.ParseFloat(cx.V, 64)
		if err != nil {
			cell.Value = model.Text(cx.V)
			break
		}
		if r.isDateStyle(cx.S) {
			cell.Value = model.Date(serialToTime(n, r.date1904()))
		} else {
			cell.Value = model.Real(n)
		}
	}

	return cell
}

// isDateStyle reports whether the cell style applies a date or time format.
func (r *Reader) isDateStyle(styleIndex int) bool {
	if r.styles == nil || r.styles.CellXfs == nil {
		return false
	}
	if styleIndex < 0 || styleIndex >= len(r.styles.CellXfs.Xf) {
		return false
	}

	id := r.styles.CellXfs.Xf[styleIndex].NumFmtID
	if code, ok := r.customFormats[id]; ok {
		return isDateFormatCode(code)
	}
	return isDateFormatID(id)
}

func (r *Reader) date1904() bool {
	return r.workbook != nil && r.workbook.WorkbookPr != nil && r.workbook.WorkbookPr.Date1904
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}
