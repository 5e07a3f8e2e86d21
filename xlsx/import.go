package xlsx

import (
	"github.com/tsawler/fileio/model"
)

// Import reads the first sheet of the workbook at path. The header row, if
// any, is returned as row 0. Values are typed from the file: numbers as
// model.Real, date-formatted numbers as model.Date, booleans as model.Bool,
// strings as model.Text, formulas as model.Formula and anything else as
// model.Empty.
func Import(path string) ([][]model.Value, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheet, err := r.Sheet(0)
	if err != nil {
		return nil, err
	}
	return sheet.Values(), nil
}
