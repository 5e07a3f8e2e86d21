package main

import (
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/tsawler/fileio/model"
)

func newInspectCmd(a *app) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Import a file and print its content",
		Long: `Imports a file and prints what was read as indented JSON. XML files are
printed as indented XML. The format is detected from the extension, or
from the content if the extension is not recognized, unless --format
is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var (
				data any
				err  error
			)
			if tag != "" {
				data, err = a.porter.ImportData(path, tag)
			} else {
				data, _, err = a.porter.ImportAuto(path)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().StringVarP(&tag, "format", "f", "", "format tag: csv, json, xml, excel or bin")
	return cmd
}

// render writes imported data to w.
func render(w io.Writer, data any) error {
	if doc, ok := data.(*etree.Document); ok {
		doc.Indent(2)
		_, err := doc.WriteTo(w)
		return err
	}

	opts := ojg.DefaultOptions
	opts.Sort = true
	opts.Indent = 2

	text, err := oj.Marshal(plain(data), &opts)
	if err != nil {
		return fmt.Errorf("rendering JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", text)
	return err
}

// plain converts imported values to JSON-friendly Go values.
func plain(v any) any {
	switch x := v.(type) {
	case [][]model.Value:
		rows := make([][]any, len(x))
		for i, row := range x {
			rows[i] = make([]any, len(row))
			for j, cell := range row {
				rows[i][j] = cellValue(cell)
			}
		}
		return rows
	case model.Table:
		return [][]string(x)
	case model.Document:
		return plain(map[string]any(x))
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = plain(val)
		}
		return m
	case []any:
		list := make([]any, len(x))
		for i, val := range x {
			list[i] = plain(val)
		}
		return list
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return v
	}
}

// cellValue renders a spreadsheet value. Formulas keep their leading '='.
func cellValue(v model.Value) any {
	switch x := v.(type) {
	case model.Text:
		return string(x)
	case model.Int:
		return int64(x)
	case model.Real:
		return float64(x)
	case model.Bool:
		return bool(x)
	case model.Date:
		return x.String()
	case model.Formula:
		return "=" + string(x)
	default:
		return nil
	}
}
