// Package demo walks through every export and import the library offers.
package demo

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/beevik/etree"

	"github.com/tsawler/fileio"
	"github.com/tsawler/fileio/format"
	"github.com/tsawler/fileio/jsondoc"
	"github.com/tsawler/fileio/model"
)

// Sample is one demonstration file.
type Sample struct {
	Name string
	Data model.Payload
}

// Samples returns one payload of every shape.
func Samples() []Sample {
	return []Sample{
		{"dados.csv", model.Table{
			{"Nome", "Idade", "Email"},
			{"João Silva", "30", "joao@exemplo.com"},
			{"Maria Santos", "25", "maria@exemplo.com"},
		}},
		{"dados.json", model.Document{
			"nome":    "João Silva",
			"idade":   30,
			"email":   "joao@exemplo.com",
			"hobbies": []any{"Leitura", "Natação"},
		}},
		{"dados.xml", model.Elements{
			Root: "pessoa",
			Elements: map[string]string{
				"nome":  "João Silva",
				"idade": "30",
				"email": "joao@exemplo.com",
			},
		}},
		{"dados.xlsx", model.Sheet{
			Name:    "Funcionários",
			Headers: []string{"Nome", "Idade", "Email", "Admissão"},
			Rows: [][]model.Value{
				model.Row("João Silva", 30, "joao@exemplo.com", time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC)),
				model.Row("Maria Santos", 25, "maria@exemplo.com", time.Date(2022, 9, 12, 0, 0, 0, 0, time.UTC)),
			},
		}},
		{"relatorio.pdf", model.Printable{
			Title:   "Relatório de Funcionários",
			Content: "Este relatório contém informações sobre os funcionários da empresa.",
		}},
		{"objeto.bin", model.Object{Value: map[string]any{
			"id":     int64(42),
			"ativo":  true,
			"vagas":  []any{"engenharia", "vendas"},
			"gerado": time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}}},
	}
}

// Run exports every sample into dir, reads the importable ones back and
// reports progress to w. It stops at the first failure and returns it
// without writing it to w; reporting the error is up to the caller.
func Run(p *fileio.Porter, dir string, w io.Writer) error {
	p = p.Output(w)
	samples := Samples()

	for _, s := range samples {
		path := filepath.Join(dir, s.Name)
		if err := p.ExportData(s.Data, path, s.Data.Format().String()); err != nil {
			return err
		}
	}

	for _, s := range samples {
		path := filepath.Join(dir, s.Name)
		f := format.Detect(path)
		if f == format.PDF {
			continue
		}

		data, err := p.ImportData(path, fileio.DetectFormat(path))
		if err != nil {
			return err
		}
		line, err := describe(f, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, line)
	}

	path := filepath.Join(dir, samples[0].Name)
	_, f, err := p.ImportAuto(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Data imported automatically from format: %s\n", f)
	return nil
}

// describe summarizes imported data in one line.
func describe(f format.Format, data any) (string, error) {
	switch d := data.(type) {
	case model.Table:
		return fmt.Sprintf("CSV data imported: %d rows", d.RowCount()), nil
	case model.Document:
		text, err := jsondoc.Marshal(d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("JSON data imported: %s", text), nil
	case *etree.Document:
		root := d.Root()
		return fmt.Sprintf("XML data imported: <%s> with %d elements", root.Tag, len(root.ChildElements())), nil
	case [][]model.Value:
		return fmt.Sprintf("Excel data imported: %d rows", len(d)), nil
	default:
		return fmt.Sprintf("%s data imported: %T", f, d), nil
	}
}
