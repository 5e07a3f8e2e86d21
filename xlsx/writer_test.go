package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tsawler/fileio/model"
)

func TestImport_Minimal(t *testing.T) {
	rows, err := Import(createMinimalXLSX(t))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want := [][]model.Value{
		{model.Text("Name"), model.Text("Age"), model.Text("Score")},
		{model.Real(1), model.Real(2), model.Real(3)},
		{model.Real(4), model.Real(5), model.Real(6.5)},
	}
	assertRows(t, rows, want)
}

func TestExport_TwoByThree(t *testing.T) {
	sheet := model.Sheet{
		Name:    "People",
		Headers: []string{"Name", "Age", "Member"},
		Rows: [][]model.Value{
			model.Row("Ada", 36, true),
			model.Row("Grace", 45, false),
		},
	}

	path := filepath.Join(t.TempDir(), "people.xlsx")
	if err := Export(sheet, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if names := r.SheetNames(); len(names) != 1 || names[0] != "People" {
		t.Errorf("SheetNames() = %v, want [People]", names)
	}

	s, err := r.Sheet(0)
	if err != nil {
		t.Fatalf("Sheet(0) error = %v", err)
	}

	// Integers come back as reals
	want := [][]model.Value{
		{model.Text("Name"), model.Text("Age"), model.Text("Member")},
		{model.Text("Ada"), model.Real(36), model.Bool(true)},
		{model.Text("Grace"), model.Real(45), model.Bool(false)},
	}
	assertRows(t, s.Values(), want)
}

func TestExport_DeclaredTypes(t *testing.T) {
	hired := time.Date(2021, 6, 1, 8, 45, 0, 0, time.UTC)
	sheet := model.Sheet{
		Headers: []string{"Text", "Int", "Real", "Bool", "Date", "Formula", "Blank"},
		Rows: [][]model.Value{
			{
				model.Text("hello"),
				model.Int(-7),
				model.Real(2.25),
				model.Bool(true),
				model.Date(hired),
				model.Formula("B2*2"),
				model.Empty{},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "types.xlsx")
	if err := Export(sheet, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	rows, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want := [][]model.Value{
		{model.Text("Text"), model.Text("Int"), model.Text("Real"), model.Text("Bool"), model.Text("Date"), model.Text("Formula"), model.Text("Blank")},
		{model.Text("hello"), model.Real(-7), model.Real(2.25), model.Bool(true), model.Date(hired), model.Formula("B2*2")},
	}
	assertRows(t, rows, want)
}

func TestExport_DefaultSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.xlsx")
	if err := Export(model.Sheet{Headers: []string{"only"}}, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if names := r.SheetNames(); len(names) != 1 || names[0] != DefaultSheetName {
		t.Errorf("SheetNames() = %v, want [%s]", names, DefaultSheetName)
	}
}

func TestExport_InvalidSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := Export(model.Sheet{Name: "bad/name?"}, path); err == nil {
		t.Error("Export() expected error for invalid sheet name")
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		value model.Value
		want  int
	}{
		{model.Text("abc"), 3},
		{model.Text("日本語"), 3},
		{model.Int(12345), 5},
		{model.Date(time.Now()), dateWidth},
	}

	for _, tt := range tests {
		if got := displayWidth(tt.value); got != tt.want {
			t.Errorf("displayWidth(%#v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func assertRows(t *testing.T, got, want [][]model.Value) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(rows) = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
			continue
		}
		for j := range want[i] {
			if !sameValue(got[i][j], want[i][j]) {
				t.Errorf("row %d col %d = %#v, want %#v", i, j, got[i][j], want[i][j])
			}
		}
	}
}
