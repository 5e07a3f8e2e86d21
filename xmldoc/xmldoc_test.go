package xmldoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/fileio/model"
)

func sampleElements() model.Elements {
	return model.Elements{
		Root: "employee",
		Elements: map[string]string{
			"name":  "Ada Lovelace",
			"role":  "Analyst & Poet",
			"email": "ada@example.com",
		},
	}
}

func TestExport_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employee.xml")
	if err := Export(sampleElements(), path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8" standalone="no"?>`,
		"<employee>\n    <email>ada@example.com</email>\n    <name>Ada Lovelace</name>",
		"<role>Analyst &amp; Poet</role>\n</employee>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("output missing %q:\n%s", want, content)
		}
	}
}

func TestExport_Indent(t *testing.T) {
	set := model.Elements{Root: "r", Elements: map[string]string{"a": "1"}}

	tests := []struct {
		name   string
		opts   []Option
		want   string
		absent string
	}{
		{"two spaces", []Option{WithIndent(2)}, "<r>\n  <a>1</a>\n</r>", ""},
		{"no indent", []Option{WithIndent(-1)}, "<r><a>1</a></r>", "\n  <a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Build(set, tt.opts...)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			out, err := doc.WriteToString()
			if err != nil {
				t.Fatalf("WriteToString() error = %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
			if tt.absent != "" && strings.Contains(out, tt.absent) {
				t.Errorf("output = %q, should not contain %q", out, tt.absent)
			}
		})
	}
}

func TestImport_ReturnsTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employee.xml")
	set := sampleElements()
	if err := Export(set, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	doc, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "employee" {
		t.Fatalf("Root() = %v, want <employee>", root)
	}
	children := root.ChildElements()
	if len(children) != len(set.Elements) {
		t.Fatalf("len(ChildElements()) = %d, want %d", len(children), len(set.Elements))
	}
	for _, child := range children {
		want, ok := set.Elements[child.Tag]
		if !ok {
			t.Errorf("unexpected element <%s>", child.Tag)
			continue
		}
		if got := child.Text(); got != want {
			t.Errorf("<%s> text = %q, want %q", child.Tag, got, want)
		}
	}
}

func TestExport_EmptyElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xml")
	if err := Export(model.Elements{Root: "config"}, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	doc, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if doc.Root().Tag != "config" || len(doc.Root().ChildElements()) != 0 {
		t.Errorf("unexpected tree for empty element set")
	}
}

func TestExport_InvalidNames(t *testing.T) {
	tests := []struct {
		name string
		set  model.Elements
	}{
		{"empty root", model.Elements{Root: ""}},
		{"root with space", model.Elements{Root: "my root"}},
		{"element starting with digit", model.Elements{Root: "r", Elements: map[string]string{"1st": "x"}}},
		{"element with angle bracket", model.Elements{Root: "r", Elements: map[string]string{"a<b": "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.xml")
			err := Export(tt.set, path)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Export() error = %v, want ErrInvalidName", err)
			}
			if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
				t.Error("Export() created a file for an invalid element set")
			}
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"name", true},
		{"_private", true},
		{"first-name", true},
		{"v1.2", true},
		{"città", true},
		{"", false},
		{"-lead", false},
		{"9lives", false},
		{"a b", false},
		{"a&b", false},
	}

	for _, tt := range tests {
		if got := validName(tt.name); got != tt.want {
			t.Errorf("validName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestImport_Errors(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "malformed.xml")
	if err := os.WriteFile(malformed, []byte("<root><<</root>"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	var perr *ParseError
	if _, err := Import(malformed); !errors.As(err, &perr) {
		t.Errorf("Import(malformed) error = %v, want *ParseError", err)
	}

	empty := filepath.Join(dir, "empty.xml")
	if err := os.WriteFile(empty, []byte(`<?xml version="1.0"?>`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Import(empty); !errors.As(err, &perr) {
		t.Errorf("Import(empty) error = %v, want *ParseError", err)
	}

	_, err := Import(filepath.Join(dir, "missing.xml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Import(missing) error = %v, want os.ErrNotExist", err)
	}
}
