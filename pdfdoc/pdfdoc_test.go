package pdfdoc

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/tsawler/fileio/model"
)

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

func render(t *testing.T, doc model.Printable) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(doc, &buf, WithCompression(false)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.Bytes()
}

func TestRender_TitleAndBody(t *testing.T) {
	data := render(t, model.Printable{
		Title:   "Quarterly Report",
		Content: "Revenue grew in every region.",
	})

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not start with PDF header: %q", data[:min(len(data), 16)])
	}
	if n := len(pageObject.FindAll(data, -1)); n != 1 {
		t.Errorf("page count = %d, want 1", n)
	}
	if !bytes.Contains(data, []byte("(Quarterly Report) Tj")) {
		t.Error("title text not drawn")
	}
	if !bytes.Contains(data, []byte("(Revenue grew in every region.) Tj")) {
		t.Error("body text not drawn")
	}
	if !bytes.Contains(data, []byte("/Title")) {
		t.Error("document title not set in info dictionary")
	}
}

func TestRender_EmptyBody(t *testing.T) {
	data := render(t, model.Printable{Title: "Cover"})

	if n := len(pageObject.FindAll(data, -1)); n != 1 {
		t.Errorf("page count = %d, want 1", n)
	}
	if !bytes.Contains(data, []byte("(Cover) Tj")) {
		t.Error("title text not drawn")
	}
	if got := bytes.Count(data, []byte(") Tj")); got != 1 {
		t.Errorf("text runs = %d, want 1 (title only)", got)
	}
}

func TestRender_Compressed(t *testing.T) {
	doc := model.Printable{Title: "Packed", Content: strings.Repeat("lorem ipsum ", 40)}

	var plain, packed bytes.Buffer
	if err := Render(doc, &plain, WithCompression(false)); err != nil {
		t.Fatalf("Render(uncompressed) error = %v", err)
	}
	if err := Render(doc, &packed); err != nil {
		t.Fatalf("Render(compressed) error = %v", err)
	}

	if !bytes.Contains(packed.Bytes(), []byte("/FlateDecode")) {
		t.Error("default output is not compressed")
	}
	if bytes.Contains(plain.Bytes(), []byte("/FlateDecode")) {
		t.Error("uncompressed output uses FlateDecode")
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := Export(model.Printable{Title: "T", Content: "C"}, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("exported file is not a PDF")
	}
}

func TestExport_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.pdf")
	if err := Export(model.Printable{Title: "T"}, path); err == nil {
		t.Error("Export() expected error for missing directory")
	}
}
