package demo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/fileio"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, Run(fileio.New(), dir, &out))

	for _, s := range Samples() {
		assert.FileExists(t, filepath.Join(dir, s.Name))
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"CSV file exported successfully: " + filepath.Join(dir, "dados.csv"),
		"JSON file exported successfully: " + filepath.Join(dir, "dados.json"),
		"XML file exported successfully: " + filepath.Join(dir, "dados.xml"),
		"Excel file exported successfully: " + filepath.Join(dir, "dados.xlsx"),
		"PDF file exported successfully: " + filepath.Join(dir, "relatorio.pdf"),
		"Object exported successfully: " + filepath.Join(dir, "objeto.bin"),
		"CSV data imported: 3 rows",
		"JSON data imported: ",
		"XML data imported: <pessoa> with 3 elements",
		"Excel data imported: 3 rows",
		"bin data imported: map[string]interface {}",
		"Data imported automatically from format: csv",
	}
	require.Len(t, lines, len(want))
	for i := range want {
		if strings.HasSuffix(want[i], ": ") {
			assert.True(t, strings.HasPrefix(lines[i], want[i]), "line %d = %q", i, lines[i])
			continue
		}
		assert.Equal(t, want[i], lines[i], "line %d", i)
	}
	assert.Contains(t, lines[7], `"idade":30`)
	assert.Contains(t, lines[7], `"email":"joao@exemplo.com"`)
}

func TestRun_StopsAtFirstError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	var out bytes.Buffer

	err := Run(fileio.New(), dir, &out)
	require.Error(t, err)

	// The caller prints the error; Run must not print it a second time.
	assert.Empty(t, out.String())

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSamples_CoverEveryShape(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Samples() {
		tag := s.Data.Format().String()
		assert.Equal(t, tag, fileio.DetectFormat(s.Name), "sample %s", s.Name)
		seen[tag] = true
	}
	assert.Len(t, seen, 6)
}
