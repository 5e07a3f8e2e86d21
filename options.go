package fileio

import (
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/fileio/blob"
	"github.com/tsawler/fileio/internal/logging"
	"github.com/tsawler/fileio/xmldoc"
)

// porterOptions holds the configuration shared by every codec call.
type porterOptions struct {
	// Confirmation lines
	output io.Writer

	// Diagnostics
	logger *slog.Logger

	// Codec settings
	comma    rune
	indent   int
	registry *blob.Registry
	compress bool
}

// defaultOptions returns the default Porter configuration.
func defaultOptions() porterOptions {
	return porterOptions{
		output:   os.Stdout,
		logger:   logging.Nop(),
		comma:    ',',
		indent:   xmldoc.DefaultIndent,
		registry: blob.DefaultRegistry,
		compress: true,
	}
}

// clone copies the options. The writer, logger and registry are shared.
func (o porterOptions) clone() porterOptions {
	return porterOptions{
		output:   o.output,
		logger:   o.logger,
		comma:    o.comma,
		indent:   o.indent,
		registry: o.registry,
		compress: o.compress,
	}
}
