package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/tsawler/fileio/format"
)

func newDetectCmd(a *app) *cobra.Command {
	var sniff bool

	cmd := &cobra.Command{
		Use:   "detect <path|glob>...",
		Short: "Print the format of each file",
		Long: `Prints "path<TAB>format" for every path. Arguments containing glob
characters are expanded, with ** matching any number of directories.
The format comes from the file extension; with --sniff, files whose
extension is not recognized are identified from their content.`,
		Example: `  fileio detect report.xlsx 'exports/**/*.{csv,json}'
  fileio detect --sniff 'inbox/*'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, arg := range args {
				paths, err := expand(arg)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					a.logger.Warn("no files match pattern", "pattern", arg)
					continue
				}

				for _, path := range paths {
					f := format.Detect(path)
					if f == format.Unknown && sniff {
						f = sniffFile(a, path)
					}
					fmt.Fprintf(out, "%s\t%s\n", path, f)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sniff, "sniff", false, "inspect file content when the extension is not recognized")
	return cmd
}

// expand resolves a glob pattern to matching files. A plain path is
// returned as is, whether it exists or not.
func expand(arg string) ([]string, error) {
	if !strings.ContainsAny(arg, "*?[{") {
		return []string{arg}, nil
	}
	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
	}
	return matches, nil
}

// sniffFile detects the format from content. Unreadable files are Unknown.
func sniffFile(a *app, path string) format.Format {
	file, err := os.Open(path)
	if err != nil {
		a.logger.Warn("cannot sniff file", "path", path, "error", err)
		return format.Unknown
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		return format.Unknown
	}

	f, err := format.DetectFromReader(file, info.Size())
	if err != nil {
		a.logger.Warn("cannot sniff file", "path", path, "error", err)
		return format.Unknown
	}
	return f
}
