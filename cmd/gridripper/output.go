package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/sirupsen/logrus"

	gridripper "github.com/michaelaaronlevy/grid-ripper"
	"github.com/michaelaaronlevy/grid-ripper/export"
	"github.com/michaelaaronlevy/grid-ripper/format"
	"github.com/michaelaaronlevy/grid-ripper/ods"
	"github.com/michaelaaronlevy/grid-ripper/xlsx"
)

// stdoutName is the OUTPUT argument that selects standard output.
const stdoutName = "-"

// resolveFormat picks the output format from the --format flag, or from the
// extension of output when the flag is empty.
func resolveFormat(output, name string) (format.Format, error) {
	if name != "" {
		f, err := format.ParseOutput(name)
		if err != nil {
			return format.Unknown, err
		}
		if f == format.Console && output != stdoutName {
			return format.Unknown, fmt.Errorf("console output goes to standard output; use %q as OUTPUT", stdoutName)
		}
		return f, nil
	}
	if output == stdoutName {
		return format.Console, nil
	}
	if f := format.Detect(output); f.IsOutput() {
		return f, nil
	}
	return format.Unknown, fmt.Errorf("cannot tell the output format of %s; use --format", output)
}

// newWriter creates the writer for f. Files are created (or truncated)
// right away so an unwritable target fails before any input is read.
func newWriter(f format.Format, output string, policy export.SheetPolicy, title string) (export.Writer, error) {
	switch f {
	case format.Console:
		return export.NewConsoleWriter(os.Stdout), nil
	case format.CSV:
		w, err := export.CreateCSV(output)
		if err != nil {
			return nil, err
		}
		return w, nil
	case format.HTML:
		w, err := export.CreateHTML(output)
		if err != nil {
			return nil, err
		}
		return w.Title(title), nil
	case format.ODS:
		w, err := ods.Create(output)
		if err != nil {
			return nil, err
		}
		return w.SheetPolicy(policy), nil
	case format.XLSX:
		w, err := xlsx.Create(output)
		if err != nil {
			return nil, err
		}
		return w.SheetPolicy(policy), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", f)
	}
}

// expandInputs resolves glob patterns to files, keeping the order of the
// patterns and sorting the matches of each. Plain paths are kept as given,
// so a missing file is reported by the run rather than dropped here.
func expandInputs(patterns []string, logger logrus.FieldLogger) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			add(pattern)
			continue
		}

		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)

		n := 0
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !format.Detect(m).IsInput() {
				continue
			}
			add(m)
			n++
		}
		if n == 0 {
			logger.WithField("pattern", pattern).Warn("Pattern matches no input files")
		}
	}

	if len(files) == 0 {
		return nil, gridripper.ErrNoInput
	}
	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
