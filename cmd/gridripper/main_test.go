package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	gridripper "github.com/michaelaaronlevy/grid-ripper"
	"github.com/michaelaaronlevy/grid-ripper/export"
	"github.com/michaelaaronlevy/grid-ripper/format"
	"github.com/michaelaaronlevy/grid-ripper/model"
	"github.com/michaelaaronlevy/grid-ripper/ods"
	"github.com/michaelaaronlevy/grid-ripper/xlsx"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		output, flag string
		want         format.Format
	}{
		{"out.ods", "", format.ODS},
		{"out.XLSX", "", format.XLSX},
		{"out.csv", "", format.CSV},
		{"out.html", "", format.HTML},
		{"-", "", format.Console},
		{"out.txt", "csv", format.CSV},
		{"out", ".ods", format.ODS},
		{"-", "console", format.Console},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.output, tt.flag)
		if err != nil {
			t.Errorf("resolveFormat(%q, %q) failed: %v", tt.output, tt.flag, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %s, want %s", tt.output, tt.flag, got, tt.want)
		}
	}
}

func TestResolveFormat_Errors(t *testing.T) {
	if _, err := resolveFormat("out.txt", ""); err == nil {
		t.Error("Expected error for unknown extension")
	}
	if _, err := resolveFormat("out.csv", "pdf"); err == nil {
		t.Error("Expected error for an input-only format")
	}
	if _, err := resolveFormat("out.txt", "console"); err == nil {
		t.Error("Expected error for console output to a file")
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"))
	touch(t, filepath.Join(dir, "a.pdf"))
	touch(t, filepath.Join(dir, "sub", "c.pdf"))
	touch(t, filepath.Join(dir, "notes.txt"))

	logger, hook := logtest.NewNullLogger()
	files, err := expandInputs([]string{
		filepath.Join(dir, "**", "*.pdf"),
		filepath.Join(dir, "a.pdf"), // duplicate
		filepath.Join(dir, "missing.pdf"),
	}, logger)
	if err != nil {
		t.Fatalf("expandInputs failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "sub", "c.pdf"),
		filepath.Join(dir, "missing.pdf"),
	}
	if len(files) != len(want) {
		t.Fatalf("Expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("File %d: expected %s, got %s", i, want[i], files[i])
		}
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("Expected no warnings, got %d", len(hook.AllEntries()))
	}
}

func TestExpandInputs_NoMatch(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	_, err := expandInputs([]string{filepath.Join(t.TempDir(), "*.pdf")}, logger)
	if !errors.Is(err, gridripper.ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got %v", err)
	}
	if len(hook.AllEntries()) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("Expected one warning for the empty pattern")
	}
}

func TestNewWriter(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		f    format.Format
		name string
		want func(export.Writer) bool
	}{
		{format.CSV, "out.csv", func(w export.Writer) bool { _, ok := w.(*export.CSVWriter); return ok }},
		{format.HTML, "out.html", func(w export.Writer) bool { _, ok := w.(*export.HTMLWriter); return ok }},
		{format.ODS, "out.ods", func(w export.Writer) bool { _, ok := w.(*ods.Writer); return ok }},
		{format.XLSX, "out.xlsx", func(w export.Writer) bool { _, ok := w.(*xlsx.Writer); return ok }},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		w, err := newWriter(tt.f, path, export.DefaultSheetPolicy(), "title")
		if err != nil {
			t.Errorf("newWriter(%s) failed: %v", tt.f, err)
			continue
		}
		if !tt.want(w) {
			t.Errorf("newWriter(%s) returned %T", tt.f, w)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to be created: %v", path, err)
		}
		w.Close()
	}

	if _, err := newWriter(format.PDF, filepath.Join(dir, "x.pdf"), export.DefaultSheetPolicy(), ""); err == nil {
		t.Error("Expected error for an input format")
	}
}

// session hands out the ids of a hand-driven export.
type session struct {
	cols model.ColumnSet
	last int
}

func (s *session) Columns() model.ColumnSet { return s.cols }
func (s *session) LastRowID() int           { return s.last }

func TestInspect_ODS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ods")
	w, err := ods.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	s := &session{cols: ods.Columns}
	w.Open(s)
	w.StartRow()
	w.WriteText("row_id")
	w.EndRow()
	w.StartDocument()
	w.StartPage()
	for i := 0; i < 3; i++ {
		s.last++
		w.StartRow()
		w.WriteInt(s.last)
		w.EndRow()
	}
	w.EndPage()
	w.EndDocument()
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var out bytes.Buffer
	if err := inspect(&out, path); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "0001\t4 rows") {
		t.Errorf("Expected sheet 0001 with 4 rows, got %q", got)
	}
	if !strings.Contains(got, "total\t4 rows in 1 sheets") {
		t.Errorf("Expected total line, got %q", got)
	}
}

func TestInspect_NotSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.pdf")
	touch(t, path)

	if err := inspect(&bytes.Buffer{}, path); err == nil {
		t.Error("Expected error for a PDF")
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&exitError{code: 1, err: cause})

	var ee *exitError
	if !errors.As(err, &ee) || ee.code != 1 {
		t.Error("Expected exit code 1")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected exitError to unwrap to its cause")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"rip", "inspect"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Expected subcommand %s", name)
		}
	}
}
