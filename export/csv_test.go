package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

type stubSession struct {
	cols   model.ColumnSet
	lastID int
}

func (s stubSession) Columns() model.ColumnSet { return s.cols }
func (s stubSession) LastRowID() int           { return s.lastID }

// errWriter fails every write.
type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// closeRecorder records whether Close was called.
type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestQuoteCSV(t *testing.T) {
	tests := map[string]string{
		"":            `""`,
		"plain":       `"plain"`,
		`say "hi"`:    `"say ""hi"""`,
		"a,b":         `"a,b"`,
		"line\nbreak": "\"line\nbreak\"",
		`""`:          `""""""`,
	}
	for in, want := range tests {
		if got := QuoteCSV(in); got != want {
			t.Errorf("QuoteCSV(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestCSVWriter_Rows(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf).UnixNewlines()
	w.Open(stubSession{})

	w.StartRow()
	w.WriteText("row_id")
	w.WriteText("content")
	w.EndRow()

	w.StartDocument()
	w.StartPage()
	w.StartRow()
	w.WriteInt(1)
	w.WriteFloat(72.5)
	w.WriteFloat(100)
	w.WriteBlank()
	w.WriteText(`a "quoted" word`)
	w.EndRow()
	w.EndPage()
	w.EndDocument()

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := "\"row_id\",\"content\"\n1,72.5,100,,\"a \"\"quoted\"\" word\"\n"
	if got := buf.String(); got != want {
		t.Errorf("Unexpected CSV\n got: %q\nwant: %q", got, want)
	}
	if w.RunStatus() != Done {
		t.Errorf("Expected Done, got %v", w.RunStatus())
	}
}

func TestCSVWriter_DefaultNewlineAndDate(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	w.Open(stubSession{})
	w.StartRow()
	w.WriteDate(time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC))
	w.EndRow()
	w.Close()

	if got, want := buf.String(), "\"2024-03-05 14:07:09\"\r\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCSVWriter_Comma(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf).Comma(';').UnixNewlines()
	w.Open(stubSession{})
	w.StartRow()
	w.WriteInt(1)
	w.WriteInt(2)
	w.EndRow()
	w.Close()

	if got := buf.String(); got != "1;2\n" {
		t.Errorf("Expected \"1;2\\n\", got %q", got)
	}
}

func TestCSVWriter_CrashThenWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	w.Open(stubSession{})
	w.StartPage()
	w.StartRow()
	w.WriteText("before")
	w.EndRow()
	w.EndPage()

	size := buf.Len()
	if size == 0 {
		t.Fatal("Expected the first page to be flushed")
	}

	w.DeclareFatalError()
	w.StartDocument()
	w.StartPage()
	w.StartRow()
	w.WriteText("after")
	w.WriteInt(2)
	w.WriteFloat(3)
	w.WriteBlank()
	w.WriteDate(time.Now())
	w.EndRow()
	w.EndPage()
	w.EndDocument()
	w.Close()

	if buf.Len() != size {
		t.Errorf("Expected %d bytes after crash, got %d", size, buf.Len())
	}
	if w.RunStatus() != Done {
		t.Errorf("Expected Done, got %v", w.RunStatus())
	}
}

func TestCSVWriter_WriteFailureCrashes(t *testing.T) {
	w := NewCSVWriter(errWriter{})
	w.Open(stubSession{})
	w.StartPage()
	w.StartRow()
	w.WriteText("x")
	w.EndRow()
	w.EndPage()

	if w.ErrorStatus() != Crash {
		t.Fatalf("Expected Crash, got %v", w.ErrorStatus())
	}
	if err := w.Close(); err == nil {
		t.Error("Expected Close to report the cause")
	}
}

func TestCSVWriter_ClosesUnderlyingEvenAfterCrash(t *testing.T) {
	rec := &closeRecorder{}
	w := NewCSVWriter(rec)
	w.Open(stubSession{})
	w.DeclareFatalError()
	w.Close()

	if !rec.closed {
		t.Error("Expected the underlying writer to be closed")
	}
}

func TestCSVWriter_CreateCSV(t *testing.T) {
	if _, err := CreateCSV(t.TempDir() + "/missing/dir/out.csv"); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
