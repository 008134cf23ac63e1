package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

// CSVWriter writes rows as comma-separated values. Text cells are always
// quoted. Page and document boundaries leave no trace in the output.
type CSVWriter struct {
	Status

	out     *bufio.Writer
	closer  io.Closer
	comma   byte
	newline string
	cells   int
}

// NewCSVWriter creates a CSV writer on w. If w is an io.Closer it is closed
// by Close.
func NewCSVWriter(w io.Writer) *CSVWriter {
	c := &CSVWriter{
		out:     bufio.NewWriter(w),
		comma:   ',',
		newline: "\r\n",
	}
	if closer, ok := w.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// CreateCSV creates (or truncates) the file at path and returns a writer
// on it.
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV output: %w", err)
	}
	return NewCSVWriter(f), nil
}

// Comma sets the field separator.
func (c *CSVWriter) Comma(sep byte) *CSVWriter {
	c.comma = sep
	return c
}

// UnixNewlines ends rows with "\n" instead of "\r\n".
func (c *CSVWriter) UnixNewlines() *CSVWriter {
	c.newline = "\n"
	return c
}

// Columns accepts any set of columns.
func (c *CSVWriter) Columns(requested model.ColumnSet) model.ColumnSet {
	return requested
}

// Open marks the writer as running.
func (c *CSVWriter) Open(Session) {
	c.Start()
}

func (c *CSVWriter) field(s string) {
	if c.Crashed() {
		return
	}
	if c.cells > 0 {
		c.out.WriteByte(c.comma)
	}
	c.cells++
	if _, err := c.out.WriteString(s); err != nil {
		c.Fail(fmt.Errorf("csv write: %w", err))
	}
}

// WriteBlank writes an empty cell.
func (c *CSVWriter) WriteBlank() {
	c.field("")
}

// WriteText writes a quoted cell, doubling embedded quotes.
func (c *CSVWriter) WriteText(s string) {
	c.field(QuoteCSV(s))
}

// WriteInt writes a decimal integer cell.
func (c *CSVWriter) WriteInt(n int) {
	c.field(strconv.Itoa(n))
}

// WriteFloat writes the shortest decimal that round-trips f.
func (c *CSVWriter) WriteFloat(f float64) {
	c.field(strconv.FormatFloat(f, 'f', -1, 64))
}

// WriteDate writes t as quoted text.
func (c *CSVWriter) WriteDate(t time.Time) {
	c.WriteText(t.Format(DateLayout))
}

// StartRow begins a row.
func (c *CSVWriter) StartRow() {
	c.cells = 0
}

// EndRow terminates the row.
func (c *CSVWriter) EndRow() {
	if c.Crashed() {
		return
	}
	c.cells = 0
	if _, err := c.out.WriteString(c.newline); err != nil {
		c.Fail(fmt.Errorf("csv write: %w", err))
	}
}

func (c *CSVWriter) StartPage() {}

// EndPage flushes buffered rows to the underlying writer.
func (c *CSVWriter) EndPage() {
	if c.Crashed() {
		return
	}
	if err := c.out.Flush(); err != nil {
		c.Fail(fmt.Errorf("csv flush: %w", err))
	}
}

func (c *CSVWriter) StartDocument() {}
func (c *CSVWriter) EndDocument()   {}

// Close flushes the output unless the writer crashed, closes the underlying
// writer and marks the run as done.
func (c *CSVWriter) Close() error {
	defer c.Finish()
	if !c.Crashed() {
		if err := c.out.Flush(); err != nil {
			c.Fail(fmt.Errorf("csv flush: %w", err))
		}
	}
	if c.closer != nil {
		if err := c.closer.Close(); err != nil {
			c.Fail(fmt.Errorf("csv close: %w", err))
		}
		c.closer = nil
	}
	return c.Cause()
}

// QuoteCSV wraps s in double quotes and doubles any quote inside it.
func QuoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
