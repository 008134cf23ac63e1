package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

const (
	consoleRowPrefix = ">>\t"
	consoleSeparator = ", "
)

// ConsoleWriter prints rows for a human reader, one per line, prefixed with
// ">>" and a tab.
type ConsoleWriter struct {
	Status

	out   *bufio.Writer
	cells int
}

// NewConsoleWriter creates a console writer on w, typically os.Stdout.
func NewConsoleWriter(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{out: bufio.NewWriter(w)}
}

// Columns accepts any set of columns.
func (c *ConsoleWriter) Columns(requested model.ColumnSet) model.ColumnSet {
	return requested
}

// Open marks the writer as running.
func (c *ConsoleWriter) Open(Session) {
	c.Start()
}

func (c *ConsoleWriter) print(s string) {
	if c.Crashed() {
		return
	}
	if c.cells > 0 {
		c.out.WriteString(consoleSeparator)
	}
	c.cells++
	if _, err := c.out.WriteString(s); err != nil {
		c.Fail(fmt.Errorf("console write: %w", err))
	}
}

func (c *ConsoleWriter) WriteBlank()          { c.print("") }
func (c *ConsoleWriter) WriteText(s string)   { c.print(s) }
func (c *ConsoleWriter) WriteInt(n int)       { c.print(strconv.Itoa(n)) }
func (c *ConsoleWriter) WriteFloat(f float64) { c.print(strconv.FormatFloat(f, 'f', -1, 64)) }
func (c *ConsoleWriter) WriteDate(t time.Time) {
	c.print(t.Format("2006.01.02 at 15:04:05 MST"))
}

// StartRow prints the row prefix.
func (c *ConsoleWriter) StartRow() {
	if c.Crashed() {
		return
	}
	c.cells = 0
	c.out.WriteString(consoleRowPrefix)
}

// EndRow ends the line and flushes it.
func (c *ConsoleWriter) EndRow() {
	if c.Crashed() {
		return
	}
	c.out.WriteByte('\n')
	if err := c.out.Flush(); err != nil {
		c.Fail(fmt.Errorf("console write: %w", err))
	}
}

func (c *ConsoleWriter) StartPage()     {}
func (c *ConsoleWriter) EndPage()       {}
func (c *ConsoleWriter) StartDocument() {}
func (c *ConsoleWriter) EndDocument()   {}

// Close flushes pending output and marks the run as done. The underlying
// writer is left open.
func (c *ConsoleWriter) Close() error {
	defer c.Finish()
	if !c.Crashed() {
		if err := c.out.Flush(); err != nil {
			c.Fail(fmt.Errorf("console flush: %w", err))
		}
	}
	return c.Cause()
}
