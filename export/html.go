package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

// HTMLWriter streams rows into a single HTML table. Each row is built as a
// node tree and rendered as soon as it ends, so memory use stays flat.
type HTMLWriter struct {
	Status

	out    *bufio.Writer
	closer io.Closer
	title  string
	row    *nethtml.Node
}

// NewHTMLWriter creates an HTML writer on w. If w is an io.Closer it is
// closed by Close.
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	h := &HTMLWriter{out: bufio.NewWriter(w), title: "grid-ripper"}
	if closer, ok := w.(io.Closer); ok {
		h.closer = closer
	}
	return h
}

// CreateHTML creates (or truncates) the file at path and returns a writer
// on it.
func CreateHTML(path string) (*HTMLWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTML output: %w", err)
	}
	return NewHTMLWriter(f), nil
}

// Title sets the document title.
func (h *HTMLWriter) Title(title string) *HTMLWriter {
	h.title = title
	return h
}

// Columns accepts any set of columns.
func (h *HTMLWriter) Columns(requested model.ColumnSet) model.ColumnSet {
	return requested
}

// Open writes the document head and opens the table.
func (h *HTMLWriter) Open(Session) {
	h.Start()
	h.write("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" +
		nethtml.EscapeString(h.title) + "</title></head>\n<body>\n<table>\n")
}

func (h *HTMLWriter) write(s string) {
	if h.Crashed() {
		return
	}
	if _, err := h.out.WriteString(s); err != nil {
		h.Fail(fmt.Errorf("html write: %w", err))
	}
}

func (h *HTMLWriter) cell(text, class string) {
	if h.Crashed() || h.row == nil {
		return
	}
	td := &nethtml.Node{Type: nethtml.ElementNode, DataAtom: atom.Td, Data: "td"}
	if class != "" {
		td.Attr = []nethtml.Attribute{{Key: "class", Val: class}}
	}
	if text != "" {
		td.AppendChild(&nethtml.Node{Type: nethtml.TextNode, Data: text})
	}
	h.row.AppendChild(td)
}

func (h *HTMLWriter) WriteBlank()          { h.cell("", "") }
func (h *HTMLWriter) WriteText(s string)   { h.cell(s, "") }
func (h *HTMLWriter) WriteInt(n int)       { h.cell(strconv.Itoa(n), "num") }
func (h *HTMLWriter) WriteFloat(f float64) { h.cell(strconv.FormatFloat(f, 'f', -1, 64), "num") }
func (h *HTMLWriter) WriteDate(t time.Time) {
	h.cell(t.Format(DateLayout), "date")
}

// StartRow begins a new table row.
func (h *HTMLWriter) StartRow() {
	h.row = &nethtml.Node{Type: nethtml.ElementNode, DataAtom: atom.Tr, Data: "tr"}
}

// EndRow renders the row.
func (h *HTMLWriter) EndRow() {
	row := h.row
	h.row = nil
	if h.Crashed() || row == nil {
		return
	}
	if err := nethtml.Render(h.out, row); err != nil {
		h.Fail(fmt.Errorf("html render: %w", err))
		return
	}
	h.write("\n")
}

func (h *HTMLWriter) StartPage() {}

// EndPage flushes buffered rows to the underlying writer.
func (h *HTMLWriter) EndPage() {
	if h.Crashed() {
		return
	}
	if err := h.out.Flush(); err != nil {
		h.Fail(fmt.Errorf("html flush: %w", err))
	}
}

func (h *HTMLWriter) StartDocument() {}
func (h *HTMLWriter) EndDocument()   {}

// Close closes the table and the document unless the writer crashed, then
// releases the underlying writer.
func (h *HTMLWriter) Close() error {
	defer h.Finish()
	if !h.Crashed() {
		h.write("</table>\n</body></html>\n")
		if err := h.out.Flush(); err != nil {
			h.Fail(fmt.Errorf("html flush: %w", err))
		}
	}
	if h.closer != nil {
		if err := h.closer.Close(); err != nil {
			h.Fail(fmt.Errorf("html close: %w", err))
		}
		h.closer = nil
	}
	return h.Cause()
}
