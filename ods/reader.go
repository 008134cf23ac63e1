package ods

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"

	mimeSpreadsheet = "application/vnd.oasis.opendocument.spreadsheet"

	// maxRepeat bounds column and row repetition, which office suites use
	// to pad sheets to their full width.
	maxRepeat = 1024
)

// ErrNotSpreadsheet is returned for packages whose mimetype is not an
// OpenDocument spreadsheet.
var ErrNotSpreadsheet = errors.New("not an OpenDocument spreadsheet")

// Cell is one cell of a sheet.
type Cell struct {
	// Type is the office value type: "string", "float", "date" and so on.
	// Empty cells have no type.
	Type string
	// Value is the machine-readable value of float and date cells.
	Value string
	// Text is the displayed text.
	Text string
}

// IsEmpty reports whether the cell has neither type nor text.
func (c Cell) IsEmpty() bool {
	return c.Type == "" && c.Text == ""
}

// Sheet is one table of a spreadsheet. Rows runs up to the last row with
// content; blank rows before it are present with no cells.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Document is the content of a spreadsheet.
type Document struct {
	Sheets []Sheet
}

// SheetNames returns the names of all sheets in order.
func (d *Document) SheetNames() []string {
	names := make([]string, len(d.Sheets))
	for i, s := range d.Sheets {
		names[i] = s.Name
	}
	return names
}

// RowCount returns the total number of rows over all sheets.
func (d *Document) RowCount() int {
	n := 0
	for _, s := range d.Sheets {
		n += len(s.Rows)
	}
	return n
}

// Open reads the spreadsheet at path.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()
	return read(&zr.Reader)
}

// Parse reads a spreadsheet from r.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return read(zr)
}

func read(zr *zip.Reader) (*Document, error) {
	var content *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case "mimetype":
			if err := checkMimetype(f); err != nil {
				return nil, err
			}
		case "content.xml":
			content = f
		}
	}
	if content == nil {
		return nil, fmt.Errorf("missing required file: content.xml")
	}

	rc, err := content.Open()
	if err != nil {
		return nil, fmt.Errorf("opening content.xml: %w", err)
	}
	defer rc.Close()

	doc, err := decodeContent(xml.NewDecoder(rc))
	if err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	return doc, nil
}

func checkMimetype(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening mimetype: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, 256))
	if err != nil {
		return fmt.Errorf("reading mimetype: %w", err)
	}
	if strings.TrimSpace(string(data)) != mimeSpreadsheet {
		return fmt.Errorf("%w: mimetype %q", ErrNotSpreadsheet, string(data))
	}
	return nil
}

// decodeContent walks content.xml token by token, collecting sheets, rows
// and cells.
func decodeContent(dec *xml.Decoder) (*Document, error) {
	doc := &Document{}

	var (
		sheet      *Sheet
		row        []Cell
		rowRepeat  int
		cell       *Cell
		cellRepeat int
		text       strings.Builder
		paragraphs int
		inPara     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsTable && t.Name.Local == "table":
				doc.Sheets = append(doc.Sheets, Sheet{Name: attr(t, nsTable, "name")})
				sheet = &doc.Sheets[len(doc.Sheets)-1]

			case t.Name.Space == nsTable && t.Name.Local == "table-row":
				row = nil
				rowRepeat = repeat(attr(t, nsTable, "number-rows-repeated"))

			case t.Name.Space == nsTable && (t.Name.Local == "table-cell" || t.Name.Local == "covered-table-cell"):
				cell = &Cell{
					Type:  attr(t, nsOffice, "value-type"),
					Value: attr(t, nsOffice, "value"),
				}
				if v := attr(t, nsOffice, "date-value"); v != "" {
					cell.Value = v
				}
				cellRepeat = repeat(attr(t, nsTable, "number-columns-repeated"))
				text.Reset()
				paragraphs = 0

			case t.Name.Space == nsText && t.Name.Local == "p" && cell != nil:
				if paragraphs > 0 {
					text.WriteByte('\n')
				}
				paragraphs++
				inPara = true

			case t.Name.Space == nsText && t.Name.Local == "s" && inPara:
				n, err := strconv.Atoi(attr(t, nsText, "c"))
				if err != nil || n < 1 {
					n = 1
				}
				text.WriteString(strings.Repeat(" ", n))

			case t.Name.Space == nsText && t.Name.Local == "tab" && inPara:
				text.WriteByte('\t')

			case t.Name.Space == nsText && t.Name.Local == "line-break" && inPara:
				text.WriteByte('\n')
			}

		case xml.CharData:
			if inPara {
				text.Write(t)
			}

		case xml.EndElement:
			switch {
			case t.Name.Space == nsText && t.Name.Local == "p":
				inPara = false

			case t.Name.Space == nsTable && (t.Name.Local == "table-cell" || t.Name.Local == "covered-table-cell"):
				if cell != nil {
					cell.Text = text.String()
					for i := 0; i < cellRepeat; i++ {
						row = append(row, *cell)
					}
				}
				cell = nil

			case t.Name.Space == nsTable && t.Name.Local == "table-row":
				row = trimEmpty(row)
				if sheet != nil {
					for i := 0; i < rowRepeat; i++ {
						sheet.Rows = append(sheet.Rows, row)
					}
				}
				row = nil

			case t.Name.Space == nsTable && t.Name.Local == "table":
				// Blank rows inside a sheet are kept; the padding office
				// suites add after the last row is not.
				if sheet != nil {
					sheet.Rows = trimEmptyRows(sheet.Rows)
				}
				sheet = nil
			}
		}
	}

	return doc, nil
}

func attr(t xml.StartElement, space, local string) string {
	for _, a := range t.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func repeat(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	if n > maxRepeat {
		return maxRepeat
	}
	return n
}

func trimEmptyRows(rows [][]Cell) [][]Cell {
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func trimEmpty(row []Cell) []Cell {
	for len(row) > 0 && row[len(row)-1].IsEmpty() {
		row = row[:len(row)-1]
	}
	return row
}
