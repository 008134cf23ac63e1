package xlsx

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/michaelaaronlevy/grid-ripper/export"
	"github.com/michaelaaronlevy/grid-ripper/model"
)

// Columns is the column layout of the workbook: every column except the
// file path and file name.
var Columns = model.AllColumns.Without(model.ColFilePath, model.ColFileName)

const (
	floatFormat = "0.00"
	dateFormat  = "yyyy-mm-dd hh:mm:ss"
)

// Writer streams rows into an Excel workbook with excelize's stream writer.
// Sheets are named and split exactly like the ODS writer's.
type Writer struct {
	export.Status

	dst    io.Writer
	closer io.Closer

	file       *excelize.File
	stream     *excelize.StreamWriter
	floatStyle int
	dateStyle  int
	row        []interface{}
	rowNum     int

	policy  export.SheetPolicy
	sheets  *export.Sheets
	session export.Session
	header  []string
}

// New creates a writer on w. If w is an io.Closer it is closed by Close.
func New(w io.Writer) *Writer {
	x := &Writer{dst: w, policy: export.DefaultSheetPolicy()}
	if closer, ok := w.(io.Closer); ok {
		x.closer = closer
	}
	return x
}

// Create creates (or truncates) the file at path and returns a writer on it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create XLSX output: %w", err)
	}
	return New(f), nil
}

// SheetPolicy sets the thresholds at which a new sheet is started.
func (x *Writer) SheetPolicy(p export.SheetPolicy) *Writer {
	x.policy = p
	return x
}

// Sheets returns the number of sheets started so far.
func (x *Writer) Sheets() int {
	if x.sheets == nil {
		return 0
	}
	return x.sheets.Count()
}

// Columns returns the workbook's fixed column layout whatever was
// requested.
func (x *Writer) Columns(model.ColumnSet) model.ColumnSet {
	return Columns
}

// Open creates the workbook, its cell styles and the first sheet.
func (x *Writer) Open(s export.Session) {
	x.Start()
	if x.Crashed() {
		return
	}
	x.session = s
	x.header = s.Columns().Names()
	x.sheets = export.NewSheets(x.policy)
	x.file = excelize.NewFile()

	var err error
	floatFmt := floatFormat
	if x.floatStyle, err = x.file.NewStyle(&excelize.Style{CustomNumFmt: &floatFmt}); err != nil {
		x.Fail(fmt.Errorf("creating float style: %w", err))
		return
	}
	dateFmt := dateFormat
	if x.dateStyle, err = x.file.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		x.Fail(fmt.Errorf("creating date style: %w", err))
		return
	}

	x.newSheet()
}

// newSheet flushes the open sheet and begins the next one. Every sheet
// after the first repeats the column header.
func (x *Writer) newSheet() {
	if x.Crashed() {
		return
	}
	if x.stream != nil {
		if err := x.stream.Flush(); err != nil {
			x.Fail(fmt.Errorf("flushing sheet: %w", err))
			return
		}
		x.stream = nil
	}

	name := x.sheets.Begin(x.session.LastRowID())
	if x.sheets.Count() == 1 {
		if err := x.file.SetSheetName(x.file.GetSheetName(0), name); err != nil {
			x.Fail(fmt.Errorf("naming sheet %s: %w", name, err))
			return
		}
	} else if _, err := x.file.NewSheet(name); err != nil {
		x.Fail(fmt.Errorf("creating sheet %s: %w", name, err))
		return
	}

	stream, err := x.file.NewStreamWriter(name)
	if err != nil {
		x.Fail(fmt.Errorf("opening sheet %s: %w", name, err))
		return
	}
	x.stream = stream
	x.rowNum = 0

	if x.sheets.Count() > 1 {
		x.StartRow()
		for _, col := range x.header {
			x.WriteText(col)
		}
		x.EndRow()
	}
}

func (x *Writer) cell(v interface{}) {
	if x.Crashed() {
		return
	}
	x.row = append(x.row, v)
}

func (x *Writer) WriteBlank()        { x.cell(nil) }
func (x *Writer) WriteText(s string) { x.cell(s) }
func (x *Writer) WriteInt(n int)     { x.cell(n) }

func (x *Writer) WriteFloat(f float64) {
	x.cell(excelize.Cell{StyleID: x.floatStyle, Value: f})
}

func (x *Writer) WriteDate(t time.Time) {
	x.cell(excelize.Cell{StyleID: x.dateStyle, Value: t})
}

// StartRow begins a new row.
func (x *Writer) StartRow() {
	x.row = x.row[:0]
}

// EndRow hands the row to the stream writer.
func (x *Writer) EndRow() {
	if x.Crashed() || x.stream == nil {
		return
	}
	x.rowNum++
	axis, err := excelize.CoordinatesToCellName(1, x.rowNum)
	if err != nil {
		x.Fail(fmt.Errorf("row %d: %w", x.rowNum, err))
		return
	}
	if err := x.stream.SetRow(axis, x.row); err != nil {
		x.Fail(fmt.Errorf("writing row %d: %w", x.rowNum, err))
	}
	x.row = x.row[:0]
}

// StartPage starts a new sheet when the page threshold has been reached.
func (x *Writer) StartPage() {
	if x.Crashed() || x.sheets == nil {
		return
	}
	if x.sheets.SplitAtPage(x.session.LastRowID()) {
		x.newSheet()
	}
}

func (x *Writer) EndPage() {}

// StartDocument starts a new sheet when the document threshold has been
// reached.
func (x *Writer) StartDocument() {
	if x.Crashed() || x.sheets == nil {
		return
	}
	if x.sheets.SplitAtDocument(x.session.LastRowID()) {
		x.newSheet()
	}
}

func (x *Writer) EndDocument() {}

// Close flushes the last sheet, writes the workbook and closes the
// destination. After a crash the workbook is discarded unwritten.
func (x *Writer) Close() error {
	defer x.Finish()

	if x.file != nil {
		if !x.Crashed() && x.stream != nil {
			if err := x.stream.Flush(); err != nil {
				x.Fail(fmt.Errorf("flushing sheet: %w", err))
			}
		}
		if !x.Crashed() {
			if _, err := x.file.WriteTo(x.dst); err != nil {
				x.Fail(fmt.Errorf("writing workbook: %w", err))
			}
		}
		if err := x.file.Close(); err != nil && !x.Crashed() {
			x.Fail(fmt.Errorf("releasing workbook: %w", err))
		}
		x.file = nil
		x.stream = nil
	}

	if x.closer != nil {
		if err := x.closer.Close(); err != nil {
			x.Fail(fmt.Errorf("closing output: %w", err))
		}
		x.closer = nil
	}
	return x.Cause()
}
