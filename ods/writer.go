package ods

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/michaelaaronlevy/grid-ripper/export"
	"github.com/michaelaaronlevy/grid-ripper/model"
)

// Columns is the fixed column layout of the spreadsheet template. The
// file path and file name columns are never written.
var Columns = model.AllColumns.Without(model.ColFilePath, model.ColFileName)

// Writer streams rows into an OpenDocument spreadsheet. Static parts are
// copied from embedded resources when the writer opens; content.xml is
// written row by row and split across sheets according to the sheet
// policy. Nothing but the current row is held in memory.
type Writer struct {
	export.Status

	dst     io.Writer
	closer  io.Closer
	buf     *bufio.Writer
	zw      *zip.Writer
	content io.Writer
	copyBuf []byte

	policy  export.SheetPolicy
	sheets  *export.Sheets
	session export.Session
	header  []string
}

// New creates a writer on w. If w is an io.Closer it is closed by Close.
func New(w io.Writer) *Writer {
	o := &Writer{
		dst:     w,
		copyBuf: make([]byte, copyBufferSize),
		policy:  export.DefaultSheetPolicy(),
	}
	if closer, ok := w.(io.Closer); ok {
		o.closer = closer
	}
	return o
}

// Create creates (or truncates) the file at path and returns a writer on it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create ODS output: %w", err)
	}
	return New(f), nil
}

// SheetPolicy sets the thresholds at which a new sheet is started.
func (o *Writer) SheetPolicy(p export.SheetPolicy) *Writer {
	o.policy = p
	return o
}

// Sheets returns the number of sheets started so far.
func (o *Writer) Sheets() int {
	if o.sheets == nil {
		return 0
	}
	return o.sheets.Count()
}

// Columns returns the template's fixed column layout whatever was
// requested.
func (o *Writer) Columns(model.ColumnSet) model.ColumnSet {
	return Columns
}

// Open writes the static parts of the package, starts content.xml and
// opens the first sheet.
func (o *Writer) Open(s export.Session) {
	o.Start()
	if o.Crashed() {
		return
	}
	o.session = s
	o.header = s.Columns().Names()
	o.sheets = export.NewSheets(o.policy)
	o.buf = bufio.NewWriterSize(o.dst, 64*1024)
	o.zw = zip.NewWriter(o.buf)

	if err := o.writeStatic(); err != nil {
		o.Fail(err)
		return
	}

	content, err := o.zw.Create("content.xml")
	if err != nil {
		o.Fail(fmt.Errorf("creating content.xml: %w", err))
		return
	}
	o.content = content
	if err := copyResource(o.content, resourceHeading, o.copyBuf); err != nil {
		o.Fail(err)
		return
	}
	o.newSheet()
}

func (o *Writer) writeStatic() error {
	// The mimetype must come first and be stored uncompressed.
	mt, err := o.zw.CreateHeader(&zip.FileHeader{
		Name:     "mimetype",
		Method:   zip.Store,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating mimetype: %w", err)
	}
	if err := copyResource(mt, resourceMimetype, o.copyBuf); err != nil {
		return err
	}

	for _, dir := range configDirs {
		if _, err := o.zw.Create(dir); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	for _, part := range staticParts {
		w, err := o.zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if err := copyResource(w, part.resource, o.copyBuf); err != nil {
			return err
		}
	}
	return nil
}

func (o *Writer) write(s string) {
	if o.Crashed() || o.content == nil {
		return
	}
	if _, err := io.WriteString(o.content, s); err != nil {
		o.Fail(fmt.Errorf("writing content.xml: %w", err))
	}
}

// newSheet closes the open sheet, if any, and begins the next one. Every
// sheet after the first repeats the column header.
func (o *Writer) newSheet() {
	if o.Crashed() {
		return
	}
	if o.sheets.Count() > 0 {
		o.write(sheetEndTag)
	}
	name := o.sheets.Begin(o.session.LastRowID())
	o.write(sheetStartTag + name)
	if o.Crashed() {
		return
	}
	if err := copyResource(o.content, resourceSheetStart, o.copyBuf); err != nil {
		o.Fail(err)
		return
	}

	if o.sheets.Count() > 1 {
		o.StartRow()
		for _, col := range o.header {
			o.WriteText(col)
		}
		o.EndRow()
	}
}

func (o *Writer) WriteBlank()           { o.write(blankCell) }
func (o *Writer) WriteText(s string)    { o.write(textCell(s)) }
func (o *Writer) WriteInt(n int)        { o.write(intCell(n)) }
func (o *Writer) WriteFloat(f float64)  { o.write(floatCell(f)) }
func (o *Writer) WriteDate(t time.Time) { o.write(dateCell(t)) }
func (o *Writer) StartRow()             { o.write(rowStartTag) }
func (o *Writer) EndRow()               { o.write(rowEndTag) }

// StartPage starts a new sheet when the page threshold has been reached.
func (o *Writer) StartPage() {
	if o.Crashed() || o.sheets == nil {
		return
	}
	if o.sheets.SplitAtPage(o.session.LastRowID()) {
		o.newSheet()
	}
}

func (o *Writer) EndPage() {}

// StartDocument starts a new sheet when the document threshold has been
// reached.
func (o *Writer) StartDocument() {
	if o.Crashed() || o.sheets == nil {
		return
	}
	if o.sheets.SplitAtDocument(o.session.LastRowID()) {
		o.newSheet()
	}
}

func (o *Writer) EndDocument() {}

// Close finishes content.xml and the archive and closes the destination.
// After a crash nothing more is written; the destination is only closed.
func (o *Writer) Close() error {
	defer o.Finish()

	if !o.Crashed() && o.zw != nil {
		o.write(sheetEndTag + contentEnd)
		if !o.Crashed() {
			if err := o.zw.Close(); err != nil {
				o.Fail(fmt.Errorf("closing archive: %w", err))
			}
		}
		if !o.Crashed() {
			if err := o.buf.Flush(); err != nil {
				o.Fail(fmt.Errorf("flushing archive: %w", err))
			}
		}
	}

	if o.closer != nil {
		if err := o.closer.Close(); err != nil {
			o.Fail(fmt.Errorf("closing output: %w", err))
		}
		o.closer = nil
	}
	o.content = nil
	return o.Cause()
}
