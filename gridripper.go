// Package gridripper exports the text of PDF files and scanned pages as
// spreadsheet rows that keep the position of every phrase, word or
// character on its page.
//
// Basic usage:
//
//	out, err := ods.Create("statements.ods")
//	if err != nil {
//	    // handle error
//	}
//	err = gridripper.New(out, "january.pdf", "february.pdf").Run()
//
// With options:
//
//	c := gridripper.New(export.NewCSVWriter(os.Stdout), files...).
//	    Mode(text.Words).
//	    Columns(model.AllColumns).
//	    Preamble()
//
// Run is meant to be called on its own goroutine while the caller polls
// [Controller.Status] or [Controller.Progress]. Every row gets an id one
// greater than the previous row's, starting at 1, in a single order across
// all files, so files and pages are processed strictly one after another.
package gridripper

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/michaelaaronlevy/grid-ripper/export"
	"github.com/michaelaaronlevy/grid-ripper/layout"
	"github.com/michaelaaronlevy/grid-ripper/model"
	"github.com/michaelaaronlevy/grid-ripper/reader"
	"github.com/michaelaaronlevy/grid-ripper/text"
)

var (
	// ErrNoInput is returned by Run when no input files were given.
	ErrNoInput = errors.New("no input files")

	// ErrAlreadyRun is returned when Run is called a second time.
	ErrAlreadyRun = errors.New("controller has already run")

	// ErrAborted is returned by Run when the export stopped on a fatal
	// error that carries no cause of its own, such as Abort.
	ErrAborted = errors.New("run aborted")
)

// Controller drives one export: every page of every input file is turned
// into rows and streamed to a writer.
//
// Configuration methods return a new Controller, leaving the receiver
// untouched. Run may be called once per Controller.
type Controller struct {
	out     export.Writer
	files   []string
	options RunOptions

	state *runState
}

// runState is the part of a Controller that changes during Run. The
// counters may be read from any goroutine.
type runState struct {
	started atomic.Bool

	lastID     atomic.Int64 // last row id handed out
	file       atomic.Int32 // 1-based number of the current file
	page       atomic.Int32 // 0-based page of the current file, -1 before the first
	pageCount  atomic.Int32 // pages in the current file
	totalPages atomic.Int32 // pages started across all files

	columns atomic.Uint32 // model.ColumnSet, fixed once the writer is opened

	mu     sync.Mutex
	errors []error
}

func newRunState() *runState {
	s := &runState{}
	s.page.Store(-1)
	return s
}

// New creates a Controller that exports files, in order, to out.
func New(out export.Writer, files ...string) *Controller {
	return &Controller{
		out:     out,
		files:   append([]string(nil), files...),
		options: defaultOptions(),
		state:   newRunState(),
	}
}

// clone returns a copy of c with fresh run state.
func (c *Controller) clone() *Controller {
	return &Controller{
		out:     c.out,
		files:   append([]string(nil), c.files...),
		options: c.options.clone(),
		state:   newRunState(),
	}
}

// Mode sets how the fragments of a line are grouped into rows.
func (c *Controller) Mode(m text.Mode) *Controller {
	n := c.clone()
	n.options.mode = m
	return n
}

// Columns sets the columns to export. The writer may narrow the set.
func (c *Controller) Columns(cols model.ColumnSet) *Controller {
	n := c.clone()
	n.options.columns = cols
	return n
}

// Engine sets the extraction engine. The default picks the PDF or OCR
// engine by file content.
func (c *Controller) Engine(e reader.Engine) *Controller {
	n := c.clone()
	n.options.engine = e
	return n
}

// Preamble writes a title row, one row per input file and a blank row
// before the column header.
func (c *Controller) Preamble() *Controller {
	n := c.clone()
	n.options.preamble = true
	return n
}

// Title sets the first cell of the preamble.
func (c *Controller) Title(title string) *Controller {
	n := c.clone()
	n.options.title = title
	return n
}

// Logger sets the logger used for per-file failures and the run summary.
func (c *Controller) Logger(l logrus.FieldLogger) *Controller {
	n := c.clone()
	n.options.logger = l
	return n
}

// Files returns the input files in processing order.
func (c *Controller) Files() []string {
	return append([]string(nil), c.files...)
}

// Run exports every file and closes the writer. Files that cannot be read
// are skipped and reported by Errors; the run then ends in
// CompletedWithErrors. Run stops early only when the writer crashes, in
// which case it returns the writer's fatal error. Without input files Run
// returns ErrNoInput and leaves the writer untouched.
func (c *Controller) Run() error {
	if len(c.files) == 0 {
		return ErrNoInput
	}
	if !c.state.started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}

	log := c.options.log()
	if c.out.ErrorStatus() == export.Crash {
		return c.finish(log)
	}

	c.state.columns.Store(uint32(c.out.Columns(c.options.columns)))
	c.out.Open(session{c})

	if c.options.preamble {
		c.writePreamble()
	}
	c.writeHeader()

	engine := c.options.reader()
	page := layout.NewPage()
	for i, path := range c.files {
		if c.out.ErrorStatus() == export.Crash {
			break
		}

		c.state.file.Store(int32(i + 1))
		c.state.page.Store(-1)
		c.state.pageCount.Store(0)

		c.out.StartDocument()
		if err := c.ripFile(engine, page, i+1, path); err != nil {
			c.out.DeclareError()
			c.recordError(err)
			entry := log.WithError(err).WithField("file", path)
			var fe *FileError
			if errors.As(err, &fe) && fe.Page > 0 {
				entry = entry.WithField("page", fe.Page)
			}
			entry.Warn("Skipping rest of file")
		}
		c.out.EndDocument()
	}

	return c.finish(log)
}

// finish closes the writer and logs the outcome.
func (c *Controller) finish(log logrus.FieldLogger) error {
	err := c.out.Close()
	outcome := c.Outcome()

	entry := log.WithFields(logrus.Fields{
		"files":   len(c.files),
		"pages":   c.state.totalPages.Load(),
		"rows":    c.state.lastID.Load(),
		"outcome": outcome.String(),
	})
	switch outcome {
	case Aborted:
		if err == nil {
			err = ErrAborted
		}
		entry.WithError(err).Error("Export aborted")
		return err
	case CompletedWithErrors:
		entry.WithField("errors", len(c.Errors())).Warn("Export finished with errors")
	default:
		entry.Info("Export finished")
	}
	return nil
}

// ripFile streams every page of one file to the writer.
func (c *Controller) ripFile(engine reader.Engine, page *layout.Page, number int, path string) (err error) {
	doc, err := engine.Open(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil && err == nil {
			err = &FileError{Path: path, Err: fmt.Errorf("close: %w", cerr)}
		}
	}()

	pages := doc.NumPages()
	c.state.pageCount.Store(int32(pages))

	info := layout.PageInfo{
		FileNumber: number,
		FilePath:   filepath.Dir(path),
		FileName:   filepath.Base(path),
	}
	for p := 0; p < pages; p++ {
		if c.out.ErrorStatus() == export.Crash {
			return nil
		}
		c.state.page.Store(int32(p))
		total := c.state.totalPages.Add(1)

		lines, err := doc.Lines(p)
		if err != nil {
			page.Reset()
			return &FileError{Path: path, Page: p + 1, Err: err}
		}
		for _, line := range lines {
			page.AddGroups(text.Cluster(line, c.options.mode))
		}

		info.Page = p + 1
		info.TotalPage = int(total)
		page.Flush(c.out, c.ActiveColumns(), info, c)
	}
	return nil
}

func (c *Controller) writePreamble() {
	w := c.out
	w.StartRow()
	w.WriteText(c.options.title)
	for i := 0; i < c.ActiveColumns().Len()-3; i++ {
		w.WriteBlank()
	}
	w.WriteText("Run Date:")
	w.WriteDate(c.options.now())
	w.EndRow()

	for i, path := range c.files {
		w.StartRow()
		w.WriteText(fmt.Sprintf("File %d:", i+1))
		w.WriteText(filepath.Dir(path))
		w.WriteText(filepath.Base(path))
		w.EndRow()
	}

	w.StartRow()
	w.EndRow()
}

func (c *Controller) writeHeader() {
	c.out.StartRow()
	for _, name := range c.ActiveColumns().Names() {
		c.out.WriteText(name)
	}
	c.out.EndRow()
}

// NextRowID hands out the next row id.
func (c *Controller) NextRowID() int {
	return int(c.state.lastID.Add(1))
}

// LastRowID returns the id of the most recent row, 0 before the first.
func (c *Controller) LastRowID() int {
	return int(c.state.lastID.Load())
}

// ActiveColumns returns the columns negotiated with the writer. It is
// empty until Run opens the writer, and safe to poll while Run is going.
func (c *Controller) ActiveColumns() model.ColumnSet {
	return model.ColumnSet(c.state.columns.Load())
}

// Abort declares a fatal error on the writer. The run stops at the next
// page boundary and the output is discarded.
func (c *Controller) Abort() {
	c.out.DeclareFatalError()
}

// Errors returns the recoverable errors of the run, one per skipped file.
func (c *Controller) Errors() []error {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return append([]error(nil), c.state.errors...)
}

func (c *Controller) recordError(err error) {
	c.state.mu.Lock()
	c.state.errors = append(c.state.errors, err)
	c.state.mu.Unlock()
}

// session exposes the negotiated columns to the writer. Controller cannot
// implement export.Session directly because Columns is its option setter.
type session struct {
	c *Controller
}

func (s session) Columns() model.ColumnSet { return s.c.ActiveColumns() }
func (s session) LastRowID() int           { return s.c.LastRowID() }
