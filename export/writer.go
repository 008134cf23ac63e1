package export

import (
	"time"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

// Session is the view of the running export a writer may consult.
type Session interface {
	// Columns returns the columns every data row carries.
	Columns() model.ColumnSet
	// LastRowID returns the most recently assigned row id, 0 before the
	// first row.
	LastRowID() int
}

// Writer is the sink for an export. Calls arrive in this shape:
//
//	Open
//	  (StartRow cell* EndRow)*                   preamble and header
//	  (StartDocument
//	     (StartPage (StartRow cell* EndRow)* EndPage)*
//	   EndDocument)*
//	Close
//
// Write calls never report errors. A writer that cannot write declares a
// fatal error instead, after which every write is a no-op. Close always
// releases the underlying resources.
type Writer interface {
	// Columns returns the columns the writer will accept given the ones
	// requested by the caller.
	Columns(requested model.ColumnSet) model.ColumnSet
	Open(s Session)

	WriteBlank()
	WriteText(s string)
	WriteInt(n int)
	WriteFloat(f float64)
	WriteDate(t time.Time)

	StartRow()
	EndRow()
	StartPage()
	EndPage()
	StartDocument()
	EndDocument()

	// Close finishes the output and returns the first fatal error seen
	// during the run, if any.
	Close() error

	RunStatus() RunStatus
	ErrorStatus() ErrorStatus
	DeclareError()
	DeclareFatalError()
	Cause() error
}

// DateLayout is the human rendering of dates in text-based outputs.
const DateLayout = "2006-01-02 15:04:05"
