// Package export defines the sink an export run writes into and the
// text-based backends.
//
// A [Writer] receives cells, row boundaries, page boundaries and document
// boundaries in a fixed order, and carries a run status and an error status
// that another goroutine may poll at any time:
//
//	w := export.NewCSVWriter(f)
//	w.Open(session)
//	w.StartRow()
//	w.WriteText("Hello World")
//	w.EndRow()
//	err := w.Close()
//
// Writers never return errors from write calls. An output failure declares
// a fatal error ([Crash]); every later write becomes a no-op, and Close
// still releases the file. The first failure is available from Cause.
//
// # Backends
//
//   - [CSVWriter] - quoted text, invariant numbers, one row per line
//   - [ConsoleWriter] - human-readable rows prefixed with ">>"
//   - [HTMLWriter] - a single streamed HTML table
//
// The spreadsheet backends live in packages ods and xlsx and share
// [SheetPolicy] for splitting large exports across sheets.
package export
