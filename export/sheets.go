package export

import "fmt"

// Default sheet split thresholds, in rows.
const (
	DefaultPageThreshold     = 800000
	DefaultDocumentThreshold = 600000
)

// SheetPolicy decides when a spreadsheet writer opens a new sheet. A new
// sheet starts at a page boundary once PageThreshold rows have been
// assigned since the current sheet opened, and at a document boundary once
// DocumentThreshold rows have. Splits happen only at boundaries, so a sheet
// may overrun a threshold by the rows of one page.
type SheetPolicy struct {
	PageThreshold     int
	DocumentThreshold int
}

// DefaultSheetPolicy returns the default thresholds.
func DefaultSheetPolicy() SheetPolicy {
	return SheetPolicy{
		PageThreshold:     DefaultPageThreshold,
		DocumentThreshold: DefaultDocumentThreshold,
	}
}

// Sheets tracks the open sheet of a streaming spreadsheet writer.
type Sheets struct {
	Policy SheetPolicy

	count int
	start int
}

// NewSheets creates a tracker. Non-positive thresholds fall back to the
// defaults.
func NewSheets(policy SheetPolicy) *Sheets {
	if policy.PageThreshold <= 0 {
		policy.PageThreshold = DefaultPageThreshold
	}
	if policy.DocumentThreshold <= 0 {
		policy.DocumentThreshold = DefaultDocumentThreshold
	}
	return &Sheets{Policy: policy}
}

// Begin records the start of a new sheet at lastID and returns its name.
func (s *Sheets) Begin(lastID int) string {
	s.count++
	s.start = lastID
	return SheetName(s.count)
}

// Count returns the number of sheets begun so far.
func (s *Sheets) Count() int {
	return s.count
}

// SplitAtPage reports whether a new sheet should start before the next page.
func (s *Sheets) SplitAtPage(lastID int) bool {
	return s.count > 0 && s.start+s.Policy.PageThreshold < lastID+1
}

// SplitAtDocument reports whether a new sheet should start before the next
// document.
func (s *Sheets) SplitAtDocument(lastID int) bool {
	return s.count > 0 && s.start+s.Policy.DocumentThreshold < lastID+1
}

// SheetName returns the name of the n-th sheet: four digits, zero padded,
// growing to five past 9999.
func SheetName(n int) string {
	return fmt.Sprintf("%04d", n)
}
