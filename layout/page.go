package layout

import (
	"sort"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

// RowWriter is the part of an export writer a page needs to stream its rows.
type RowWriter interface {
	StartPage()
	EndPage()
	StartRow()
	EndRow()
	WriteInt(n int)
	WriteFloat(f float64)
	WriteText(s string)
}

// IDSource hands out row ids. Every call must return the next id of the run.
type IDSource interface {
	NextRowID() int
}

// PageInfo describes the page being flushed. Page and TotalPage are
// 1-based; TotalPage counts pages across every file of the run.
type PageInfo struct {
	FileNumber int
	FilePath   string
	FileName   string
	Page       int
	TotalPage  int
}

// Page buffers the rows of one page until they are flushed.
type Page struct {
	rows []*Row
}

// NewPage creates an empty page buffer.
func NewPage() *Page {
	return &Page{rows: make([]*Row, 0, 256)}
}

// Add appends a row to the page. Nil rows are ignored.
func (p *Page) Add(r *Row) {
	if r != nil {
		p.rows = append(p.rows, r)
	}
}

// AddGroups adds one row per fragment group.
func (p *Page) AddGroups(groups [][]model.Fragment) {
	for _, g := range groups {
		p.Add(NewRowFromGroup(g))
	}
}

// Len returns the number of buffered rows.
func (p *Page) Len() int {
	return len(p.rows)
}

// Rows returns the buffered rows in their current order.
func (p *Page) Rows() []*Row {
	return p.rows
}

// Order sorts the rows, smooths them in one pass over that order, and sorts
// again on the smoothed baselines.
func (p *Page) Order() {
	if len(p.rows) == 0 {
		return
	}
	p.sort()
	p.rows[0].Smooth(nil)
	for i := 1; i < len(p.rows); i++ {
		p.rows[i].Smooth(p.rows[i-1])
	}
	p.sort()
}

func (p *Page) sort() {
	sort.SliceStable(p.rows, func(i, j int) bool {
		return Less(p.rows[i], p.rows[j])
	})
}

// Flush orders the rows and streams them to w between StartPage and
// EndPage, writing only the columns in cols. An id is drawn from ids for
// every row whether or not ColRowID is written. The buffer is empty
// afterwards.
func (p *Page) Flush(w RowWriter, cols model.ColumnSet, info PageInfo, ids IDSource) {
	p.Order()
	columns := cols.Columns()

	w.StartPage()
	for _, r := range p.rows {
		w.StartRow()
		id := ids.NextRowID()
		for _, col := range columns {
			writeColumn(w, col, id, r, info)
		}
		w.EndRow()
	}
	p.Reset()
	w.EndPage()
}

// Reset drops all buffered rows.
func (p *Page) Reset() {
	for i := range p.rows {
		p.rows[i] = nil
	}
	p.rows = p.rows[:0]
}

func writeColumn(w RowWriter, col model.Column, id int, r *Row, info PageInfo) {
	switch col {
	case model.ColRowID:
		w.WriteInt(id)
	case model.ColFileNumber:
		w.WriteInt(info.FileNumber)
	case model.ColFilePath:
		w.WriteText(info.FilePath)
	case model.ColFileName:
		w.WriteText(info.FileName)
	case model.ColPage:
		w.WriteInt(info.Page)
	case model.ColTotalPage:
		w.WriteInt(info.TotalPage)
	case model.ColYStart:
		w.WriteFloat(r.YStart)
	case model.ColYSmooth:
		w.WriteFloat(r.YSmooth)
	case model.ColXStart:
		w.WriteFloat(r.XStart)
	case model.ColXEnd:
		w.WriteFloat(r.XEnd)
	case model.ColFontSize:
		w.WriteFloat(r.FontSize)
	case model.ColRotation:
		w.WriteInt(r.Rotation)
	case model.ColContent:
		w.WriteText(r.Content)
	}
}
