// Package layout turns positioned fragments into ordered output rows.
//
// A page's fragments are first grouped into lines by [GroupLines], and
// engines that drop blanks get them back from [InsertSpaces]. Each line is
// then clustered (see package text) and every group becomes a [Row]:
//
//	page := layout.NewPage()
//	for _, line := range layout.GroupLines(fragments) {
//	    page.AddGroups(text.Cluster(line, text.Phrases))
//	}
//	page.Flush(w, model.DefaultColumns, info, ids)
//
// # Ordering and smoothing
//
// Rows are ordered by smoothed baseline, baseline, left edge, right edge,
// font size, rotation and content. [Page.Order] sorts once, pulls every row
// whose baseline lies within [SmoothTolerance] of the row above onto that
// row's smoothed baseline, and sorts again. Rows that jitter by a fraction
// of a point therefore land on the same visual line, ordered left to right.
package layout
