// Package model provides the data types shared by the extraction, layout and
// export packages.
//
// # Fragments
//
// A [Fragment] is a positioned piece of text produced by an extraction
// engine. Coordinates are page points measured from the top-left corner, so
// rows sort top to bottom by ascending Y.
//
// # Columns
//
// Every exported row has up to thirteen columns. [Column] enumerates them in
// output order and [ColumnSet] is the mask a caller requests and a writer
// narrows to what it supports:
//
//	cols := model.DefaultColumns.Without(model.ColRotation)
//	for _, c := range cols.Columns() {
//	    fmt.Println(c.Name())
//	}
//
// # Geometry
//
// [BBox] supports the bounding-box union used to aggregate fragments into
// rows.
package model
