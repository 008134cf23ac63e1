// Package ods writes and reads OpenDocument spreadsheets.
//
// [Writer] streams an export into an .ods package without holding more
// than one row in memory. The fixed parts of the package (manifest,
// metadata, styles, settings and thumbnail) are embedded and copied
// through a small fixed buffer; content.xml is written as rows arrive.
//
// Large exports are split across sheets named "0001", "0002" and so on,
// using [export.SheetPolicy]. Every sheet after the first starts with a
// copy of the column header.
//
// [Open] and [Parse] read a spreadsheet back into sheets, rows and typed
// cells:
//
//	doc, err := ods.Open("out.ods")
//	if err != nil {
//	    return err
//	}
//	for _, sheet := range doc.Sheets {
//	    fmt.Println(sheet.Name, len(sheet.Rows))
//	}
package ods
