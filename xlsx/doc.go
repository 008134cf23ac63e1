// Package xlsx writes exports as Excel workbooks.
//
// [Writer] uses excelize's stream writer, so rows go to a temporary sheet
// file instead of accumulating in memory. Sheet names, the column layout,
// header repetition and the sheet split policy match package ods, so the
// two spreadsheet outputs are interchangeable.
package xlsx
