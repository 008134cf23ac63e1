package ods

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	sheetStartTag = `<table:table table:name="`
	sheetEndTag   = `</table:table>`
	contentEnd    = `<table:named-expressions/></office:spreadsheet></office:body></office:document-content>`

	rowStartTag = `<table:table-row table:style-name="ro1">`
	rowEndTag   = `</table:table-row>`

	floatCellStart  = `<table:table-cell calcext:value-type="float" office:value-type="float" office:value="`
	dateCellStart   = `<table:table-cell table:style-name="ce3" calcext:value-type="date" office:value-type="date" office:date-value="`
	stringCellStart = `<table:table-cell calcext:value-type="string" office:value-type="string"><text:p>`
	cellMiddle      = `"><text:p>`
	cellEnd         = `</text:p></table:table-cell>`
	blankCell       = `<table:table-cell/>`

	isoDateLayout     = "2006-01-02T15:04:05"
	displayDateLayout = "2006-01-02 15:04:05"
)

// escapeText prepares s for a string cell. Quote, apostrophe, ampersand
// and angle brackets become entities; control characters and whitespace of
// any kind become a plain space.
func escapeText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&apos;")
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			if r < ' ' || unicode.IsSpace(r) || !isXMLChar(r) {
				sb.WriteByte(' ')
			} else {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// isXMLChar reports whether r may appear in an XML 1.0 document.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

func textCell(s string) string {
	return stringCellStart + escapeText(s) + cellEnd
}

func intCell(n int) string {
	v := strconv.Itoa(n)
	return floatCellStart + v + cellMiddle + v + cellEnd
}

// floatCell keeps full precision in the value and shows two decimals. NaN
// and infinities have no spreadsheet value and are written as text.
func floatCell(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return textCell(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return floatCellStart + strconv.FormatFloat(f, 'f', -1, 64) +
		cellMiddle + strconv.FormatFloat(f, 'f', 2, 64) + cellEnd
}

func dateCell(t time.Time) string {
	return dateCellStart + t.Format(isoDateLayout) + cellMiddle + t.Format(displayDateLayout) + cellEnd
}
