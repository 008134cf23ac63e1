package ods

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestEscapeText(t *testing.T) {
	tests := map[string]string{
		"plain":           "plain",
		`"q"`:             "&quot;q&quot;",
		"it's":            "it&apos;s",
		"a&b<c>d":         "a&amp;b&lt;c&gt;d",
		"tab\there":       "tab here",
		"line\r\nbreak":   "line  break",
		"bell\x07":        "bell ",
		"nbsp\u00a0x":     "nbsp x",
		"bad\ufffechar":   "bad char",
		"unicode ünïcödé": "unicode ünïcödé",
	}
	for in, want := range tests {
		if got := escapeText(in); got != want {
			t.Errorf("escapeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIntCell(t *testing.T) {
	want := floatCellStart + "42" + cellMiddle + "42" + cellEnd
	if got := intCell(42); got != want {
		t.Errorf("intCell(42) = %q, want %q", got, want)
	}
}

func TestFloatCell(t *testing.T) {
	got := floatCell(3.14159)
	if !strings.Contains(got, `office:value="3.14159"`) {
		t.Errorf("Expected full precision value in %q", got)
	}
	if !strings.Contains(got, "<text:p>3.14</text:p>") {
		t.Errorf("Expected two-decimal display in %q", got)
	}

	if got := floatCell(math.NaN()); !strings.HasPrefix(got, stringCellStart) {
		t.Errorf("Expected NaN as text, got %q", got)
	}
}

func TestDateCell(t *testing.T) {
	got := dateCell(time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC))
	want := dateCellStart + "1999-12-31T23:59:58" + cellMiddle + "1999-12-31 23:59:58" + cellEnd
	if got != want {
		t.Errorf("dateCell = %q, want %q", got, want)
	}
}

func TestCopyResource_SmallBuffer(t *testing.T) {
	var sb strings.Builder
	if err := copyResource(&sb, resourceMimetype, make([]byte, 3)); err != nil {
		t.Fatalf("copyResource failed: %v", err)
	}
	if sb.String() != mimeSpreadsheet {
		t.Errorf("Expected %q, got %q", mimeSpreadsheet, sb.String())
	}

	if err := copyResource(&sb, "missing.xml", make([]byte, 3)); err == nil {
		t.Error("Expected an error for a missing resource")
	}
}
