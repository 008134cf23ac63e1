package reader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

// buildPDF writes a one-page PDF whose only font is Helvetica with every
// glyph 500 units wide, and returns its path. pageExtra is appended to the
// page dictionary.
func buildPDF(t *testing.T, pageExtra, content string) string {
	t.Helper()

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R" + pageExtra + " >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [" +
			strings.TrimSpace(strings.Repeat("500 ", 95)) + "] /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	path := filepath.Join(t.TempDir(), "test.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test PDF: %v", err)
	}
	return path
}

func joinText(line []model.Fragment) string {
	var sb strings.Builder
	for _, f := range line {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

func TestPDFEngine_Lines(t *testing.T) {
	path := buildPDF(t, "", "BT /F1 12 Tf 72 720 Td (Hello World) Tj ET")

	doc, err := NewPDFEngine().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if doc.NumPages() != 1 {
		t.Fatalf("Expected 1 page, got %d", doc.NumPages())
	}

	lines, err := doc.Lines(0)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}

	line := lines[0]
	if got := joinText(line); got != "Hello World" {
		t.Errorf("Expected %q, got %q", "Hello World", got)
	}

	first := line[0]
	if first.X != 72 {
		t.Errorf("Expected X 72, got %v", first.X)
	}
	if first.Y != 72 {
		t.Errorf("Expected Y 72 (flipped), got %v", first.Y)
	}
	if first.Width != 6 {
		t.Errorf("Expected width 6, got %v", first.Width)
	}
	if first.SpaceWidth != 6 {
		t.Errorf("Expected space width 6, got %v", first.SpaceWidth)
	}
	if first.FontSize != 12 {
		t.Errorf("Expected font size 12, got %v", first.FontSize)
	}
	if first.FontName != "Helvetica" {
		t.Errorf("Expected font Helvetica, got %q", first.FontName)
	}
	if first.Rotation != 0 {
		t.Errorf("Expected rotation 0, got %v", first.Rotation)
	}
}

func TestPDFEngine_TwoLines(t *testing.T) {
	path := buildPDF(t, "", "BT /F1 12 Tf 72 720 Td (Lower) Tj ET BT /F1 12 Tf 72 740 Td (Upper) Tj ET")

	doc, err := NewPDFEngine().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	lines, err := doc.Lines(0)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if got := joinText(lines[0]); got != "Upper" {
		t.Errorf("Expected top line %q, got %q", "Upper", got)
	}
	if got := joinText(lines[1]); got != "Lower" {
		t.Errorf("Expected bottom line %q, got %q", "Lower", got)
	}
}

func TestPDFEngine_Rotation(t *testing.T) {
	path := buildPDF(t, " /Rotate 90", "BT /F1 12 Tf 72 720 Td (A) Tj ET")

	doc, err := NewPDFEngine().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	lines, err := doc.Lines(0)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 1 || len(lines[0]) != 1 {
		t.Fatalf("Expected one fragment, got %v", lines)
	}
	if lines[0][0].Rotation != 90 {
		t.Errorf("Expected rotation 90, got %v", lines[0][0].Rotation)
	}
}

func TestPDFEngine_EmptyPage(t *testing.T) {
	path := buildPDF(t, "", "")

	doc, err := NewPDFEngine().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	lines, err := doc.Lines(0)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected no lines, got %d", len(lines))
	}
}

func TestPDFEngine_PageRange(t *testing.T) {
	path := buildPDF(t, "", "BT /F1 12 Tf 72 720 Td (A) Tj ET")

	doc, err := NewPDFEngine().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	for _, page := range []int{-1, 1} {
		if _, err := doc.Lines(page); !errors.Is(err, ErrPageRange) {
			t.Errorf("Lines(%d): expected ErrPageRange, got %v", page, err)
		}
	}
}

func TestPDFEngine_NotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("this is not a PDF"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewPDFEngine().Open(path); err == nil {
		t.Error("Expected error for non-PDF content")
	}
}

func TestPDFEngine_MissingFile(t *testing.T) {
	if _, err := NewPDFEngine().Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestPDFDocument_CloseTwice(t *testing.T) {
	path := buildPDF(t, "", "")

	doc, err := NewPDFEngine().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("First Close failed: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}

func TestBaseFontName(t *testing.T) {
	tests := map[string]string{
		"Helvetica":        "Helvetica",
		"ABCDEF+Helvetica": "Helvetica",
		"":                 "",
	}
	for in, want := range tests {
		if got := baseFontName(in); got != want {
			t.Errorf("baseFontName(%q) = %q, want %q", in, got, want)
		}
	}
}
