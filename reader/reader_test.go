package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAuto_DispatchesPDF(t *testing.T) {
	path := buildPDF(t, "", "BT /F1 12 Tf 72 720 Td (A) Tj ET")

	doc, err := NewAuto().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if _, ok := doc.(*pdfDocument); !ok {
		t.Errorf("Expected a PDF document, got %T", doc)
	}
}

func TestAuto_DispatchesImage(t *testing.T) {
	path := writePNG(t, 4, 4)

	// The extension says PDF, the content says PNG.
	renamed := filepath.Join(filepath.Dir(path), "scan.pdf")
	if err := os.Rename(path, renamed); err != nil {
		t.Fatal(err)
	}

	doc, err := NewAuto().Open(renamed)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if _, ok := doc.(*imageDocument); !ok {
		t.Errorf("Expected an image document, got %T", doc)
	}
}

func TestAuto_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewAuto().Open(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestAuto_MissingFile(t *testing.T) {
	if _, err := NewAuto().Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestAuto_NoImageEngine(t *testing.T) {
	path := writePNG(t, 4, 4)

	a := &Auto{PDF: NewPDFEngine()}
	if _, err := a.Open(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}
