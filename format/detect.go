// Package format detects input document formats and names output formats.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported input or output format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// TIFF indicates a TIFF image.
	TIFF
	// BMP indicates a Windows bitmap.
	BMP
	// WebP indicates a WebP image.
	WebP
	// CSV indicates comma-separated values.
	CSV
	// ODS indicates an OpenDocument spreadsheet (.ods).
	ODS
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// HTML indicates an HTML document.
	HTML
	// Console indicates human-readable rows on standard output.
	Console
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	case WebP:
		return "WebP"
	case CSV:
		return "CSV"
	case ODS:
		return "ODS"
	case XLSX:
		return "XLSX"
	case HTML:
		return "HTML"
	case Console:
		return "Console"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tiff"
	case BMP:
		return ".bmp"
	case WebP:
		return ".webp"
	case CSV:
		return ".csv"
	case ODS:
		return ".ods"
	case XLSX:
		return ".xlsx"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// IsImage reports whether the format is a raster image read through OCR.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, TIFF, BMP, WebP:
		return true
	}
	return false
}

// IsInput reports whether documents of this format can be ripped.
func (f Format) IsInput() bool {
	return f == PDF || f.IsImage()
}

// IsOutput reports whether an export can be written in this format.
func (f Format) IsOutput() bool {
	switch f {
	case CSV, ODS, XLSX, HTML, Console:
		return true
	}
	return false
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	case ".webp":
		return WebP
	case ".csv":
		return CSV
	case ".ods":
		return ODS
	case ".xlsx":
		return XLSX
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// ParseOutput converts an output format name, as given on a command line,
// into a Format. Extensions with or without the dot are accepted.
func ParseOutput(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "console", "stdout", "-":
		return Console, nil
	}
	if !strings.HasPrefix(n, ".") {
		n = "." + n
	}
	if f := Detect(n); f.IsOutput() {
		return f, nil
	}
	return Unknown, fmt.Errorf("unsupported output format: %s (must be csv, ods, xlsx, html, or console)", name)
}

var (
	magicPDF  = []byte("%PDF")
	magicPNG  = []byte("\x89PNG\r\n\x1a\n")
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}
	magicTIFF = [][]byte{[]byte("II*\x00"), []byte("MM\x00*")}
	magicBMP  = []byte("BM")
	magicZIP  = []byte("PK\x03\x04")
)

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicPNG):
		return PNG
	case bytes.HasPrefix(data, magicJPEG):
		return JPEG
	case bytes.HasPrefix(data, magicTIFF[0]), bytes.HasPrefix(data, magicTIFF[1]):
		return TIFF
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WebP
	case len(data) >= 14 && bytes.HasPrefix(data, magicBMP):
		return BMP
	}
	return Unknown
}

// DetectFromReader inspects the content to determine format. ZIP archives
// are opened to tell spreadsheets apart.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, magicZIP) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// DetectFile identifies the file at path from its content, falling back to
// the extension when the content is not recognized.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}

	detected, err := DetectFromReader(f, info.Size())
	if err != nil {
		return Unknown, fmt.Errorf("detecting format of %s: %w", path, err)
	}
	if detected == Unknown {
		detected = Detect(path)
	}
	return detected, nil
}

// detectZIPFormat inspects a ZIP archive to determine if it's ODS or XLSX.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case f.Name == "mimetype":
			rc, err := f.Open()
			if err != nil {
				continue
			}
			data := make([]byte, 256)
			n, _ := io.ReadFull(rc, data)
			rc.Close()
			if strings.Contains(string(data[:n]), "application/vnd.oasis.opendocument.spreadsheet") {
				return ODS, nil
			}
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}

	return Unknown, nil
}
