//go:build !ocr

// Package ocr recognizes words and their positions in raster images.
//
// Without the "ocr" build tag the package compiles without cgo and every
// recognition call fails with ErrOCRNotEnabled, so image inputs are
// reported as per-file errors instead of breaking the build. Build with
// -tags ocr, and Tesseract installed, to read scanned pages.
package ocr

import "errors"

// ErrOCRNotEnabled reports a build without the "ocr" tag.
var ErrOCRNotEnabled = errors.New("image input needs OCR support; rebuild with -tags ocr")

// Client stands in for the Tesseract client. Its zero value and nil are
// both usable.
type Client struct{}

// New always fails with ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

func (c *Client) Close() error { return nil }

func (c *Client) SetLanguage(langs ...string) error { return ErrOCRNotEnabled }

func (c *Client) RecognizeWords(imageData []byte) ([]Word, error) {
	return nil, ErrOCRNotEnabled
}
