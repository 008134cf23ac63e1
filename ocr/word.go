package ocr

import "image"

// Word is one recognized word and its position in the image, in pixels.
type Word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64

	// Block, Paragraph and Line identify the text line the word belongs to,
	// as segmented by the engine.
	Block     int
	Paragraph int
	Line      int
}

// LineKey identifies the line of w within the page.
func (w Word) LineKey() [3]int {
	return [3]int{w.Block, w.Paragraph, w.Line}
}
