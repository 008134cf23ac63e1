package model

// Fragment is one positioned piece of text as delivered by an extraction
// engine, usually a single glyph.
//
// Coordinates are page points with the origin at the top-left corner; Y is
// the baseline.
type Fragment struct {
	Text       string
	X, Y       float64
	Width      float64
	SpaceWidth float64 // width of a space in the fragment's font and size
	FontName   string
	FontSize   float64
	Rotation   float64 // text direction in degrees
}

// EndX returns the right edge of the fragment.
func (f Fragment) EndX() float64 {
	return f.X + f.Width
}

// BBox returns the horizontal extent of the fragment as a zero-height box on
// its baseline. A negative width is folded so the box always has Left <= Right.
func (f Fragment) BBox() BBox {
	if f.Width < 0 {
		return BBox{X: f.X + f.Width, Y: f.Y, Width: -f.Width}
	}
	return BBox{X: f.X, Y: f.Y, Width: f.Width}
}
