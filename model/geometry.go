package model

import "math"

// BBox is the box covered by one or more fragments, in page points with Y
// growing towards the bottom of the page. For text the box is usually flat:
// Y is the baseline and Height is zero.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox creates a box from its top-left corner and extent.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Top() float64    { return b.Y }
func (b BBox) Bottom() float64 { return b.Y + b.Height }

// Union returns the smallest box covering both b and other. Rows use it to
// span every fragment of a phrase, so the top is the highest baseline of
// the group.
func (b BBox) Union(other BBox) BBox {
	left := math.Min(b.Left(), other.Left())
	top := math.Min(b.Top(), other.Top())
	return BBox{
		X:      left,
		Y:      top,
		Width:  math.Max(b.Right(), other.Right()) - left,
		Height: math.Max(b.Bottom(), other.Bottom()) - top,
	}
}
