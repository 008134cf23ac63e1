package layout

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

const (
	// SmoothTolerance is the largest baseline difference, in points, at
	// which a row is pulled onto the smoothed baseline of the row above it.
	SmoothTolerance = 2.0

	// NoSmooth marks a row that has not been smoothed yet.
	NoSmooth = -999999.0
)

// Row is one output row: the aggregate position and text of a group of
// fragments.
type Row struct {
	YStart   float64
	YSmooth  float64
	XStart   float64
	XEnd     float64
	FontSize float64
	Rotation int
	Content  string
}

// NewRow creates a row from a single fragment.
func NewRow(f model.Fragment) *Row {
	box := f.BBox()
	return &Row{
		YStart:   f.Y,
		YSmooth:  NoSmooth,
		XStart:   box.Left(),
		XEnd:     box.Right(),
		FontSize: f.FontSize,
		Rotation: roundRotation(f.Rotation),
		Content:  norm.NFC.String(f.Text),
	}
}

// NewRowFromGroup creates a row from a non-empty group of fragments. The
// position is the union of the fragments' extents, font size and rotation
// come from the first fragment, and the content is the concatenated text
// in NFC form. It returns nil for an empty group.
func NewRowFromGroup(group []model.Fragment) *Row {
	if len(group) == 0 {
		return nil
	}

	box := group[0].BBox()
	var sb strings.Builder
	for _, f := range group {
		box = box.Union(f.BBox())
		sb.WriteString(f.Text)
	}

	first := group[0]
	return &Row{
		YStart:   box.Top(),
		YSmooth:  NoSmooth,
		XStart:   box.Left(),
		XEnd:     box.Right(),
		FontSize: first.FontSize,
		Rotation: roundRotation(first.Rotation),
		Content:  norm.NFC.String(sb.String()),
	}
}

func roundRotation(deg float64) int {
	return int(math.Round(deg))
}

// Smooth assigns YSmooth. A row whose baseline lies less than
// SmoothTolerance below the smoothed baseline of prev shares that
// baseline; otherwise, or when prev is nil, YSmooth equals YStart.
func (r *Row) Smooth(prev *Row) {
	if prev != nil && r.YStart-prev.YSmooth < SmoothTolerance {
		r.YSmooth = prev.YSmooth
		return
	}
	r.YSmooth = r.YStart
}

// Compare orders rows by YSmooth, YStart, XStart, XEnd, FontSize, Rotation
// and finally Content. It returns -1, 0 or +1.
func Compare(a, b *Row) int {
	if c := compareFloat(a.YSmooth, b.YSmooth); c != 0 {
		return c
	}
	if c := compareFloat(a.YStart, b.YStart); c != 0 {
		return c
	}
	if c := compareFloat(a.XStart, b.XStart); c != 0 {
		return c
	}
	if c := compareFloat(a.XEnd, b.XEnd); c != 0 {
		return c
	}
	if c := compareFloat(a.FontSize, b.FontSize); c != 0 {
		return c
	}
	if a.Rotation != b.Rotation {
		if a.Rotation < b.Rotation {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Content, b.Content)
}

// Less reports whether a sorts before b.
func Less(a, b *Row) bool {
	return Compare(a, b) < 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
