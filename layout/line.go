package layout

import (
	"sort"

	"github.com/michaelaaronlevy/grid-ripper/model"
	"github.com/michaelaaronlevy/grid-ripper/text"
)

// LineConfig holds configuration for line grouping
type LineConfig struct {
	// LineHeightTolerance is the Y-distance tolerance for grouping fragments
	// into lines, as a fraction of font size (default: 0.5)
	LineHeightTolerance float64

	// MinTolerance is used when fragments carry no font size (default: 1 point)
	MinTolerance float64

	// SpaceThreshold is the smallest gap, as a fraction of the space width,
	// at which a missing space is restored (default: 0.5)
	SpaceThreshold float64
}

// DefaultLineConfig returns the default line grouping configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineHeightTolerance: 0.5,
		MinTolerance:        1.0,
		SpaceThreshold:      0.5,
	}
}

// LineGrouper orders the fragments of a page into lines of text
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{config: DefaultLineConfig()}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	return &LineGrouper{config: config}
}

// GroupLines groups fragments into lines using the default configuration.
func GroupLines(fragments []model.Fragment) [][]model.Fragment {
	return NewLineGrouper().Group(fragments)
}

// Group sorts fragments top to bottom, splits them into lines wherever the
// baseline moves by more than the tolerance, and orders each line left to
// right. The input slice is not modified.
func (g *LineGrouper) Group(fragments []model.Fragment) [][]model.Fragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	var lines [][]model.Fragment
	var current []model.Fragment
	var sumY float64

	for _, frag := range sorted {
		if len(current) > 0 {
			avgY := sumY / float64(len(current))
			if absFloat64(frag.Y-avgY) > g.tolerance(frag) {
				lines = append(lines, sortByX(current))
				current = nil
				sumY = 0
			}
		}
		current = append(current, frag)
		sumY += frag.Y
	}
	if len(current) > 0 {
		lines = append(lines, sortByX(current))
	}

	return lines
}

func (g *LineGrouper) tolerance(frag model.Fragment) float64 {
	tol := frag.FontSize * g.config.LineHeightTolerance
	if tol < g.config.MinTolerance {
		return g.config.MinTolerance
	}
	return tol
}

func sortByX(line []model.Fragment) []model.Fragment {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})
	return line
}

// InsertSpaces restores the space fragments an engine dropped between
// glyphs, using the default threshold.
func InsertSpaces(line []model.Fragment) []model.Fragment {
	return NewLineGrouper().InsertSpaces(line)
}

// InsertSpaces returns line with a synthetic " " fragment wherever two
// non-blank neighbours are separated by at least SpaceThreshold space
// widths but close enough to stay in one phrase. The synthetic fragment
// fills the gap exactly, so clustering sees it as touching both neighbours.
func (g *LineGrouper) InsertSpaces(line []model.Fragment) []model.Fragment {
	if len(line) < 2 {
		return line
	}

	spaceWidth := line[0].SpaceWidth
	minGap := spaceWidth * g.config.SpaceThreshold
	maxGap := spaceWidth * text.MaxGapFactor

	out := make([]model.Fragment, 0, len(line)+len(line)/4)
	out = append(out, line[0])
	for i := 1; i < len(line); i++ {
		prev, next := line[i-1], line[i]
		gap := text.Gap(prev, next)
		if spaceWidth > 0 && gap >= minGap && gap <= maxGap &&
			!endsBlank(prev.Text) && !startsBlank(next.Text) {
			out = append(out, model.Fragment{
				Text:       " ",
				X:          prev.EndX(),
				Y:          prev.Y,
				Width:      gap,
				SpaceWidth: prev.SpaceWidth,
				FontName:   prev.FontName,
				FontSize:   prev.FontSize,
				Rotation:   prev.Rotation,
			})
		}
		out = append(out, next)
	}
	return out
}

func endsBlank(s string) bool {
	if s == "" {
		return true
	}
	r := []rune(s)
	return text.IsBlank(string(r[len(r)-1]))
}

func startsBlank(s string) bool {
	for _, r := range s {
		return text.IsBlank(string(r))
	}
	return true
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
