package text

import (
	"strings"
	"unicode"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

// MaxGapFactor is the widest gap, in space widths, that still joins two
// fragments.
const MaxGapFactor = 2.0

// Cluster splits one line of fragments into groups according to mode. Each
// group becomes one output row. Fragments must be in reading order.
//
// The split decision is purely spatial: the gap between consecutive
// fragments, next.X - (prev.X + prev.Width), must lie within
// [-spaceWidth, 2*spaceWidth], where spaceWidth belongs to the first
// fragment of the line.
func Cluster(line []model.Fragment, mode Mode) [][]model.Fragment {
	if len(line) == 0 {
		return nil
	}

	switch mode {
	case Characters:
		return clusterCharacters(line)
	case Words:
		return clusterWords(line)
	default:
		return clusterPhrases(line)
	}
}

func clusterCharacters(line []model.Fragment) [][]model.Fragment {
	groups := make([][]model.Fragment, len(line))
	for i := range line {
		groups[i] = line[i : i+1 : i+1]
	}
	return groups
}

func clusterPhrases(line []model.Fragment) [][]model.Fragment {
	spaceWidth := line[0].SpaceWidth

	var groups [][]model.Fragment
	current := []model.Fragment{line[0]}
	for i := 1; i < len(line); i++ {
		if splitsAt(line[i-1], line[i], spaceWidth) {
			groups = appendGroup(groups, current)
			current = nil
		}
		current = append(current, line[i])
	}
	return appendGroup(groups, current)
}

func clusterWords(line []model.Fragment) [][]model.Fragment {
	spaceWidth := line[0].SpaceWidth

	var groups [][]model.Fragment
	var current []model.Fragment
	for i, frag := range line {
		// Only a wholly blank fragment separates words. A fragment such as
		// " a" from an engine that emits text runs stays part of a word.
		if IsBlank(frag.Text) {
			groups = appendGroup(groups, current)
			current = nil
			continue
		}
		if len(current) > 0 && splitsAt(line[i-1], frag, spaceWidth) {
			groups = appendGroup(groups, current)
			current = nil
		}
		current = append(current, frag)
	}
	return appendGroup(groups, current)
}

// appendGroup adds group unless it is empty or carries only blank text.
func appendGroup(groups [][]model.Fragment, group []model.Fragment) [][]model.Fragment {
	if len(group) == 0 {
		return groups
	}
	var sb strings.Builder
	for _, f := range group {
		sb.WriteString(f.Text)
	}
	if IsBlank(sb.String()) {
		return groups
	}
	return append(groups, group)
}

// Gap returns the horizontal distance from the end of prev to the start of
// next. Negative values mean the fragments overlap.
func Gap(prev, next model.Fragment) float64 {
	return next.X - (prev.X + prev.Width)
}

func splitsAt(prev, next model.Fragment, spaceWidth float64) bool {
	gap := Gap(prev, next)
	return gap < -spaceWidth || gap > MaxGapFactor*spaceWidth
}

// IsBlank reports whether s consists only of whitespace and control
// characters. The empty string is blank.
func IsBlank(s string) bool {
	for _, r := range s {
		if r >= ' ' && !unicode.IsSpace(r) && !unicode.IsControl(r) {
			return false
		}
	}
	return true
}
