package text

import (
	"fmt"
	"strings"
)

// Mode selects the granularity at which a line of fragments is split into
// rows.
type Mode int

const (
	// Phrases keeps runs of closely spaced fragments together, spaces
	// included.
	Phrases Mode = iota
	// Words splits at every blank fragment as well as at wide gaps.
	Words
	// Characters emits every fragment on its own.
	Characters
)

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	switch m {
	case Phrases:
		return "phrases"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode. Singular names and the first
// letter are accepted as well.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phrases", "phrase", "p", "":
		return Phrases, nil
	case "words", "word", "w":
		return Words, nil
	case "characters", "character", "chars", "c":
		return Characters, nil
	default:
		return Phrases, fmt.Errorf("invalid mode: %s (must be phrases, words, or characters)", s)
	}
}
