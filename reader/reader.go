package reader

import (
	"errors"
	"fmt"

	"github.com/michaelaaronlevy/grid-ripper/format"
	"github.com/michaelaaronlevy/grid-ripper/layout"
	"github.com/michaelaaronlevy/grid-ripper/model"
)

var (
	// ErrUnsupportedFormat is returned when no engine can read a file.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrPageRange is returned when a page index is outside the document.
	ErrPageRange = errors.New("page out of range")
)

// Engine opens input files.
type Engine interface {
	Open(path string) (Document, error)
}

// Document is an opened input file.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// Lines returns the text of the zero-based page as lines of fragments,
	// top to bottom. Each line is ordered left to right and carries the
	// spaces the engine dropped.
	Lines(page int) ([][]model.Fragment, error)

	// Close releases the underlying file.
	Close() error
}

// Options configures the engines created by NewAuto.
type Options struct {
	Lines layout.LineConfig
	Image ImageOptions
}

// DefaultOptions returns the default engine configuration.
func DefaultOptions() Options {
	return Options{
		Lines: layout.DefaultLineConfig(),
		Image: DefaultImageOptions(),
	}
}

// Auto picks an engine by looking at the content of each file.
type Auto struct {
	PDF   Engine
	Image Engine
}

// NewAuto returns an Auto engine with default options.
func NewAuto() *Auto {
	return NewAutoWithOptions(DefaultOptions())
}

// NewAutoWithOptions returns an Auto engine with custom options.
func NewAutoWithOptions(opts Options) *Auto {
	return &Auto{
		PDF:   NewPDFEngineWithConfig(opts.Lines),
		Image: NewImageEngineWithOptions(opts.Image, opts.Lines),
	}
}

// Open detects the format of path and opens it with the matching engine.
func (a *Auto) Open(path string) (Document, error) {
	f, err := format.DetectFile(path)
	if err != nil {
		return nil, err
	}

	switch {
	case f == format.PDF && a.PDF != nil:
		return a.PDF.Open(path)
	case f.IsImage() && a.Image != nil:
		return a.Image.Open(path)
	}
	return nil, fmt.Errorf("%s: %w (%s)", path, ErrUnsupportedFormat, f)
}

func checkPage(page, count int) error {
	if page < 0 || page >= count {
		return fmt.Errorf("page %d of %d: %w", page+1, count, ErrPageRange)
	}
	return nil
}
