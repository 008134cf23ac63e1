package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/michaelaaronlevy/grid-ripper/layout"
	"github.com/michaelaaronlevy/grid-ripper/model"
)

const (
	// defaultSpaceRatio is the space width, as a fraction of the font size,
	// used when a font does not declare the width of its space glyph.
	defaultSpaceRatio = 0.25

	// defaultPageTop is the top of a US Letter media box.
	defaultPageTop = 792.0

	// maxInheritDepth bounds the walk up the page tree.
	maxInheritDepth = 32
)

// PDFEngine reads the text layer of PDF files.
type PDFEngine struct {
	grouper *layout.LineGrouper
}

// NewPDFEngine creates a PDF engine with the default line configuration.
func NewPDFEngine() *PDFEngine {
	return NewPDFEngineWithConfig(layout.DefaultLineConfig())
}

// NewPDFEngineWithConfig creates a PDF engine with a custom line
// configuration.
func NewPDFEngineWithConfig(config layout.LineConfig) *PDFEngine {
	return &PDFEngine{grouper: layout.NewLineGrouperWithConfig(config)}
}

// Open opens the PDF file at path.
func (e *PDFEngine) Open(path string) (doc Document, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			file.Close()
			doc, err = nil, fmt.Errorf("malformed PDF %s: %v", path, r)
		}
	}()

	r, err := pdf.NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	return &pdfDocument{
		file:    file,
		reader:  r,
		pages:   r.NumPage(),
		grouper: e.grouper,
	}, nil
}

type pdfDocument struct {
	file    *os.File
	reader  *pdf.Reader
	pages   int
	grouper *layout.LineGrouper
}

func (d *pdfDocument) NumPages() int {
	return d.pages
}

func (d *pdfDocument) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

func (d *pdfDocument) Lines(page int) (lines [][]model.Fragment, err error) {
	if err := checkPage(page, d.pages); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("page %d: malformed content: %v", page+1, r)
		}
	}()

	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", page+1)
	}

	lines = d.grouper.Group(pageFragments(p))
	for i := range lines {
		lines[i] = d.grouper.InsertSpaces(lines[i])
	}
	return lines, nil
}

// pageFragments converts the glyphs of p into fragments in top-down page
// coordinates.
func pageFragments(p pdf.Page) []model.Fragment {
	top := mediaTop(p.V)
	rotation := float64(inherited(p.V, "Rotate").Int64())
	spaces := spaceWidths(p)

	content := p.Content()
	frags := make([]model.Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		spaceWidth := spaces[t.Font] * t.FontSize
		if spaceWidth <= 0 {
			spaceWidth = t.FontSize * defaultSpaceRatio
		}
		frags = append(frags, model.Fragment{
			Text:       t.S,
			X:          t.X,
			Y:          top - t.Y,
			Width:      t.W,
			SpaceWidth: spaceWidth,
			FontName:   t.Font,
			FontSize:   t.FontSize,
			Rotation:   rotation,
		})
	}
	return frags
}

// spaceWidths maps base font names to the width of their space glyph in
// text space units (1/1000 of the font size is 0.001).
func spaceWidths(p pdf.Page) map[string]float64 {
	widths := make(map[string]float64)
	for _, name := range p.Fonts() {
		font := p.Font(name)
		w := font.Width(' ')
		if w <= 0 {
			continue
		}
		widths[baseFontName(font.BaseFont())] = w / 1000
	}
	return widths
}

// baseFontName strips the subset tag ("ABCDEF+") from a font name.
func baseFontName(name string) string {
	if i := strings.Index(name, "+"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// mediaTop returns the upper edge of the page's media box.
func mediaTop(page pdf.Value) float64 {
	box := inherited(page, "MediaBox")
	if box.Len() != 4 {
		return defaultPageTop
	}
	top := box.Index(3).Float64()
	if bottom := box.Index(1).Float64(); bottom > top {
		top = bottom
	}
	return top
}

// inherited looks key up on the page and then on its ancestors.
func inherited(page pdf.Value, key string) pdf.Value {
	v := page
	for i := 0; i < maxInheritDepth && !v.IsNull(); i++ {
		if value := v.Key(key); !value.IsNull() {
			return value
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}
