package reader

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	"image/png"
	"os"
	"sort"

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/michaelaaronlevy/grid-ripper/layout"
	"github.com/michaelaaronlevy/grid-ripper/model"
	"github.com/michaelaaronlevy/grid-ripper/ocr"
)

// ocrSpaceRatio is the assumed space width of recognized text as a fraction
// of the word height.
const ocrSpaceRatio = 0.5

// ocrFontName is reported as the font of recognized words.
const ocrFontName = "OCR"

// ImageOptions configures OCR of raster images.
type ImageOptions struct {
	// Languages passed to the OCR engine (default: "eng").
	Languages []string

	// DPI is the scan resolution used to convert pixels to points
	// (default: 300).
	DPI float64

	// MinWidth is the width in pixels below which images are upscaled
	// before recognition (default: 1600). Zero disables upscaling.
	MinWidth int
}

// DefaultImageOptions returns the default OCR configuration.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Languages: []string{"eng"},
		DPI:       300,
		MinWidth:  1600,
	}
}

// ImageEngine recognizes the text of raster images. Each image is a
// one-page document.
type ImageEngine struct {
	opts    ImageOptions
	grouper *layout.LineGrouper
}

// NewImageEngine creates an image engine with default options.
func NewImageEngine() *ImageEngine {
	return NewImageEngineWithOptions(DefaultImageOptions(), layout.DefaultLineConfig())
}

// NewImageEngineWithOptions creates an image engine with custom options.
func NewImageEngineWithOptions(opts ImageOptions, lines layout.LineConfig) *ImageEngine {
	if opts.DPI <= 0 {
		opts.DPI = DefaultImageOptions().DPI
	}
	if opts.MinWidth < 0 {
		opts.MinWidth = 0
	}
	return &ImageEngine{opts: opts, grouper: layout.NewLineGrouperWithConfig(lines)}
}

// Open decodes the image at path.
func (e *ImageEngine) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	img, name, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &imageDocument{img: img, kind: name, engine: e}, nil
}

type imageDocument struct {
	img    image.Image
	kind   string
	engine *ImageEngine
}

func (d *imageDocument) NumPages() int {
	return 1
}

func (d *imageDocument) Close() error {
	d.img = nil
	return nil
}

func (d *imageDocument) Lines(page int) ([][]model.Fragment, error) {
	if err := checkPage(page, 1); err != nil {
		return nil, err
	}
	if d.img == nil {
		return nil, fmt.Errorf("%s image is closed", d.kind)
	}

	img, scale := upscale(d.img, d.engine.opts.MinWidth)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image for OCR: %w", err)
	}

	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if len(d.engine.opts.Languages) > 0 {
		if err := client.SetLanguage(d.engine.opts.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}

	words, err := client.RecognizeWords(buf.Bytes())
	if err != nil {
		return nil, err
	}

	pointsPerPixel := 72 / d.engine.opts.DPI / scale
	lines := wordLines(words, pointsPerPixel)
	for i := range lines {
		lines[i] = d.engine.grouper.InsertSpaces(lines[i])
	}
	return lines, nil
}

// upscale enlarges img to minWidth pixels wide when it is narrower, and
// returns the factor applied.
func upscale(img image.Image, minWidth int) (image.Image, float64) {
	b := img.Bounds()
	if minWidth <= 0 || b.Dx() <= 0 || b.Dx() >= minWidth {
		return img, 1
	}

	factor := float64(minWidth) / float64(b.Dx())
	height := int(float64(b.Dy())*factor + 0.5)
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, minWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst, factor
}

// wordLines groups recognized words into lines in the order the engine
// reported them, and converts them to fragments in points. The baseline of
// a word is taken to be the bottom of its box.
func wordLines(words []ocr.Word, pointsPerPixel float64) [][]model.Fragment {
	var lines [][]model.Fragment
	index := make(map[[3]int]int)

	for _, w := range words {
		height := float64(w.Box.Dy()) * pointsPerPixel
		frag := model.Fragment{
			Text:       w.Text,
			X:          float64(w.Box.Min.X) * pointsPerPixel,
			Y:          float64(w.Box.Max.Y) * pointsPerPixel,
			Width:      float64(w.Box.Dx()) * pointsPerPixel,
			SpaceWidth: height * ocrSpaceRatio,
			FontName:   ocrFontName,
			FontSize:   height,
		}

		key := w.LineKey()
		i, ok := index[key]
		if !ok {
			i = len(lines)
			index[key] = i
			lines = append(lines, nil)
		}
		lines[i] = append(lines[i], frag)
	}

	for i := range lines {
		sortLine(lines[i])
	}
	return lines
}

func sortLine(line []model.Fragment) {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})
}
