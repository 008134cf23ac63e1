// Package reader turns input files into lines of positioned text fragments.
//
// Two engines are provided. [PDFEngine] reads the text layer of PDF files
// glyph by glyph. [ImageEngine] runs OCR over raster images (PNG, JPEG,
// TIFF, BMP and WebP) and needs a build with the "ocr" tag. [Auto] picks
// one of them by sniffing the file content:
//
//	doc, err := reader.NewAuto().Open("statement.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	for p := 0; p < doc.NumPages(); p++ {
//	    lines, err := doc.Lines(p)
//	    ...
//	}
//
// Coordinates are page points with the origin at the top-left corner.
package reader
