package ods

import (
	"embed"
	"fmt"
	"io"
)

//go:embed resources
var resources embed.FS

// copyBufferSize is the size of the buffer static parts are streamed
// through.
const copyBufferSize = 256

// staticPart is a fixed file of the package copied verbatim from resources.
type staticPart struct {
	name     string
	resource string
}

var configDirs = []string{
	"Configurations2/accelerator/",
	"Configurations2/floater/",
	"Configurations2/images/",
	"Configurations2/menubar/",
	"Configurations2/popupmenu/",
	"Configurations2/progressbar/",
	"Configurations2/statusbar/",
	"Configurations2/toolbar/",
	"Configurations2/toolpanel/",
}

var staticParts = []staticPart{
	{"META-INF/manifest.xml", "manifest.xml"},
	{"manifest.rdf", "manifest.rdf"},
	{"meta.xml", "meta.xml"},
	{"settings.xml", "settings.xml"},
	{"styles.xml", "styles.xml"},
	{"Thumbnails/thumbnail.png", "thumbnail.png"},
}

const (
	resourceMimetype   = "mimetype"
	resourceHeading    = "content-heading.xml"
	resourceSheetStart = "content-newsheet.xml"
)

// copyResource streams the named resource to dst through buf.
func copyResource(dst io.Writer, name string, buf []byte) error {
	f, err := resources.Open("resources/" + name)
	if err != nil {
		return fmt.Errorf("opening resource %s: %w", name, err)
	}
	defer f.Close()

	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return fmt.Errorf("writing resource %s: %w", name, werr)
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("reading resource %s: %w", name, rerr)
		}
	}
}
