package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/esimov/svgslice"
	"github.com/esimov/svgslice/utils"
)

const HelpBanner = `
SVGSLICE

Slices an SVG sprite sheet into one SVG file per grid cell.
    Version: %s

`

// pipeName is the file name that indicates stdin is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", "40 Accounting SVG File.svg", "Source sprite sheet (- for stdin)")
	destination = flag.String("out", "extracted_icons", "Destination directory")
	columns     = flag.Int("cols", svgslice.DefaultColumns, "Number of grid columns")
	rows        = flag.Int("rows", svgslice.DefaultRows, "Number of grid rows")
	iconSize    = flag.Int("size", svgslice.DefaultIconSize, "Display width and height of the extracted icons")
	preview     = flag.Bool("preview", false, "Render PNG thumbnails and a contact sheet")
	previewSize = flag.Int("psize", svgslice.DefaultPreviewSize, "Thumbnail size in pixels")
	clean       = flag.Bool("clean", true, "Remove the destination directory of a previous run")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	slicer := &svgslice.Slicer{
		Columns:     *columns,
		Rows:        *rows,
		IconSize:    *iconSize,
		Preview:     *preview,
		PreviewSize: *previewSize,
	}

	op := &svgslice.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Clean:    *clean,
	}

	if err := slicer.Execute(op); err != nil {
		// the missing source has already been reported
		if errors.Is(err, svgslice.ErrSourceNotFound) {
			os.Exit(1)
		}
		log.Fatalf(
			utils.DecorateText("\nError slicing the sprite sheet: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}
}
