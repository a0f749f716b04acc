package svgslice

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/svgslice/utils"
	"github.com/srwiley/rasterx"
)

// DefaultPreviewSize is the edge length in pixels of a rendered thumbnail.
const DefaultPreviewSize = 200

// ContactSheetName is the file name of the image combining every thumbnail.
const ContactSheetName = "contact_sheet.png"

// PreviewName returns the thumbnail file name of the icon.
func (ic *Icon) PreviewName() string {
	return strings.TrimSuffix(ic.Name(), filepath.Ext(ic.Name())) + ".png"
}

// RenderIcon rasterizes the paths of the icon into a size x size image on a
// white background. The cell is scaled to fit and centered, keeping its
// aspect ratio.
func RenderIcon(ic *Icon, sheet StyleSheet, size int) *image.NRGBA {
	bg := imaging.New(size, size, color.White)
	w, h := ic.Cell.Width, ic.Cell.Height
	if w <= 0 || h <= 0 || len(ic.Paths) == 0 {
		return bg
	}

	// Retain the aspect ratio of the cell.
	scale := utils.Min(float64(size)/w, float64(size)/h)

	layer := image.NewNRGBA(image.Rect(0, 0, size, size))
	filler := rasterx.NewFiller(size, size, rasterx.NewScannerGV(size, size, layer, layer.Bounds()))
	fit := &fitAdder{
		Adder: filler,
		scale: scale,
		dx:    (float64(size)-w*scale)/2 - ic.Cell.Box.MinX*scale,
		dy:    (float64(size)-h*scale)/2 - ic.Cell.Box.MinY*scale,
	}
	for _, p := range ic.Paths {
		c, visible := sheet.Fill(p)
		if !visible {
			continue
		}
		// A malformed path is drawn up to the first bad command.
		path, _ := compilePath(p.Data())
		if len(path) == 0 {
			continue
		}
		filler.Clear()
		filler.SetWinding(true)
		path.AddTo(fit)
		filler.SetColor(c)
		filler.Draw()
	}
	return imaging.Overlay(bg, layer, image.Pt(0, 0), 1.0)
}

// ContactSheet pastes the thumbnails of the icons into a single image laid
// out like the source grid.
func ContactSheet(icons []*Icon, thumbs []image.Image, columns, rows, size int) *image.NRGBA {
	sheet := imaging.New(columns*size, rows*size, color.White)
	for i, ic := range icons {
		if i >= len(thumbs) {
			break
		}
		pos := image.Pt((ic.Cell.Col-1)*size, (ic.Cell.Row-1)*size)
		sheet = imaging.Paste(sheet, thumbs[i], pos)
	}
	return sheet
}

// RenderPreviews writes a PNG thumbnail for each icon into dst, followed by
// the contact sheet, and returns the written file paths.
func (s *Slicer) RenderPreviews(doc *Document, icons []*Icon, dst string) ([]string, error) {
	size := s.PreviewSize
	if size <= 0 {
		size = DefaultPreviewSize
	}
	sheet := ParseStyleSheet(doc.Style)

	var (
		files  = make([]string, 0, len(icons)+1)
		thumbs = make([]image.Image, 0, len(icons))
	)
	for _, ic := range icons {
		img := RenderIcon(ic, sheet, size)
		name := filepath.Join(dst, ic.PreviewName())
		if err := imaging.Save(img, name); err != nil {
			return files, fmt.Errorf("unable to save the preview %s: %w", name, err)
		}
		files = append(files, name)
		thumbs = append(thumbs, img)
	}

	name := filepath.Join(dst, ContactSheetName)
	if err := imaging.Save(ContactSheet(icons, thumbs, s.Columns, s.Rows, size), name); err != nil {
		return files, fmt.Errorf("unable to save the contact sheet: %w", err)
	}
	return append(files, name), nil
}
