package svgslice

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrSourceNotFound is returned when the sprite sheet does not exist.
var ErrSourceNotFound = errors.New("svgslice: source file not found")

// Default grid of the sprite sheet.
const (
	DefaultColumns = 8
	DefaultRows    = 5
)

// Slicer options
type Slicer struct {
	Columns     int
	Rows        int
	IconSize    int
	PreviewSize int
	Preview     bool
	// Progress, if set, is called after each icon has been written.
	Progress func(ic *Icon)
}

// Result summarizes an extraction.
type Result struct {
	Grid *Grid
	// Files holds the written icon paths in row-major order.
	Files []string
	// Previews holds the written thumbnails, followed by the contact sheet.
	Previews   []string
	Paths      int
	Assigned   int
	Unassigned int
}

// NewSlicer returns a Slicer with the default 8x5 grid.
func NewSlicer() *Slicer {
	return &Slicer{
		Columns:     DefaultColumns,
		Rows:        DefaultRows,
		IconSize:    DefaultIconSize,
		PreviewSize: DefaultPreviewSize,
	}
}

// Extract slices the sprite sheet at src into columns x rows icon files written to dst.
func Extract(src, dst string, columns, rows int) (*Result, error) {
	s := NewSlicer()
	s.Columns, s.Rows = columns, rows
	return s.Extract(src, dst)
}

func (s *Slicer) validate() error {
	if s.Columns <= 0 || s.Rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, s.Columns, s.Rows)
	}
	if s.IconSize <= 0 {
		return fmt.Errorf("%w: icon size %d", ErrInvalidGrid, s.IconSize)
	}
	if s.Preview && s.PreviewSize <= 0 {
		return fmt.Errorf("%w: preview size %d", ErrInvalidGrid, s.PreviewSize)
	}
	return nil
}

// Extract reads the sprite sheet at src and writes one SVG file per grid
// cell into dst, creating dst when missing. Nothing is written when src
// does not exist.
func (s *Slicer) Extract(src, dst string) (*Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return nil, err
	}
	doc, err := ReadDocument(src)
	if err != nil {
		return nil, err
	}
	return s.ExtractDocument(doc, dst)
}

// Icons partitions the document paths over the grid and returns
// the icons in row-major order. No file is touched.
func (s *Slicer) Icons(doc *Document) ([]*Icon, *Grid, error) {
	if err := s.validate(); err != nil {
		return nil, nil, err
	}
	grid, err := NewGrid(doc.ViewBox, s.Columns, s.Rows)
	if err != nil {
		return nil, nil, err
	}

	paths := anchorPaths(doc.Paths)
	icons := make([]*Icon, 0, grid.Len())
	for _, cell := range grid.Cells() {
		icons = append(icons, &Icon{
			Cell:  cell,
			Paths: bucket(paths, cell.Box),
			Style: doc.Style,
			Size:  s.IconSize,
		})
	}
	return icons, grid, nil
}

// ExtractDocument writes the icons of an already decoded document into dst.
func (s *Slicer) ExtractDocument(doc *Document, dst string) (*Result, error) {
	icons, grid, err := s.Icons(doc)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, fmt.Errorf("unable to create the output directory: %w", err)
	}

	res := &Result{
		Grid:  grid,
		Files: make([]string, 0, len(icons)),
		Paths: len(doc.Paths),
	}
	for _, ic := range icons {
		name, err := ic.Save(dst)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, name)
		res.Assigned += len(ic.Paths)

		if s.Progress != nil {
			s.Progress(ic)
		}
	}
	res.Unassigned = res.Paths - res.Assigned

	if s.Preview {
		previews, err := s.RenderPreviews(doc, icons, dst)
		res.Previews = previews
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
