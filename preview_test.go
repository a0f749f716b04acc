package svgslice

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func TestPreview_RenderIcon(t *testing.T) {
	assert := assert.New(t)

	doc, err := ReadDocument(sprite)
	assert.NoError(err)
	icons, _, err := NewSlicer().Icons(doc)
	assert.NoError(err)

	img := RenderIcon(icons[0], ParseStyleSheet(doc.Style), 100)
	assert.Equal(image.Rect(0, 0, 100, 100), img.Bounds())

	// inside the square drawn at 20,20 - 120,100
	assert.Equal(color.NRGBA{R: 0x2e, G: 0x31, B: 0x92, A: 0xff}, img.NRGBAAt(43, 48))
	// letterbox margin above the cell
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.NRGBAAt(2, 2))

	// stroke only path with fill:none leaves the thumbnail blank
	blank := RenderIcon(icons[9], ParseStyleSheet(doc.Style), 50)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, blank.NRGBAAt(x, y))
		}
	}
}

func TestPreview_ContactSheet(t *testing.T) {
	assert := assert.New(t)

	s := NewSlicer()
	s.Preview = true
	s.PreviewSize = 16

	dst := t.TempDir()
	res, err := s.Extract(sprite, dst)
	assert.NoError(err)
	assert.Len(res.Files, 40)
	assert.Len(res.Previews, 41)
	assert.Equal(filepath.Join(dst, ContactSheetName), res.Previews[40])
	assert.Equal(filepath.Join(dst, "icon_01_row1_col1.png"), res.Previews[0])
	assert.Len(listDir(t, dst), 81)

	sheet, err := imaging.Open(res.Previews[40])
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 8*16, 5*16), sheet.Bounds())

	thumb, err := imaging.Open(res.Previews[0])
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 16, 16), thumb.Bounds())
}

func TestPreview_InvalidSize(t *testing.T) {
	s := NewSlicer()
	s.Preview = true
	s.PreviewSize = 0

	_, err := s.Extract(sprite, t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidGrid)
}
