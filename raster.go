package svgslice

import (
	"github.com/esimov/svgslice/utils"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// compilePath converts the drawing commands of d into a rasterx path.
// On malformed data the commands read so far are returned with the error.
func compilePath(d string) (rasterx.Path, error) {
	cursor := &oksvg.PathCursor{}
	err := cursor.CompilePath(d)
	path := make(rasterx.Path, len(cursor.Path))
	copy(path, cursor.Path)

	return path, err
}

// fitAdder maps path coordinates into the pixel space of the thumbnail
// before handing them to the wrapped adder.
type fitAdder struct {
	rasterx.Adder
	scale  float64
	dx, dy float64
}

// maxCoord keeps scaled coordinates inside the 26.6 fixed point range.
const maxCoord = 1 << 24

func (f *fitAdder) pt(p fixed.Point26_6) fixed.Point26_6 {
	x := utils.Clamp(float64(p.X)/64*f.scale+f.dx, -maxCoord, maxCoord)
	y := utils.Clamp(float64(p.Y)/64*f.scale+f.dy, -maxCoord, maxCoord)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (f *fitAdder) Start(a fixed.Point26_6) {
	f.Adder.Start(f.pt(a))
}

func (f *fitAdder) Line(b fixed.Point26_6) {
	f.Adder.Line(f.pt(b))
}

func (f *fitAdder) QuadBezier(b, c fixed.Point26_6) {
	f.Adder.QuadBezier(f.pt(b), f.pt(c))
}

func (f *fitAdder) CubeBezier(b, c, d fixed.Point26_6) {
	f.Adder.CubeBezier(f.pt(b), f.pt(c), f.pt(d))
}
