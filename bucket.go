package svgslice

import (
	"regexp"
	"strconv"
)

// coordPattern matches signed integers and decimals inside path data.
var coordPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// Anchor returns the position used to place a path on the grid: the first
// numeric token of its drawing commands as x and the second as y. y defaults
// to 0 when the data holds a single number. ok is false when no number can
// be extracted, in which case the path belongs to no cell.
func Anchor(d string) (x, y float64, ok bool) {
	if d == "" {
		return 0, 0, false
	}
	tokens := coordPattern.FindAllString(d, 2)
	if len(tokens) == 0 {
		return 0, 0, false
	}
	x, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, 0, false
	}
	if len(tokens) > 1 {
		if y, err = strconv.ParseFloat(tokens[1], 64); err != nil {
			return 0, 0, false
		}
	}
	return x, y, true
}

// anchored is a path with its precomputed anchor.
type anchored struct {
	path *Path
	x, y float64
	ok   bool
}

func anchorPaths(paths []*Path) []anchored {
	out := make([]anchored, len(paths))
	for i, p := range paths {
		x, y, ok := Anchor(p.Data())
		out[i] = anchored{path: p, x: x, y: y, ok: ok}
	}
	return out
}

// Bucket returns the paths whose anchor lies inside box, in their original order.
func Bucket(paths []*Path, box Box) []*Path {
	return bucket(anchorPaths(paths), box)
}

func bucket(paths []anchored, box Box) []*Path {
	var res []*Path
	for _, a := range paths {
		if a.ok && box.Contains(a.x, a.y) {
			res = append(res, a.path)
		}
	}
	return res
}
