package svgslice

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
	xmlNS   = "http://www.w3.org/XML/1998/namespace"
)

// DefaultViewBox is used when the source document has no usable viewBox attribute.
var DefaultViewBox = ViewBox{X: 0, Y: 0, W: 1300, H: 625}

// ViewBox is the coordinate system declared by the root svg element.
type ViewBox struct {
	X, Y, W, H float64
}

// ParseViewBox parses a "min-x min-y width height" list. Values may be
// separated by whitespace or commas; anything after the fourth value is ignored.
func ParseViewBox(s string) (ViewBox, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) < 4 {
		return ViewBox{}, false
	}
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return ViewBox{}, false
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return ViewBox{}, false
	}
	return ViewBox{X: v[0], Y: v[1], W: v[2], H: v[3]}, true
}

// Path is a path element of the source document, kept in a form
// that allows it to be written back out unchanged.
type Path struct {
	Name xml.Name
	Attr []xml.Attr
	// Inner holds the child tokens of the element, if any.
	Inner []xml.Token
	// Tail is the text following the element up to the next tag.
	Tail string
}

// Get returns the value of the unqualified attribute with the given name.
func (p *Path) Get(name string) string {
	for _, a := range p.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Data returns the drawing-command string of the path.
func (p *Path) Data() string {
	return p.Get("d")
}

// Document is the parsed sprite sheet.
type Document struct {
	ViewBox ViewBox
	// HasViewBox reports whether ViewBox was read from the document
	// rather than taken from DefaultViewBox.
	HasViewBox bool
	// Style is the text content of the first style element.
	Style string
	Paths []*Path
}

// ErrNoRoot is returned when the source contains no root element.
var ErrNoRoot = errors.New("svgslice: document has no root element")

// ReadDocument opens and decodes the named SVG file.
func ReadDocument(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads an SVG document from r. The root viewBox, the first style
// element and every path element, at any depth, are collected.
func Decode(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &Document{ViewBox: DefaultViewBox}

	var (
		depth    int
		seenRoot bool

		// path capture
		cur       *Path
		pathDepth int
		tail      *Path

		// style capture
		inStyle    bool
		styleDone  bool
		styleDepth int
		style      strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("svgslice: decoding source: %w", err)
		}

		if cur != nil {
			switch tok.(type) {
			case xml.StartElement:
				depth++
			case xml.EndElement:
				if depth == pathDepth {
					doc.Paths = append(doc.Paths, cur)
					tail, cur = cur, nil
					depth--
					continue
				}
				depth--
			}
			cur.Inner = append(cur.Inner, xml.CopyToken(tok))
			continue
		}

		switch t := tok.(type) {
		case xml.StartElement:
			tail = nil
			depth++
			if inStyle {
				styleDone = true
			}
			if !seenRoot {
				seenRoot = true
				for _, a := range t.Attr {
					if a.Name.Space == "" && a.Name.Local == "viewBox" {
						if vb, ok := ParseViewBox(a.Value); ok {
							doc.ViewBox, doc.HasViewBox = vb, true
						}
					}
				}
			}
			switch {
			case isSVGElement(t.Name, "path"):
				cur = &Path{Name: t.Name, Attr: normalizeAttrs(t.Attr)}
				pathDepth = depth
			case isSVGElement(t.Name, "style") && !inStyle && !styleDone:
				inStyle = true
				styleDepth = depth
			}
		case xml.EndElement:
			tail = nil
			if inStyle && depth == styleDepth {
				inStyle = false
				styleDone = true
			}
			depth--
		case xml.CharData:
			if inStyle && !styleDone {
				style.Write(t)
			}
			if tail != nil {
				tail.Tail += string(t)
			}
		}
	}

	if !seenRoot {
		return nil, ErrNoRoot
	}
	doc.Style = style.String()

	return doc, nil
}

// isSVGElement matches elements in the SVG namespace or without namespace.
func isSVGElement(name xml.Name, local string) bool {
	return name.Local == local && (name.Space == svgNS || name.Space == "")
}

// normalizeAttrs copies the attributes, folding literal whitespace
// characters in attribute values into spaces as XML processors do.
func normalizeAttrs(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = xml.Attr{Name: a.Name, Value: attrSpace.Replace(a.Value)}
	}
	return out
}

var attrSpace = strings.NewReplacer("\n", " ", "\t", " ", "\r", " ")
