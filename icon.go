package svgslice

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/esimov/svgslice/utils"
)

// DefaultIconSize is the declared display width and height of an extracted icon.
const DefaultIconSize = 200

// Icon is the SVG document generated for a single grid cell.
type Icon struct {
	Cell  Cell
	Paths []*Path
	Style string
	Size  int
}

// Name returns the file name of the icon, e.g. icon_01_row1_col1.svg.
func (ic *Icon) Name() string {
	return fmt.Sprintf("icon_%02d_row%d_col%d.svg", ic.Cell.Index, ic.Cell.Row, ic.Cell.Col)
}

// WriteTo writes the icon document to w.
func (ic *Icon) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: bufio.NewWriter(w)}

	size := ic.Size
	if size <= 0 {
		size = DefaultIconSize
	}
	fmt.Fprintf(cw, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"+
		"<svg version=\"1.1\" xmlns=\"%s\" xmlns:xlink=\"%s\" \n"+
		"     viewBox=\"%s %s %s %s\" \n"+
		"     width=\"%d\" height=\"%d\">\n",
		svgNS, xlinkNS,
		utils.FormatFloat(ic.Cell.Box.MinX), utils.FormatFloat(ic.Cell.Box.MinY),
		utils.FormatFloat(ic.Cell.Width), utils.FormatFloat(ic.Cell.Height),
		size, size,
	)
	fmt.Fprintf(cw, "<style type=\"text/css\">\n%s\n</style>\n", styleText(ic.Style))

	for _, p := range ic.Paths {
		io.WriteString(cw, "    ")
		writePath(cw, p)
		io.WriteString(cw, "\n")
	}
	io.WriteString(cw, "</svg>")

	if err := cw.w.Flush(); err != nil && cw.err == nil {
		cw.err = err
	}
	return cw.n, cw.err
}

// Save writes the icon into dir under its Name and returns the file path.
func (ic *Icon) Save(dir string) (string, error) {
	name := filepath.Join(dir, ic.Name())
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("unable to create the icon file: %w", err)
	}
	if _, err := ic.WriteTo(f); err != nil {
		f.Close()
		// remove the partially written icon
		os.Remove(name)
		return "", fmt.Errorf("unable to write the icon file %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close the icon file %s: %w", name, err)
	}
	return name, nil
}

// styleText returns the style content as it is embedded in the output.
// Text which would break the markup is wrapped in a CDATA section.
func styleText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\r", "&#13;", "\n", "&#10;", "\t", "&#09;",
	)
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// namespaces assigns prefixes to the namespaces used by a serialized element.
type namespaces struct {
	prefix map[string]string
	next   int
}

func (ns *namespaces) add(space string) {
	if space == "" || space == xmlNS {
		return
	}
	if _, ok := ns.prefix[space]; ok {
		return
	}
	switch space {
	case svgNS:
		ns.prefix[space] = ""
	case xlinkNS:
		ns.prefix[space] = "xlink"
	default:
		ns.prefix[space] = fmt.Sprintf("ns%d", ns.next)
		ns.next++
	}
}

func (ns *namespaces) qualify(name xml.Name) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == xmlNS:
		return "xml:" + name.Local
	}
	if p := ns.prefix[name.Space]; p != "" {
		return p + ":" + name.Local
	}
	return name.Local
}

// isNSDecl reports whether the attribute is a namespace declaration.
func isNSDecl(a xml.Attr) bool {
	return a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns")
}

// writePath serializes a path element with its own namespace declarations
// so it stands alone inside the icon document.
func writePath(w io.Writer, p *Path) {
	ns := &namespaces{prefix: make(map[string]string)}
	ns.add(p.Name.Space)
	for _, a := range p.Attr {
		if !isNSDecl(a) {
			ns.add(a.Name.Space)
		}
	}
	for _, tok := range p.Inner {
		if se, ok := tok.(xml.StartElement); ok {
			ns.add(se.Name.Space)
			for _, a := range se.Attr {
				if !isNSDecl(a) {
					ns.add(a.Name.Space)
				}
			}
		}
	}

	decls := make([][2]string, 0, len(ns.prefix))
	for space, prefix := range ns.prefix {
		decls = append(decls, [2]string{prefix, space})
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i][0] < decls[j][0] })

	io.WriteString(w, "<"+ns.qualify(p.Name))
	for _, d := range decls {
		if d[0] == "" {
			fmt.Fprintf(w, ` xmlns="%s"`, attrEscaper.Replace(d[1]))
		} else {
			fmt.Fprintf(w, ` xmlns:%s="%s"`, d[0], attrEscaper.Replace(d[1]))
		}
	}
	writeAttrs(w, ns, p.Attr)

	if len(p.Inner) == 0 {
		io.WriteString(w, " />")
	} else {
		io.WriteString(w, ">")
		writeTokens(w, ns, p.Inner)
		io.WriteString(w, "</"+ns.qualify(p.Name)+">")
	}
	io.WriteString(w, textEscaper.Replace(p.Tail))
}

func writeAttrs(w io.Writer, ns *namespaces, attrs []xml.Attr) {
	for _, a := range attrs {
		if isNSDecl(a) {
			continue
		}
		fmt.Fprintf(w, ` %s="%s"`, ns.qualify(a.Name), attrEscaper.Replace(a.Value))
	}
}

// writeTokens serializes the child tokens of a path. Elements without
// content are written in their short form; comments and processing
// instructions are dropped.
func writeTokens(w io.Writer, ns *namespaces, toks []xml.Token) {
	for i := 0; i < len(toks); i++ {
		switch t := toks[i].(type) {
		case xml.StartElement:
			io.WriteString(w, "<"+ns.qualify(t.Name))
			writeAttrs(w, ns, normalizeAttrs(t.Attr))
			if i+1 < len(toks) {
				if _, ok := toks[i+1].(xml.EndElement); ok {
					io.WriteString(w, " />")
					i++
					continue
				}
			}
			io.WriteString(w, ">")
		case xml.EndElement:
			io.WriteString(w, "</"+ns.qualify(t.Name)+">")
		case xml.CharData:
			io.WriteString(w, textEscaper.Replace(string(t)))
		}
	}
}

// countWriter tracks the bytes written and keeps the first error.
type countWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil {
		c.err = err
	}
	return n, err
}
