package svgslice

import (
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
)

// fillRule is a fill declaration found in the document style block.
type fillRule struct {
	color color.Color // nil means "none"
	order int
}

// StyleSheet holds the fill colors declared for classes in a style block.
// Rules for the path element itself are stored under the empty class.
type StyleSheet struct {
	rules map[string]fillRule
}

// ParseStyleSheet reads the fill declarations of simple class selectors
// (".st0, .st1 { fill: #2E3192 }") and of the path or universal selector.
// Anything else is ignored.
func ParseStyleSheet(css string) StyleSheet {
	ss := StyleSheet{rules: make(map[string]fillRule)}
	css = stripComments(css)

	order := 0
	for _, chunk := range strings.Split(css, "}") {
		parts := strings.SplitN(chunk, "{", 2)
		if len(parts) != 2 {
			continue
		}
		val, ok := findDecl(parts[1], "fill")
		if !ok {
			continue
		}
		c, ok := ParseColor(val)
		if !ok {
			continue
		}
		order++
		for _, sel := range strings.Split(parts[0], ",") {
			sel = strings.TrimSpace(sel)
			switch {
			case sel == "path" || sel == "*":
				ss.rules[""] = fillRule{color: c, order: order}
			case strings.HasPrefix(sel, ".") && !strings.ContainsAny(sel, " >+~:[#"):
				ss.rules[sel[1:]] = fillRule{color: c, order: order}
			}
		}
	}
	return ss
}

// Fill resolves the fill color of a path: the fill attribute, then the
// inline style, then class rules, then path rules, then black.
// visible is false when the resolved fill is "none".
func (ss StyleSheet) Fill(p *Path) (c color.Color, visible bool) {
	if v := p.Get("fill"); v != "" {
		if c, ok := ParseColor(v); ok {
			return c, c != nil
		}
	}
	if v, ok := findDecl(p.Get("style"), "fill"); ok {
		if c, ok := ParseColor(v); ok {
			return c, c != nil
		}
	}

	var (
		best  fillRule
		found bool
	)
	for _, class := range strings.Fields(p.Get("class")) {
		if r, ok := ss.rules[class]; ok && (!found || r.order > best.order) {
			best, found = r, true
		}
	}
	if !found {
		best, found = ss.rules[""]
	}
	if found {
		return best.color, best.color != nil
	}
	return color.Black, true
}

// ParseColor parses an SVG paint value. "none" yields a nil color.
// References such as url(#grad) and currentColor resolve to black.
func ParseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "!important"))
	low := strings.ToLower(s)

	switch {
	case low == "":
		return nil, false
	case low == "transparent":
		return nil, true
	case low == "currentcolor":
		return color.NRGBA{A: 0xff}, true
	case strings.HasPrefix(low, "#"):
		if !isHex(low[1:]) || (len(low) != 4 && len(low) != 7) {
			return nil, false
		}
	case strings.HasPrefix(low, "rgb("):
		if !strings.HasSuffix(low, ")") {
			return nil, false
		}
		for _, v := range strings.Split(low[4:len(low)-1], ",") {
			if strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%")) == "" {
				return nil, false
			}
		}
	}
	c, err := oksvg.ParseSVGColor(low)
	if err != nil {
		return nil, false
	}
	return c, true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// findDecl returns the value of the named property in a declaration block.
// The last declaration wins.
func findDecl(body, prop string) (string, bool) {
	var (
		val   string
		found bool
	)
	for _, decl := range strings.Split(body, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(kv[0]), prop) {
			val, found = strings.TrimSpace(kv[1]), true
		}
	}
	return val, found
}

func stripComments(css string) string {
	var sb strings.Builder
	for {
		i := strings.Index(css, "/*")
		if i < 0 {
			sb.WriteString(css)
			return sb.String()
		}
		sb.WriteString(css[:i])
		j := strings.Index(css[i+2:], "*/")
		if j < 0 {
			return sb.String()
		}
		css = css[i+2+j+2:]
	}
}
