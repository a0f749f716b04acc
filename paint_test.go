package svgslice

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		in    string
		color color.Color
		ok    bool
	}{
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true},
		{"#2E3192", color.NRGBA{R: 0x2e, G: 0x31, B: 0x92, A: 0xff}, true},
		{" rgb(255, 0, 10) ", color.NRGBA{R: 255, G: 0, B: 10, A: 0xff}, true},
		{"rgb(100%,0%,0%)", color.NRGBA{R: 255, A: 0xff}, true},
		{"Red", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"url(#grad)", color.NRGBA{A: 0xff}, true},
		{"currentColor", color.NRGBA{A: 0xff}, true},
		{"none", nil, true},
		{"transparent", nil, true},
		{"#12", nil, false},
		{"#ggg", nil, false},
		{"rgb(1,,2)", nil, false},
		{"rgb(1,2)", nil, false},
		{"bogus", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		c, ok := ParseColor(tt.in)
		assert.Equal(tt.ok, ok, tt.in)
		assert.Equal(tt.color, c, tt.in)
	}
}

func TestStyleSheet_Fill(t *testing.T) {
	assert := assert.New(t)

	sheet := ParseStyleSheet(`
		/* generated */
		.st0, .st2 { fill: #2E3192; }
		.st1{fill:none;stroke:#000000;}
		.st3{fill:red}
		g .st4{fill:blue}
		path{fill:#00ff00}
	`)

	c, visible := sheet.Fill(&Path{Attr: attrs("class", "st0")})
	assert.True(visible)
	assert.Equal(color.NRGBA{R: 0x2e, G: 0x31, B: 0x92, A: 0xff}, c)

	c, _ = sheet.Fill(&Path{Attr: attrs("class", "st2")})
	assert.Equal(color.NRGBA{R: 0x2e, G: 0x31, B: 0x92, A: 0xff}, c)

	_, visible = sheet.Fill(&Path{Attr: attrs("class", "st1")})
	assert.False(visible)

	// the later rule wins between classes
	c, _ = sheet.Fill(&Path{Attr: attrs("class", "st3 st0")})
	assert.Equal(color.NRGBA{R: 0xff, A: 0xff}, c)

	// attribute and inline style take precedence over classes
	c, _ = sheet.Fill(&Path{Attr: attrs("class", "st0", "fill", "blue")})
	assert.Equal(color.NRGBA{B: 0xff, A: 0xff}, c)
	c, _ = sheet.Fill(&Path{Attr: attrs("class", "st0", "style", "stroke:red; fill: #000")})
	assert.Equal(color.NRGBA{A: 0xff}, c)

	// descendant selectors are not supported, the path rule applies
	c, _ = sheet.Fill(&Path{Attr: attrs("class", "st4")})
	assert.Equal(color.NRGBA{G: 0xff, A: 0xff}, c)

	c, visible = ParseStyleSheet("").Fill(&Path{})
	assert.True(visible)
	assert.Equal(color.Black, c)
}
