package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Style identifies one of the compiled-in resume themes.
type Style string

const (
	StyleModern   Style = "modern"
	StyleCreative Style = "creative"
	StyleSimple   Style = "simple"
)

// Styles lists the known styles in catalogue order.
var Styles = []Style{StyleModern, StyleCreative, StyleSimple}

// ParseStyle normalizes s and reports whether it names a known style.
func ParseStyle(s string) (Style, bool) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Styles {
		if style == known {
			return style, true
		}
	}
	return style, false
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

// Hex formats the colour as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func hex(s string) RGB {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		panic("render: bad colour " + s)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

var (
	white = RGB{255, 255, 255}
	black = RGB{0, 0, 0}
)

// Theme maps a style to its three colours.
type Theme struct {
	Style  Style
	Header RGB
	Accent RGB
	Footer RGB
}

var themes = map[Style]Theme{
	StyleModern: {
		Style:  StyleModern,
		Header: hex("#1E4DB4"),
		Accent: hex("#1E4DB4"),
		Footer: hex("#508CFF"),
	},
	StyleCreative: {
		Style:  StyleCreative,
		Header: hex("#28A079"),
		Accent: hex("#1E805F"),
		Footer: hex("#63D8A2"),
	},
	StyleSimple: {
		Style:  StyleSimple,
		Header: black,
		Accent: black,
		Footer: hex("#808080"),
	},
}

// ThemeFor returns the theme for style; anything unknown gets the simple palette.
func ThemeFor(style Style) Theme {
	if t, ok := themes[style]; ok {
		return t
	}
	t := themes[StyleSimple]
	t.Style = style
	return t
}
