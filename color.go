package palette

import (
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS-style colour: "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa", a CSS colour name such as "cornflowerblue", or
// "transparent". Names are case-insensitive.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return gg.RGBA{}, invalidf("empty color")
	}
	if s[0] == '#' {
		c, err := gg.ParseHex(s)
		if err != nil {
			return gg.RGBA{}, invalidf("color %q: %v", s, err)
		}
		return c, nil
	}

	name := strings.ToLower(s)
	if name == "transparent" {
		return gg.Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return gg.FromColor(c), nil
	}
	return gg.RGBA{}, invalidf("unknown color %q", s)
}

// ParseBrush is ParseColor returning a solid brush, for use in Style.
func ParseBrush(s string) (gg.Brush, error) {
	c, err := ParseColor(s)
	if err != nil {
		return nil, err
	}
	return gg.Solid(c), nil
}

// MustBrush is like ParseBrush but panics on error. It is intended for
// colour literals in examples and tests.
func MustBrush(s string) gg.Brush {
	b, err := ParseBrush(s)
	if err != nil {
		panic(err)
	}
	return b
}
