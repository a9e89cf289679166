package helpers

import (
	"fmt"

	"github.com/ava12/pegx/parser"
)

// Color is an RGBA color, A is 255 for opaque colors.
type Color struct {
	R, G, B, A uint8
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// HexColor parses Head (skipped if empty) and a run of hex digits:
//
//	#A        gray,  (AA, AA, AA, FF)
//	#AB       gray,  (AB, AB, AB, FF)
//	#ABC      RGB,   (AA, BB, CC, FF)
//	#ABCD     RGBA,  (AA, BB, CC, DD)
//	#ABCDEF   RGB,   (AB, CD, EF, FF)
//	#ABCDEF12 RGBA,  (AB, CD, EF, 12)
//
// Any other number of digits is an error.
type HexColor struct {
	Head string
}

// DefaultHexColor parses #-prefixed colors.
var DefaultHexColor = HexColor{Head: "#"}

func (hc HexColor) Parse(s parser.State) parser.Result[Color] {
	if hc.Head != "" {
		r := s.MatchStr(hc.Head)
		if r.IsFailure() {
			return parser.Propagate[Color](r)
		}
		s = r.State()
	}

	r := s.MatchStrIf(isHexDigit, "ASCII_HEX")
	if r.IsFailure() {
		return parser.Propagate[Color](r)
	}

	hex := r.Value()
	d := make([]uint8, len(hex))
	for i := range d {
		d[i], _ = hexDigit(hex[i])
	}

	var c Color
	switch len(d) {
	case 1:
		g := d[0]<<4 | d[0]
		c = Color{g, g, g, 0xFF}
	case 2:
		g := d[0]<<4 | d[1]
		c = Color{g, g, g, 0xFF}
	case 3:
		c = Color{d[0]<<4 | d[0], d[1]<<4 | d[1], d[2]<<4 | d[2], 0xFF}
	case 4:
		c = Color{d[0]<<4 | d[0], d[1]<<4 | d[1], d[2]<<4 | d[2], d[3]<<4 | d[3]}
	case 6:
		c = Color{d[0]<<4 | d[1], d[2]<<4 | d[3], d[4]<<4 | d[5], 0xFF}
	case 8:
		c = Color{d[0]<<4 | d[1], d[2]<<4 | d[3], d[4]<<4 | d[5], d[6]<<4 | d[7]}
	default:
		end := s.Offset() + len(d)
		return parser.Stop[Color](parser.CustomAt(end, end+1, "wrong color format: expect 1, 2, 3, 4, 6, or 8 hex digits, got %d", len(d)))
	}

	return parser.Continue(r.State(), c)
}
