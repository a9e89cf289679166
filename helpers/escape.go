package helpers

import (
	"strings"

	"github.com/ava12/pegx/parser"
)

const maxEscapeDigits = 6

// UnicodeUnescape decodes \uXXXX (exactly 4 hex digits) or, with CurlyBrace set,
// \u{X} .. \u{XXXXXX} escapes. Whitespace inside braces is ignored; empty braces,
// non-hex digits, values above U+10FFFF and surrogates are rejected.
type UnicodeUnescape struct {
	// Insensitive also accepts \U.
	Insensitive bool
	CurlyBrace  bool
}

func (u UnicodeUnescape) Parse(s parser.State) parser.Result[rune] {
	var r parser.Result[string]
	if u.Insensitive {
		r = s.MatchStrInsensitive(`\u`)
	} else {
		r = s.MatchStr(`\u`)
	}
	if r.IsFailure() {
		return parser.Propagate[rune](r)
	}

	if u.CurlyBrace {
		return unescapeBraced(r.State())
	}
	return unescapeHex4(r.State())
}

func unescapeHex4(s parser.State) parser.Result[rune] {
	rest := s.Rest()
	start := s.Offset()
	if len(rest) < 4 {
		return parser.Stop[rune](parser.CustomAt(start, s.EndOffset(), "invalid unicode escape sequence"))
	}

	value, ok := hexValue(rest[:4])
	if !ok || isSurrogate(value) {
		return parser.Stop[rune](parser.CustomAt(start, start+4, "invalid unicode escape sequence"))
	}
	return parser.Continue(s.Advance(4), rune(value))
}

func unescapeBraced(s parser.State) parser.Result[rune] {
	open := s.MatchChar('{')
	if open.IsFailure() {
		return open
	}

	bodyState := open.State()
	bodyLen := strings.IndexByte(bodyState.Rest(), '}')
	if bodyLen < 0 {
		return parser.Stop[rune](parser.MissingCharacterAt(bodyState.EndOffset(), '}'))
	}

	start := bodyState.Offset()
	end := start + bodyLen
	digits := strings.TrimSpace(bodyState.Rest()[:bodyLen])
	switch {
	case digits == "":
		return parser.Stop[rune](parser.CustomAt(start, end, "empty unicode escape"))
	case len(digits) > maxEscapeDigits:
		return parser.Stop[rune](parser.CustomAt(start, end, "unicode escape must have 1 to %d hex digits", maxEscapeDigits))
	}

	value, ok := hexValue(digits)
	switch {
	case !ok:
		return parser.Stop[rune](parser.CustomAt(start, end, "unicode escape must contain only hex digits"))
	case value > 0x10FFFF:
		return parser.Stop[rune](parser.CustomAt(start, end, "character must not be beyond U+10FFFF"))
	case isSurrogate(value):
		return parser.Stop[rune](parser.CustomAt(start, end, "surrogate code point U+%04X", value))
	}

	return parser.Continue(bodyState.Advance(bodyLen+1), rune(value))
}

func isSurrogate(value uint32) bool {
	return value >= 0xD800 && value <= 0xDFFF
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func isHexDigit(r rune) bool {
	_, ok := hexDigit(byte(r))
	return ok && r < 0x80
}

// hexValue decodes up to 8 hex digits.
func hexValue(digits string) (uint32, bool) {
	var value uint32
	for i := 0; i < len(digits); i++ {
		d, ok := hexDigit(digits[i])
		if !ok {
			return 0, false
		}
		value = value<<4 | uint32(d)
	}
	return value, true
}
