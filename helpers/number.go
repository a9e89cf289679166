package helpers

import (
	"strconv"

	"github.com/ava12/pegx/parser"
)

// BaseMark is a number prefix and its base, e.g. {"0x", 16}.
type BaseMark struct {
	Mark string
	Base int
}

// BasedDigits is a prefixed integer literal. Digits may be empty.
type BasedDigits struct {
	Base   int
	Mark   parser.StringView
	Digits parser.StringView
}

// Value converts digits to number, empty digits are an error.
func (bd BasedDigits) Value() (uint64, error) {
	return strconv.ParseUint(bd.Digits.String(), bd.Base, 64)
}

// ZeroBytePattern parses integers like 0x1F, 0o17, 0b1010.
// Marks are tried in order, the first matching one wins.
type ZeroBytePattern struct {
	Marks       []BaseMark
	Insensitive bool

	// Message is the failure label, "BASED_NUMBER" if empty.
	Message string
}

func (zp ZeroBytePattern) Parse(s parser.State) parser.Result[BasedDigits] {
	for _, m := range zp.Marks {
		if r := ParseByteBase(s, m.Mark, m.Base, zp.Insensitive); r.IsSuccess() {
			return r
		}
	}
	return parser.Stop[BasedDigits](parser.MissingCharacterSetAt(s.Offset(), label(zp.Message, "BASED_NUMBER")))
}

// ParseByteBase parses mark and the longest (possibly empty) run of digits valid in base (2 to 36).
func ParseByteBase(s parser.State, mark string, base int, insensitive bool) parser.Result[BasedDigits] {
	var r parser.Result[string]
	if insensitive {
		r = s.MatchStrInsensitive(mark)
	} else {
		r = s.MatchStr(mark)
	}
	if r.IsFailure() {
		return parser.Propagate[BasedDigits](r)
	}

	digitState := r.State()
	rest := digitState.Rest()
	n := 0
	for n < len(rest) && digitValue(rest[n]) < base {
		n++
	}

	next, digits := digitState.AdvanceView(n)
	return parser.Continue(next, BasedDigits{
		Base:   base,
		Mark:   parser.NewView(s.Offset(), r.Value()),
		Digits: digits,
	})
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

// DecimalString matches a run of decimal digits with at most one dot, e.g. "12", "1.5", ".5".
func DecimalString(s parser.State) parser.Result[parser.StringView] {
	rest := s.Rest()
	dot := false
	n := 0
	for ; n < len(rest); n++ {
		c := rest[n]
		if c == '.' && !dot {
			dot = true
			continue
		}
		if c < '0' || c > '9' {
			break
		}
	}

	if n == 0 {
		return parser.Stop[parser.StringView](parser.MissingStringAt(s.Offset(), "DECIMAL_LITERAL"))
	}
	next, view := s.AdvanceView(n)
	return parser.Continue(next, view)
}
