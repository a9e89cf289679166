package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ava12/pegx"
)

// StopKind enumerates reasons for a parser to stop.
type StopKind int

const (
	// Uninitialized means no failure was recorded; seeing it as a final parse error indicates a bug
	// in the grammar or the engine (e.g. a choice with no alternatives).
	Uninitialized StopKind = iota
	// ExpectEOF means unconsumed input remains after a complete parse.
	ExpectEOF
	// ExpectRepeats means a bounded repetition did not reach its minimum count.
	ExpectRepeats
	// MissingCharacterRange means a character (Lo == Hi) or inclusive character range was required.
	MissingCharacterRange
	// MissingCharacterSet means a character from a named set was required.
	MissingCharacterSet
	// MissingString means a literal or a named token was required.
	MissingString
	// MustBe means a positive lookahead (or a character predicate) failed.
	MustBe
	// ShouldNotBe means a negative lookahead failed.
	ShouldNotBe
	// Custom is a helper-specific failure with explicit range.
	Custom
)

var kindNames = [...]string{
	"Uninitialized",
	"ExpectEOF",
	"ExpectRepeats",
	"MissingCharacterRange",
	"MissingCharacterSet",
	"MissingString",
	"MustBe",
	"ShouldNotBe",
	"Custom",
}

func (k StopKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "StopKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Error codes returned by StopReason.Code, one per StopKind:
const (
	UninitializedError = pegx.StopErrors + iota
	ExpectEOFError
	ExpectRepeatsError
	MissingCharacterRangeError
	MissingCharacterSetError
	MissingStringError
	MustBeError
	ShouldNotBeError
	CustomError
)

// StopReason describes why a parser stopped. The zero value is an Uninitialized reason.
// StopReason values are comparable and implement error.
type StopReason struct {
	Kind StopKind

	// Position is the byte offset the failure refers to (start offset for Custom).
	Position int

	// End is the end byte offset for Custom reasons.
	End int

	// Message is the literal, label, set name, or custom message depending on Kind.
	Message string

	// Lo and Hi are inclusive bounds for MissingCharacterRange.
	Lo, Hi rune

	// Min and Current are repetition counts for ExpectRepeats.
	Min, Current int
}

func ExpectEOFAt(pos int) StopReason {
	return StopReason{Kind: ExpectEOF, Position: pos}
}

func ExpectRepeatsAt(pos, min, current int) StopReason {
	return StopReason{Kind: ExpectRepeats, Position: pos, Min: min, Current: current}
}

func MissingCharacterAt(pos int, c rune) StopReason {
	return StopReason{Kind: MissingCharacterRange, Position: pos, Lo: c, Hi: c}
}

func MissingCharacterRangeAt(pos int, lo, hi rune) StopReason {
	return StopReason{Kind: MissingCharacterRange, Position: pos, Lo: lo, Hi: hi}
}

func MissingCharacterSetAt(pos int, expected string) StopReason {
	return StopReason{Kind: MissingCharacterSet, Position: pos, Message: expected}
}

func MissingStringAt(pos int, message string) StopReason {
	return StopReason{Kind: MissingString, Position: pos, Message: message}
}

func MustBeAt(pos int, message string) StopReason {
	return StopReason{Kind: MustBe, Position: pos, Message: message}
}

func ShouldNotBeAt(pos int, message string) StopReason {
	return StopReason{Kind: ShouldNotBe, Position: pos, Message: message}
}

// CustomAt creates Custom reason covering [start, end).
func CustomAt(start, end int, message string, params ...any) StopReason {
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	return StopReason{Kind: Custom, Position: start, End: end, Message: message}
}

// FromError converts an arbitrary error to a stop reason covering [start, end).
// StopReason errors are returned as is, strconv errors get a short message.
func FromError(e error, start, end int) StopReason {
	var sr StopReason
	if errors.As(e, &sr) {
		return sr
	}

	var ne *strconv.NumError
	if errors.As(e, &ne) {
		return CustomAt(start, end, "invalid number %q: %s", ne.Num, ne.Err)
	}

	return CustomAt(start, end, e.Error())
}

// Range returns half-open byte range [start, end) to highlight.
func (r StopReason) Range() (start, end int) {
	switch r.Kind {
	case Uninitialized:
		return 0, 0
	case MissingString:
		return r.Position, r.Position + len(r.Message)
	case Custom:
		return r.Position, r.End
	default:
		return r.Position, r.Position + 1
	}
}

// Code returns pegx error code for this reason.
func (r StopReason) Code() int {
	return pegx.StopErrors + int(r.Kind)
}

func (r StopReason) Error() string {
	switch r.Kind {
	case Uninitialized:
		return "uninitialized"
	case ExpectEOF:
		return "expect end of file"
	case ExpectRepeats:
		return fmt.Sprintf("expect at least %d repeats (got %d)", r.Min, r.Current)
	case MissingCharacterRange:
		if r.Lo == r.Hi {
			return fmt.Sprintf("missing character %q", r.Lo)
		}
		return fmt.Sprintf("expect character in range %q..%q", r.Lo, r.Hi)
	case MissingCharacterSet:
		return fmt.Sprintf("missing character set `%s`", r.Message)
	case MissingString:
		return fmt.Sprintf("missing string %q", r.Message)
	case MustBe:
		return fmt.Sprintf("must be `%s`", r.Message)
	case ShouldNotBe:
		return fmt.Sprintf("should not be `%s`", r.Message)
	default:
		return r.Message
	}
}

// IsUninitialized tells whether no failure was recorded.
func (r StopReason) IsUninitialized() bool {
	return r.Kind == Uninitialized
}
