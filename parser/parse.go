package parser

import (
	"errors"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/source"
)

// Parse runs rule over the whole text.
// Unconsumed input is reported as ExpectEOF at the first unconsumed byte.
// Returned error is a StopReason.
func Parse[T any](text string, rule Parser[T]) (T, error) {
	return ParseState(New(text), rule)
}

// ParseState is Parse starting from existing state, e.g. a state with attached observer.
func ParseState[T any](s State, rule Parser[T]) (T, error) {
	var zero T
	r := rule(s)
	if !r.ok {
		return zero, r.reason
	}

	if !r.state.IsEmpty() {
		return zero, ExpectEOFAt(r.state.offset)
	}

	return r.value, nil
}

// ParseSource runs rule over source text and converts failures to positioned *pegx.Error.
func ParseSource[T any](src *source.Source, rule Parser[T]) (T, error) {
	res, e := Parse(src.Content(), rule)
	if e != nil {
		var sr StopReason
		if errors.As(e, &sr) {
			e = ReasonError(src, sr)
		}
	}
	return res, e
}

// ReasonError converts stop reason to *pegx.Error with line and column of reason start; src may be nil.
func ReasonError(src *source.Source, reason StopReason) *pegx.Error {
	start, _ := reason.Range()
	return pegx.FormatErrorPos(source.NewPos(src, start), reason.Code(), "%s", reason.Error())
}
