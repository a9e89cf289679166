package parser

import (
	"fmt"
)

// Result is the outcome of a parser: either Continue with the next state and a value,
// or Stop with a reason.
type Result[T any] struct {
	state  State
	value  T
	reason StopReason
	ok     bool
}

// Continue creates successful result.
func Continue[T any](s State, value T) Result[T] {
	return Result[T]{state: s, value: value, ok: true}
}

// Stop creates failed result.
func Stop[T any](reason StopReason) Result[T] {
	return Result[T]{reason: reason}
}

func (r Result[T]) IsSuccess() bool {
	return r.ok
}

func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// State returns the next state, zero State for failed result.
func (r Result[T]) State() State {
	return r.state
}

// Value returns parsed value, zero value for failed result.
func (r Result[T]) Value() T {
	return r.value
}

// Reason returns stop reason, Uninitialized for successful result.
func (r Result[T]) Reason() StopReason {
	return r.reason
}

// Get returns the next state, the value, and success flag.
func (r Result[T]) Get() (State, T, bool) {
	return r.state, r.value, r.ok
}

// AsResult converts result to Go-style triple, error is a StopReason.
func (r Result[T]) AsResult() (State, T, error) {
	if !r.ok {
		return r.state, r.value, r.reason
	}
	return r.state, r.value, nil
}

// Unwrap returns the next state and the value, panics for failed result.
// Intended for tests and for parsers that cannot fail.
func (r Result[T]) Unwrap() (State, T) {
	if !r.ok {
		panic("parser: unwrap on stopped result: " + r.reason.Error())
	}
	return r.state, r.value
}

// Dispatch calls onContinue or onStop depending on the outcome, then returns r unchanged.
// Either callback may be nil.
func (r Result[T]) Dispatch(onContinue func(State, T), onStop func(StopReason)) Result[T] {
	if r.ok {
		if onContinue != nil {
			onContinue(r.state, r.value)
		}
	} else if onStop != nil {
		onStop(r.reason)
	}
	return r
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Continue(rest=%q, offset=%d, value=%v)", r.state.Rest(), r.state.offset, r.value)
	}
	return fmt.Sprintf("Stop(%s: %s)", r.reason.Kind, r.reason.Error())
}

// Propagate re-types failed result keeping its reason untouched.
// Calling it for successful result is a programming error and panics.
func Propagate[U, T any](r Result[T]) Result[U] {
	if r.ok {
		panic("parser: propagating successful result")
	}
	return Result[U]{reason: r.reason}
}

// MapValue transforms the value of successful result.
func MapValue[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Result[U]{reason: r.reason}
	}
	return Result[U]{state: r.state, value: f(r.value), ok: true}
}

// ReplaceValue replaces the value of successful result with v.
func ReplaceValue[U, T any](r Result[T], v U) Result[U] {
	if !r.ok {
		return Result[U]{reason: r.reason}
	}
	return Result[U]{state: r.state, value: v, ok: true}
}

// AndThen continues successful result with f, failed result is propagated.
func AndThen[T, U any](r Result[T], f func(State, T) Result[U]) Result[U] {
	if !r.ok {
		return Result[U]{reason: r.reason}
	}
	return f(r.state, r.value)
}
