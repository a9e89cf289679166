package parser

import (
	"sync"
)

// Parser is a grammar rule: it either consumes some text and returns a value, or stops.
type Parser[T any] func(State) Result[T]

// Option is an optional value returned by MatchOptional.
type Option[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{v, true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and presence flag.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// OrElse returns the value or def if the value is absent.
func (o Option[T]) OrElse(def T) T {
	if o.Valid {
		return o.Value
	}
	return def
}

// Skip runs p and returns its next state, or s if p fails.
func Skip[T any](s State, p Parser[T]) State {
	r := p(s)
	if r.ok {
		return r.state
	}
	s.backtrack()
	return s
}

// MatchOptional runs p; failure is not an error and returns absent value at s.
func MatchOptional[T any](s State, p Parser[T]) Result[Option[T]] {
	r := p(s)
	if r.ok {
		return Continue(r.state, Some(r.value))
	}
	s.backtrack()
	return Continue(s, None[T]())
}

// MatchRepeats runs p until it fails and collects the values.
// Never fails, zero repetitions give empty slice.
// p must not succeed without consuming input, otherwise the loop never ends.
func MatchRepeats[T any](s State, p Parser[T]) Result[[]T] {
	values := make([]T, 0)
	for {
		r := p(s)
		if !r.ok {
			s.backtrack()
			return Continue(s, values)
		}

		values = append(values, r.value)
		s = r.state
	}
}

// MatchRepeatMN runs p at most max times (unlimited if max is negative)
// and requires at least min successes.
// Fails with ExpectRepeats reason positioned at s.
func MatchRepeatMN[T any](s State, min, max int, p Parser[T]) Result[[]T] {
	start := s.offset
	values := make([]T, 0)
	for max < 0 || len(values) < max {
		r := p(s)
		if !r.ok {
			s.backtrack()
			break
		}

		values = append(values, r.value)
		s = r.state
	}

	if len(values) < min {
		return Stop[[]T](ExpectRepeatsAt(start, min, len(values)))
	}
	return Continue(s, values)
}

// MatchPositive succeeds without consuming anything if p succeeds at s.
func MatchPositive[T any](s State, p Parser[T], label string) Result[struct{}] {
	ok := p(s).ok
	s.backtrack()
	if ok {
		return Continue(s, struct{}{})
	}
	return Stop[struct{}](MustBeAt(s.offset, label))
}

// MatchNegative succeeds without consuming anything if p fails at s.
func MatchNegative[T any](s State, p Parser[T], label string) Result[struct{}] {
	ok := p(s).ok
	s.backtrack()
	if ok {
		return Stop[struct{}](ShouldNotBeAt(s.offset, label))
	}
	return Continue(s, struct{}{})
}

// Optional returns parser form of MatchOptional.
func Optional[T any](p Parser[T]) Parser[Option[T]] {
	return func(s State) Result[Option[T]] {
		return MatchOptional(s, p)
	}
}

// Repeat returns parser form of MatchRepeats.
func Repeat[T any](p Parser[T]) Parser[[]T] {
	return func(s State) Result[[]T] {
		return MatchRepeats(s, p)
	}
}

// RepeatMN returns parser form of MatchRepeatMN.
func RepeatMN[T any](min, max int, p Parser[T]) Parser[[]T] {
	return func(s State) Result[[]T] {
		return MatchRepeatMN(s, min, max, p)
	}
}

// Positive returns parser form of MatchPositive.
func Positive[T any](p Parser[T], label string) Parser[struct{}] {
	return func(s State) Result[struct{}] {
		return MatchPositive(s, p, label)
	}
}

// Negative returns parser form of MatchNegative.
func Negative[T any](p Parser[T], label string) Parser[struct{}] {
	return func(s State) Result[struct{}] {
		return MatchNegative(s, p, label)
	}
}

// Map transforms the value of p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(s State) Result[U] {
		return MapValue(p(s), f)
	}
}

// Value replaces the value of p with v.
func Value[U, T any](p Parser[T], v U) Parser[U] {
	return func(s State) Result[U] {
		return ReplaceValue(p(s), v)
	}
}

// Omit discards the value of p.
func Omit[T any](p Parser[T]) Parser[struct{}] {
	return Value(p, struct{}{})
}

// Recognize returns the text consumed by p.
func Recognize[T any](p Parser[T]) Parser[StringView] {
	return func(s State) Result[StringView] {
		r := p(s)
		if !r.ok {
			return Propagate[StringView](r)
		}
		return Continue(r.state, s.Slice(s.offset, r.state.offset))
	}
}

// Spanned is a value with byte range it was parsed from.
type Spanned[T any] struct {
	Value T
	Span  Span
}

// WithSpan attaches consumed byte range to the value of p.
func WithSpan[T any](p Parser[T]) Parser[Spanned[T]] {
	return func(s State) Result[Spanned[T]] {
		r := p(s)
		if !r.ok {
			return Propagate[Spanned[T]](r)
		}
		return Continue(r.state, Spanned[T]{r.value, Span{s.offset, r.state.offset}})
	}
}

// Lazy defers parser construction until the first call, used for recursive rules held in variables.
// f is called once, the result is safe to share between goroutines.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	get := sync.OnceValue(f)
	return func(s State) Result[T] {
		return get()(s)
	}
}

func Char(c rune) Parser[rune] {
	return func(s State) Result[rune] {
		return s.MatchChar(c)
	}
}

func CharRange(lo, hi rune) Parser[rune] {
	return func(s State) Result[rune] {
		return s.MatchCharRange(lo, hi)
	}
}

func CharIf(predicate func(rune) bool, label string) Parser[rune] {
	return func(s State) Result[rune] {
		return s.MatchCharIf(predicate, label)
	}
}

func AnyChar(s State) Result[rune] {
	return s.MatchCharAny()
}

func EOF(s State) Result[struct{}] {
	return s.MatchEOF()
}

func Str(literal string) Parser[string] {
	return func(s State) Result[string] {
		return s.MatchStr(literal)
	}
}

func StrInsensitive(literal string) Parser[string] {
	return func(s State) Result[string] {
		return s.MatchStrInsensitive(literal)
	}
}

func StrIf(predicate func(rune) bool, label string) Parser[string] {
	return func(s State) Result[string] {
		return s.MatchStrIf(predicate, label)
	}
}

func StrUntil(predicate func(rune) bool, label string) Parser[string] {
	return func(s State) Result[string] {
		return s.MatchStrUntil(predicate, label)
	}
}

// Match returns parser form of State.MatchPattern.
func Match(p Pattern, label string) Parser[string] {
	return func(s State) Result[string] {
		return s.MatchPattern(p, label)
	}
}
