package parser

// ChoiceHelper tries alternatives in declaration order against the same state.
// The first successful alternative wins; remaining alternatives are not called.
//
//	r := parser.BeginChoice[Node](s).
//		Choose(number).
//		Choose(name).
//		EndChoice()
//
// If every alternative fails, EndChoice returns the last recorded failure.
type ChoiceHelper[T any] struct {
	start    State
	scratch  State
	result   Result[T]
	done     bool
	farthest bool
}

// BeginChoice starts a choice at s.
func BeginChoice[T any](s State) ChoiceHelper[T] {
	s = s.WithReason(StopReason{})
	return ChoiceHelper[T]{start: s, scratch: s}
}

// Farthest makes the choice report the failure with the greatest start offset
// instead of the last one. Ties are resolved in favour of the later alternative.
func (c ChoiceHelper[T]) Farthest() ChoiceHelper[T] {
	c.farthest = true
	return c
}

// Choose tries p unless an earlier alternative has succeeded.
func (c ChoiceHelper[T]) Choose(p Parser[T]) ChoiceHelper[T] {
	if c.done {
		return c
	}

	r := p(c.start)
	if r.ok {
		c.result = r
		c.done = true
		return c
	}

	c.start.backtrack()
	c.scratch = c.scratch.WithReason(c.pick(c.scratch.reason, r.reason))
	return c
}

func (c ChoiceHelper[T]) pick(prev, next StopReason) StopReason {
	if !c.farthest || prev.IsUninitialized() {
		return next
	}

	prevStart, _ := prev.Range()
	nextStart, _ := next.Range()
	if nextStart >= prevStart {
		return next
	}
	return prev
}

// EndChoice returns the result of the winning alternative or the recorded failure.
// A choice without alternatives stops with Uninitialized reason.
func (c ChoiceHelper[T]) EndChoice() Result[T] {
	if c.done {
		return c.result
	}
	return Stop[T](c.scratch.reason)
}

// Choice returns parser trying alternatives in order.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		c := BeginChoice[T](s)
		for _, p := range ps {
			c = c.Choose(p)
		}
		return c.EndChoice()
	}
}

// FarthestChoice is Choice reporting the failure with the greatest start offset.
func FarthestChoice[T any](ps ...Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		c := BeginChoice[T](s).Farthest()
		for _, p := range ps {
			c = c.Choose(p)
		}
		return c.EndChoice()
	}
}
