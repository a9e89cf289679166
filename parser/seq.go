package parser

// Pair holds values of two sequential parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Seq runs pa then pb.
func Seq[A, B any](pa Parser[A], pb Parser[B]) Parser[Pair[A, B]] {
	return func(s State) Result[Pair[A, B]] {
		ra := pa(s)
		if !ra.ok {
			return Propagate[Pair[A, B]](ra)
		}

		rb := pb(ra.state)
		if !rb.ok {
			return Propagate[Pair[A, B]](rb)
		}

		return Continue(rb.state, Pair[A, B]{ra.value, rb.value})
	}
}

// Left runs pa then pb and keeps the value of pa.
func Left[A, B any](pa Parser[A], pb Parser[B]) Parser[A] {
	return Map(Seq(pa, pb), func(p Pair[A, B]) A { return p.First })
}

// Right runs pa then pb and keeps the value of pb.
func Right[A, B any](pa Parser[A], pb Parser[B]) Parser[B] {
	return Map(Seq(pa, pb), func(p Pair[A, B]) B { return p.Second })
}

// Delimited runs open, p, and close and keeps the value of p.
func Delimited[O, T, C any](open Parser[O], p Parser[T], close Parser[C]) Parser[T] {
	return Left(Right(open, p), close)
}

// Sequence runs all parsers in order and collects their values.
func Sequence[T any](ps ...Parser[T]) Parser[[]T] {
	return func(s State) Result[[]T] {
		values := make([]T, 0, len(ps))
		for _, p := range ps {
			r := p(s)
			if !r.ok {
				return Propagate[[]T](r)
			}

			values = append(values, r.value)
			s = r.state
		}
		return Continue(s, values)
	}
}

// Padded skips ignorable text (e.g. whitespace) before and after p.
func Padded[I, T any](ignore Parser[I], p Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		r := p(Skip(s, ignore))
		if !r.ok {
			return r
		}
		return Continue(Skip(r.state, ignore), r.value)
	}
}
