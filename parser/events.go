package parser

// EventKind is the kind of rule event.
type EventKind int

const (
	RuleStarted EventKind = iota
	RuleEnded
	RuleFailed

	// Backtracked is reported when a combinator discards a failed or lookahead attempt
	// and parsing resumes at Start. Rule and Name are empty.
	Backtracked
)

func (k EventKind) String() string {
	switch k {
	case RuleStarted:
		return "started"
	case RuleEnded:
		return "ended"
	case RuleFailed:
		return "failed"
	case Backtracked:
		return "backtracked"
	default:
		return "unknown"
	}
}

// Event is reported to an Observer at rule boundaries.
type Event struct {
	Kind EventKind

	// Rule is the rule identifier given to parser.Rule.
	Rule int

	// Name is the rule name given to parser.Rule.
	Name string

	// Start is the offset the rule was called at.
	Start int

	// End is the offset after the matched text for RuleEnded, equals Start otherwise.
	End int

	// Reason is the failure reason for RuleFailed.
	Reason StopReason
}

// Observer receives rule events, see State.WithObserver.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Rule wraps p reporting its start and end (or failure) to the observer attached to the state.
// Without observer p is called directly.
func Rule[T any](id int, name string, p Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		o := s.observer
		if o == nil {
			return p(s)
		}

		e := Event{Kind: RuleStarted, Rule: id, Name: name, Start: s.offset, End: s.offset}
		o.Observe(e)
		r := p(s)
		if r.ok {
			e.Kind = RuleEnded
			e.End = r.state.offset
		} else {
			e.Kind = RuleFailed
			e.Reason = r.reason
		}
		o.Observe(e)
		return r
	}
}

// backtrack reports that parsing resumes at s after a discarded attempt.
func (s State) backtrack() {
	if s.observer != nil {
		s.observer.Observe(Event{Kind: Backtracked, Start: s.offset, End: s.offset})
	}
}
