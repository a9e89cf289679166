// Package trace contains observers for rule events emitted by parser.Rule.
package trace

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/ava12/pegx/parser"
)

// Node is a successfully matched rule.
type Node struct {
	Rule  int
	Name  string
	Span  parser.Span
	Depth int
}

// Recorder collects rule events and reconstructs matched rules.
// Rules matched inside a failed rule or a discarded attempt are dropped.
// A zero-width rule matched exactly at the offset parsing resumes from is kept.
type Recorder struct {
	events []parser.Event
	nodes  []Node
	stack  []int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe implements parser.Observer.
func (r *Recorder) Observe(e parser.Event) {
	r.events = append(r.events, e)
	switch e.Kind {
	case parser.RuleStarted:
		r.prune(r.parent()+1, len(r.stack), e.Start)
		r.stack = append(r.stack, len(r.nodes))
		r.nodes = append(r.nodes, Node{Rule: e.Rule, Name: e.Name, Depth: len(r.stack) - 1})

	case parser.Backtracked:
		r.prune(r.parent()+1, len(r.stack), e.Start)

	case parser.RuleEnded, parser.RuleFailed:
		if len(r.stack) == 0 {
			return
		}

		last := len(r.stack) - 1
		index := r.stack[last]
		r.stack = r.stack[:last]
		if e.Kind == parser.RuleEnded {
			r.nodes[index].Span = parser.Span{Start: e.Start, End: e.End}
			r.prune(index+1, last+1, e.End)
		} else {
			r.nodes = r.nodes[:index]
		}
	}
}

func (r *Recorder) parent() int {
	if len(r.stack) == 0 {
		return -1
	}
	return r.stack[len(r.stack)-1]
}

// prune drops completed nodes of given depth ending after limit, with everything recorded after them.
// Such nodes were matched by an attempt that was discarded later without a rule failure event.
func (r *Recorder) prune(from, depth, limit int) {
	for i := from; i < len(r.nodes); i++ {
		if r.nodes[i].Depth == depth && r.nodes[i].Span.End > limit {
			r.nodes = r.nodes[:i]
			return
		}
	}
}

// Events returns all received events.
func (r *Recorder) Events() []parser.Event {
	return r.events
}

// Nodes returns matched rules in pre-order (parent before children).
// Rules still in progress have empty spans.
func (r *Recorder) Nodes() []Node {
	return r.nodes
}

// Reset discards all recorded data.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
	r.nodes = r.nodes[:0]
	r.stack = r.stack[:0]
}

// Farthest tracks the rule failure with the greatest start offset.
// PEG choices backtrack over failures, so the farthest failure usually is the most useful diagnostic.
type Farthest struct {
	reason parser.StopReason
	found  bool
}

func NewFarthest() *Farthest {
	return &Farthest{}
}

// Observe implements parser.Observer.
func (f *Farthest) Observe(e parser.Event) {
	if e.Kind == parser.RuleFailed {
		f.Record(e.Reason)
	}
}

// Record registers a failure reason; the later of equally far reasons wins.
func (f *Farthest) Record(r parser.StopReason) {
	if r.IsUninitialized() {
		return
	}

	if f.found {
		prev, _ := f.reason.Range()
		next, _ := r.Range()
		if next < prev {
			return
		}
	}

	f.reason = r
	f.found = true
}

// Reason returns the farthest recorded failure and a flag telling whether any was recorded.
func (f *Farthest) Reason() (parser.StopReason, bool) {
	return f.reason, f.found
}

// Pick returns r unless a recorded failure starts farther.
func (f *Farthest) Pick(r parser.StopReason) parser.StopReason {
	if !f.found {
		return r
	}

	prev, _ := f.reason.Range()
	next, _ := r.Range()
	if prev > next {
		return f.reason
	}
	return r
}

// Logger writes rule events to commonlog logger at debug level, indented by rule depth.
type Logger struct {
	log   commonlog.Logger
	depth int
}

// NewLogger creates event logger; nil log means "pegx.trace" logger.
func NewLogger(log commonlog.Logger) *Logger {
	if log == nil {
		log = commonlog.GetLogger("pegx.trace")
	}
	return &Logger{log: log}
}

// Observe implements parser.Observer.
func (l *Logger) Observe(e parser.Event) {
	if (e.Kind == parser.RuleEnded || e.Kind == parser.RuleFailed) && l.depth > 0 {
		l.depth--
	}

	if l.log.AllowLevel(commonlog.Debug) {
		indent := strings.Repeat("  ", l.depth)
		switch e.Kind {
		case parser.RuleStarted:
			l.log.Debugf("%s%s started at %d", indent, e.Name, e.Start)
		case parser.RuleEnded:
			l.log.Debugf("%s%s ended at %d..%d", indent, e.Name, e.Start, e.End)
		case parser.RuleFailed:
			l.log.Debugf("%s%s failed at %d: %s", indent, e.Name, e.Start, e.Reason.Error())
		case parser.Backtracked:
			l.log.Debugf("%sback to %d", indent, e.Start)
		}
	}

	if e.Kind == parser.RuleStarted {
		l.depth++
	}
}

type tee []parser.Observer

func (t tee) Observe(e parser.Event) {
	for _, o := range t {
		o.Observe(e)
	}
}

// Tee returns observer passing each event to all the observers in order; nil observers are skipped.
func Tee(observers ...parser.Observer) parser.Observer {
	res := make(tee, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			res = append(res, o)
		}
	}
	return res
}
