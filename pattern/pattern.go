// Package pattern implements parser.Pattern using regular expression engines and literal sets.
//
// All patterns match at the start of the text only, they never search forward.
package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// Regexp is a pattern backed by the standard RE2 engine.
type Regexp struct {
	re *regexp.Regexp
}

// Compile compiles RE2 expression anchored at the start of the text.
func Compile(expr string) (*Regexp, error) {
	re, e := regexp.Compile(`^(?:` + expr + `)`)
	if e != nil {
		return nil, fmt.Errorf("pattern %q: %w", expr, e)
	}
	return &Regexp{re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Regexp {
	res, e := Compile(expr)
	if e != nil {
		panic(e)
	}
	return res
}

// FromRegexp wraps existing expression. Matches not starting at offset 0 are rejected,
// but an unanchored expression still scans the whole text.
func FromRegexp(re *regexp.Regexp) *Regexp {
	return &Regexp{re}
}

// MatchPrefix implements parser.Pattern.
func (r *Regexp) MatchPrefix(text string) int {
	loc := r.re.FindStringIndex(text)
	if loc == nil || loc[0] != 0 {
		return -1
	}
	return loc[1]
}

func (r *Regexp) String() string {
	return r.re.String()
}

// Regexp2 is a pattern backed by regexp2 backtracking engine
// supporting lookaround assertions and backreferences.
type Regexp2 struct {
	re *regexp2.Regexp
}

// Compile2 compiles regexp2 expression anchored at the start of the text.
func Compile2(expr string, opts regexp2.RegexOptions) (*Regexp2, error) {
	re, e := regexp2.Compile(`\A(?:`+expr+`)`, opts)
	if e != nil {
		return nil, fmt.Errorf("pattern %q: %w", expr, e)
	}
	return &Regexp2{re}, nil
}

// MustCompile2 is like Compile2 but panics on error.
func MustCompile2(expr string, opts regexp2.RegexOptions) *Regexp2 {
	res, e := Compile2(expr, opts)
	if e != nil {
		panic(e)
	}
	return res
}

// FromRegexp2 wraps existing expression, e.g. one with MatchTimeout set.
func FromRegexp2(re *regexp2.Regexp) *Regexp2 {
	return &Regexp2{re}
}

// MatchPrefix implements parser.Pattern. Engine errors (e.g. timeouts) are reported as no match,
// parser.State.MatchPattern uses MatchPrefixError instead.
func (r *Regexp2) MatchPrefix(text string) int {
	n, _ := r.MatchPrefixError(text)
	return n
}

// MatchPrefixError implements parser.FalliblePattern.
func (r *Regexp2) MatchPrefixError(text string) (int, error) {
	m, e := r.re.FindStringMatch(text)
	if e != nil {
		return -1, fmt.Errorf("pattern %s: %w", r.re.String(), e)
	}
	if m == nil || m.Index != 0 {
		return -1, nil
	}
	return len(m.String()), nil
}

func (r *Regexp2) String() string {
	return r.re.String()
}

// Literal matches fixed text.
type Literal string

// MatchPrefix implements parser.Pattern.
func (l Literal) MatchPrefix(text string) int {
	if strings.HasPrefix(text, string(l)) {
		return len(l)
	}
	return -1
}

// OneOf matches the longest of literal words, e.g. operators sharing a prefix.
type OneOf struct {
	words []string
}

func NewOneOf(words ...string) *OneOf {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return &OneOf{sorted}
}

// MatchPrefix implements parser.Pattern.
func (o *OneOf) MatchPrefix(text string) int {
	for _, w := range o.words {
		if strings.HasPrefix(text, w) {
			return len(w)
		}
	}
	return -1
}
