package parser

import (
	"testing"

	"github.com/ava12/pegx/internal/test"
)

func TestChoiceIsOrdered(t *testing.T) {
	r := Choice(Str("ab"), Str("abc"))(New("abc"))
	test.ExpectString(t, "ab", r.Value())
	test.ExpectInt(t, 2, r.State().Offset())

	r = Choice(Str("abc"), Str("ab"))(New("abc"))
	test.ExpectString(t, "abc", r.Value())
}

func TestChoiceStopsAtFirstSuccess(t *testing.T) {
	calls := 0
	counting := func(lit string) Parser[string] {
		return func(s State) Result[string] {
			calls++
			return s.MatchStr(lit)
		}
	}

	r := BeginChoice[string](New("b")).
		Choose(counting("a")).
		Choose(counting("b")).
		Choose(counting("b")).
		EndChoice()
	test.ExpectString(t, "b", r.Value())
	test.ExpectInt(t, 2, calls)
}

func TestChoiceReportsLastFailure(t *testing.T) {
	ab := Recognize(Seq(Str("a"), Str("b")))
	x := Recognize(Str("x"))

	r := Choice(ab, x)(New("ac"))
	test.Expect(t, r.Reason() == MissingStringAt(0, "x"), MissingStringAt(0, "x"), r.Reason())

	r = FarthestChoice(ab, x)(New("ac"))
	test.Expect(t, r.Reason() == MissingStringAt(1, "b"), MissingStringAt(1, "b"), r.Reason())

	r = BeginChoice[StringView](New("ac")).Farthest().Choose(x).Choose(ab).EndChoice()
	test.Expect(t, r.Reason() == MissingStringAt(1, "b"), MissingStringAt(1, "b"), r.Reason())
}

func TestEmptyChoice(t *testing.T) {
	r := BeginChoice[int](New("x").WithReason(ExpectEOFAt(0))).EndChoice()
	test.Assert(t, r.IsFailure() && r.Reason().IsUninitialized(), "unexpected %s", r)

	r = Choice[int]()(New(""))
	test.Assert(t, r.Reason().Kind == Uninitialized, "unexpected %s", r)
}

func TestChoiceBacktracks(t *testing.T) {
	keyword := Left(Str("if"), Negative(CharRange('a', 'z'), "identifier char"))
	ident := Map(Recognize(Repeat(CharRange('a', 'z'))), func(v StringView) string { return "ident:" + v.String() })
	token := Choice(Map(keyword, func(string) string { return "keyword" }), ident)

	r := token(New("ifx"))
	test.ExpectString(t, "ident:ifx", r.Value())
	r = token(New("if x"))
	test.ExpectString(t, "keyword", r.Value())
	test.ExpectInt(t, 2, r.State().Offset())
}
