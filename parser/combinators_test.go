package parser

import (
	"sync"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"

	"github.com/ava12/pegx/internal/test"
)

var digit = CharRange('0', '9')

func TestSkipAndOptional(t *testing.T) {
	ws := StrIf(unicode.IsSpace, "whitespace")
	s := New("  x")
	test.ExpectInt(t, 2, Skip(s, ws).Offset())
	test.ExpectInt(t, 0, Skip(Skip(s, ws), ws).Offset()-2)
	test.ExpectInt(t, 0, Skip(New("x"), ws).Offset())

	r := MatchOptional(New("7a"), digit)
	test.Assert(t, r.Value().Valid && r.Value().Value == '7', "unexpected %v", r.Value())
	test.ExpectInt(t, 1, r.State().Offset())

	r = MatchOptional(New("a7"), digit)
	test.Assert(t, r.IsSuccess() && !r.Value().Valid, "unexpected %s", r)
	test.ExpectInt(t, 0, r.State().Offset())
	test.Expect(t, r.Value().OrElse('0') == '0', '0', r.Value().OrElse('0'))
}

func TestRepeats(t *testing.T) {
	r := MatchRepeats(New("123a"), digit)
	if diff := cmp.Diff([]rune("123"), r.Value()); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
	test.ExpectInt(t, 3, r.State().Offset())

	r = MatchRepeats(New("a"), digit)
	test.Assert(t, r.IsSuccess() && len(r.Value()) == 0, "unexpected %s", r)
}

func TestRepeatMN(t *testing.T) {
	samples := []struct {
		text     string
		min, max int
		want     string
		reason   StopReason
	}{
		{"12345", 0, 2, "12", StopReason{}},
		{"12345", 1, -1, "12345", StopReason{}},
		{"12a", 2, 4, "12", StopReason{}},
		{"12a", 3, 4, "", ExpectRepeatsAt(1, 3, 2)},
		{"a", 1, 1, "", ExpectRepeatsAt(1, 1, 0)},
		{"a", 0, 1, "", StopReason{}},
	}

	for i, sample := range samples {
		s := New(" " + sample.text).Advance(1)
		r := MatchRepeatMN(s, sample.min, sample.max, digit)
		if r.Reason() != sample.reason {
			t.Errorf("sample #%d: expecting reason %v, got %v", i, sample.reason, r.Reason())
			continue
		}
		if r.IsSuccess() && string(r.Value()) != sample.want {
			t.Errorf("sample #%d: expecting %q, got %q", i, sample.want, string(r.Value()))
		}
	}
}

func TestLookaheadIsZeroWidth(t *testing.T) {
	samples := []string{"", "1", "a", "12"}
	for _, text := range samples {
		s := New("_" + text).Advance(1)
		pos := MatchPositive(s, digit, "digit")
		neg := MatchNegative(s, digit, "digit")
		test.Assert(t, pos.IsSuccess() != neg.IsSuccess(), "sample %q: exactly one lookahead must succeed", text)

		if pos.IsSuccess() {
			test.ExpectInt(t, 1, pos.State().Offset())
			test.Assert(t, neg.Reason() == ShouldNotBeAt(1, "digit"), "unexpected %v", neg.Reason())
		} else {
			test.ExpectInt(t, 1, neg.State().Offset())
			test.Assert(t, pos.Reason() == MustBeAt(1, "digit"), "unexpected %v", pos.Reason())
		}
	}
}

func TestSequences(t *testing.T) {
	kv := Seq(StrIf(unicode.IsLetter, "key"), Right(Char('='), StrIf(unicode.IsDigit, "value")))
	r := kv(New("x=10"))
	if diff := cmp.Diff(Pair[string, string]{"x", "10"}, r.Value()); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	r = kv(New("x=y"))
	test.Assert(t, r.Reason() == MissingStringAt(2, "value"), "unexpected %v", r.Reason())

	paren := Delimited(Char('('), StrIf(unicode.IsLetter, "name"), Char(')'))
	n := paren(New("(abc)"))
	test.ExpectString(t, "abc", n.Value())
	test.ExpectInt(t, 5, n.State().Offset())

	all := Sequence(Str("a"), Str("b"), Str("c"))
	test.Assert(t, all(New("abd")).Reason() == MissingStringAt(2, "c"), "expecting failure at 2")

	ws := StrIf(unicode.IsSpace, "ws")
	padded := Padded(ws, Str("x"))
	test.ExpectInt(t, 5, padded(New("  x  ")).State().Offset())
}

func TestRecognizeAndSpan(t *testing.T) {
	number := Recognize(Seq(Repeat(digit), Optional(Seq(Char('.'), Repeat(digit)))))
	s := New("v=3.14;").Advance(2)
	r := number(s)
	test.ExpectString(t, "3.14", r.Value().String())
	test.ExpectInt(t, 2, r.Value().Start())
	test.ExpectInt(t, 6, r.Value().End())

	sp := WithSpan(Map(StrIf(unicode.IsDigit, "digits"), func(v string) int { return len(v) }))
	x := sp(New("ab123c").Advance(2))
	if diff := cmp.Diff(Spanned[int]{3, Span{2, 5}}, x.Value()); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestLazyRecursion(t *testing.T) {
	var nested Parser[int]
	nested = Lazy(func() Parser[int] {
		return FarthestChoice(
			Map(Delimited(Char('('), nested, Char(')')), func(d int) int { return d + 1 }),
			Value(Str(""), 0),
		)
	})

	depth, e := Parse("((()))", nested)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 3, depth)

	_, e = Parse("(()", nested)
	test.ExpectErrorCode(t, ExpectEOFError, e)
}

func TestLazyConcurrentUse(t *testing.T) {
	calls := 0
	word := Lazy(func() Parser[string] {
		calls++
		return StrIf(unicode.IsLetter, "WORD")
	})

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Parse("abc", word)
		}(i)
	}
	wg.Wait()

	for _, e := range errs {
		test.ExpectNoError(t, e)
	}
	test.ExpectInt(t, 1, calls)
}
