package helpers

import (
	"fmt"
	"testing"

	"github.com/ava12/pegx/internal/test"
	"github.com/ava12/pegx/parser"
)

func expectPair(t *testing.T, r parser.Result[parser.SurroundPair], head, body, tail string, bodyStart, end int) {
	t.Helper()
	next, pair := expectSuccess(t, r)
	test.ExpectString(t, head, pair.Head.String())
	test.ExpectString(t, body, pair.Body.String())
	test.ExpectString(t, tail, pair.Tail.String())
	test.ExpectInt(t, bodyStart, pair.Body.Start())
	test.ExpectInt(t, end, next.Offset())
	test.ExpectInt(t, end, pair.Span().End)
}

func TestQuotationPairEscaped(t *testing.T) {
	samples := []struct {
		src, body string
		end       int
	}{
		{`'hello'`, `hello`, 7},
		{`''`, ``, 2},
		{`'it\'s' rest`, `it\'s`, 7},
		{`'\\'`, `\\`, 4},
		{`'при\вет'`, `при\вет`, 15},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d", i), func(t *testing.T) {
			expectPair(t, QuotationPairEscaped(parser.New(s.src), '\''), "'", s.body, "'", 1, s.end)
		})
	}

	expectReason(t, parser.MissingCharacterSetAt(6, "'"), QuotationPairEscaped(parser.New(`'hello`), '\''))
	expectReason(t, parser.MissingCharacterSetAt(5, parser.AnyLabel), QuotationPairEscaped(parser.New(`'abc\`), '\''))
	expectReason(t, parser.MissingCharacterAt(0, '\''), QuotationPairEscaped(parser.New(`hello`), '\''))
	expectReason(t, parser.MissingCharacterAt(0, '\''), QuotationPairEscaped(parser.New(``), '\''))

	expectPair(t, SurroundPairWithEscaper(parser.New(`"a^"b"`), '"', '^'), `"`, `a^"b`, `"`, 1, 6)
}

func TestQuotationPair(t *testing.T) {
	expectPair(t, QuotationPair(parser.New("«да»x"), '«', '»'), "«", "да", "»", 2, 8)
	expectPair(t, QuotationPair(parser.New("''"), '\'', '\''), "'", "", "'", 1, 2)
	expectPair(t, QuotationPair(parser.New(`'a\'b`), '\'', '\''), "'", `a\`, "'", 1, 4)

	expectReason(t, parser.MissingCharacterAt(0, '('), QuotationPair(parser.New("x)"), '(', ')'))
	expectReason(t, parser.MissingCharacterAt(3, ')'), QuotationPair(parser.New("(ab"), '(', ')'))
}

func TestQuotationPairNested(t *testing.T) {
	expectPair(t, QuotationPairNested(parser.New("```code``` rest"), '`'), "```", "code", "```", 3, 10)
	expectPair(t, QuotationPairNested(parser.New("`a``b`"), '`'), "`", "a", "`", 1, 3)
	expectPair(t, QuotationPairNested(parser.New(`"""a "b" c"""`), '"'), `"""`, `a "b" c`, `"""`, 3, 13)
	expectPair(t, QuotationPairNested(parser.New(`""x`), '"'), `"`, ``, `"`, 1, 2)

	expectReason(t, parser.MissingCharacterAt(0, '`'), QuotationPairNested(parser.New("x"), '`'))
	expectReason(t, parser.MissingStringAt(6, "```"), QuotationPairNested(parser.New("```abc"), '`'))
}

func TestSurroundPattern(t *testing.T) {
	raw := SurroundPattern{LHS: `r#"`, RHS: `"#`}
	expectPair(t, raw.Parse(parser.New(`r#"a"b"#!`)), `r#"`, `a"b`, `"#`, 3, 8)
	expectPair(t, raw.Parse(parser.New(`r#""#`)), `r#"`, ``, `"#`, 3, 5)
	expectReason(t, parser.MissingStringAt(0, `r#"`), raw.Parse(parser.New(`"a"`)))
	expectReason(t, parser.MissingStringAt(5, `"#`), raw.Parse(parser.New(`r#"ab`)))

	named := SurroundPattern{LHS: "`", RHS: "`", LHSName: "TEMPLATE_LHS", RHSName: "TEMPLATE_RHS"}
	expectPair(t, named.Parse(parser.New("`12{x}34`rest text")), "`", "12{x}34", "`", 1, 9)
	expectReason(t, parser.MissingStringAt(0, "TEMPLATE_LHS"), named.Parse(parser.New("x")))
	expectReason(t, parser.MissingStringAt(3, "TEMPLATE_RHS"), named.Parse(parser.New("`ab")))
}
