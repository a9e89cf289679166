package pegx_test

import (
	"fmt"

	"github.com/ava12/pegx/parser"
	"github.com/ava12/pegx/pattern"
	"github.com/ava12/pegx/source"
	"github.com/ava12/pegx/trace"
)

var (
	spaces = parser.StrIf(func(c rune) bool { return c == ' ' || c == '\t' || c == '\r' }, "SPACE")
	nl     = parser.Char('\n')
)

func tok[T any](p parser.Parser[T]) parser.Parser[T] {
	return parser.Left(p, parser.Optional(spaces))
}

func configParser(result map[string]string) parser.Parser[[]struct{}] {
	prefix := ""
	section := parser.Delimited(
		tok(parser.Char('[')),
		tok(parser.Match(pattern.MustCompile(`[a-z]+(?:\.[a-z]+)*`), "SECTION_NAME")),
		tok(parser.Char(']')),
	)
	value := parser.Seq(
		tok(parser.Match(pattern.MustCompile(`[a-z]+`), "NAME")),
		parser.Right(tok(parser.Char('=')), parser.Optional(parser.StrUntil(func(c rune) bool { return c == '\n' }, "VALUE"))),
	)

	line := parser.Choice(
		parser.Map(section, func(name string) struct{} {
			prefix = name + "."
			return struct{}{}
		}),
		parser.Map(value, func(p parser.Pair[string, parser.Option[string]]) struct{} {
			result[prefix+p.First] = p.Second.OrElse("")
			return struct{}{}
		}),
	)

	return parser.Repeat(parser.Right(parser.Optional(spaces), parser.Choice(parser.Omit(nl), parser.Left(line, nl))))
}

func Example() {
	input := `
foo = hello
bar = world
[sec]
baz =
[sec.subsec]
qux = !
`
	result := make(map[string]string)
	_, e := parser.ParseSource(source.New("input", input), configParser(result))
	if e == nil {
		fmt.Println(result)
	} else {
		fmt.Println(e)
	}
	// Output: map[bar:world foo:hello sec.baz: sec.subsec.qux:!]
}

func Example_error() {
	input := "foo = hello\n[sec\n"
	_, e := parser.ParseSource(source.New("input", input), configParser(map[string]string{}))
	fmt.Println(e)
	// Output: expect end of file in input at line 2 col 1
}

func Example_rules() {
	digits := parser.Rule(1, "digits", parser.StrIf(func(c rune) bool { return c >= '0' && c <= '9' }, "DIGITS"))
	sum := parser.Rule(0, "sum", parser.Seq(digits, parser.Repeat(parser.Right(parser.Char('+'), digits))))

	recorder := trace.NewRecorder()
	_, e := parser.ParseState(parser.New("12+345").WithObserver(recorder), sum)
	if e != nil {
		fmt.Println(e)
		return
	}

	for _, n := range recorder.Nodes() {
		fmt.Println(n.Depth, n.Name, n.Span)
	}
	// Output:
	// 0 sum 0..6
	// 1 digits 0..2
	// 1 digits 3..6
}
