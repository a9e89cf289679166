package triegen

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ava12/pegx/charset"
	"github.com/ava12/pegx/internal/test"
)

const yamlConfig = `
package: tables
sets:
  - name: Greekish
    include: [Greek]
    ranges: ["0030-0039", "U+005F"]
    exclude: [Lu]
  - name: ID_Start
    var: IdentStart
    include: [ID_Start]
    exclude_ranges: ["4E00..9FFF"]
`

const tomlConfig = `
package = "tables"

[[sets]]
name = "Greekish"
include = ["Greek"]
ranges = ["0030-0039", "U+005F"]
exclude = ["Lu"]

[[sets]]
name = "ID_Start"
var = "IdentStart"
include = ["ID_Start"]
exclude_ranges = ["4E00..9FFF"]
`

func TestLoadConfig(t *testing.T) {
	expected := &Config{
		Package: "tables",
		Sets: []SetConfig{
			{Name: "Greekish", Include: []string{"Greek"}, Ranges: []string{"0030-0039", "U+005F"}, Exclude: []string{"Lu"}},
			{Name: "ID_Start", Var: "IdentStart", Include: []string{"ID_Start"}, ExcludeRanges: []string{"4E00..9FFF"}},
		},
	}

	for _, name := range []string{"sets.yaml", "sets.toml"} {
		content := yamlConfig
		if strings.HasSuffix(name, ".toml") {
			content = tomlConfig
		}

		cfg, e := LoadConfig(name, []byte(content))
		test.ExpectNoError(t, e)
		if diff := cmp.Diff(expected, cfg, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s (-want, +got)\n%s", name, diff)
		}
	}

	_, e := LoadConfig("sets.json", []byte("{}"))
	test.ExpectErrorCode(t, UnknownFormatError, e)
	_, e = LoadConfig("sets.yml", []byte("package: x\nunknown: 1\n"))
	test.ExpectErrorCode(t, ConfigError, e)
	_, e = LoadConfig("sets.toml", []byte("package = \"x\"\nunknown = 1\n"))
	test.ExpectErrorCode(t, ConfigError, e)
	_, e = LoadConfig("sets.toml", []byte("package = "))
	test.ExpectErrorCode(t, ConfigError, e)
}

func TestParseRange(t *testing.T) {
	samples := []struct {
		text   string
		lo, hi rune
		valid  bool
	}{
		{"0041", 0x41, 0x41, true},
		{" U+0041 ", 0x41, 0x41, true},
		{"u+0041..005a", 0x41, 0x5A, true},
		{"0041-005A", 0x41, 0x5A, true},
		{"10FFFF", 0x10FFFF, 0x10FFFF, true},
		{"110000", 0, 0, false},
		{"005A-0041", 0, 0, false},
		{"zz", 0, 0, false},
		{"0041..", 0, 0, false},
		{"0041 005A", 0, 0, false},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d", i), func(t *testing.T) {
			lo, hi, e := ParseRange(s.text)
			if !s.valid {
				test.Assert(t, e != nil, "expecting error for %q", s.text)
				return
			}

			test.ExpectNoError(t, e)
			test.ExpectInt(t, int(s.lo), int(lo))
			test.ExpectInt(t, int(s.hi), int(hi))
		})
	}
}

func TestGenerate(t *testing.T) {
	cfg, e := LoadConfig("sets.yaml", []byte(yamlConfig))
	test.ExpectNoError(t, e)
	tries, e := Generate(cfg)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 2, len(tries))

	greek := tries[0]
	test.ExpectString(t, "Greekish", greek.Var)
	for _, r := range "αω5_" {
		test.Assert(t, greek.Contains(r), "%q must be contained", r)
	}
	for _, r := range "ΑΩaA-" {
		test.Assert(t, !greek.Contains(r), "%q must not be contained", r)
	}

	ident := tries[1]
	test.ExpectString(t, "IdentStart", ident.Var)
	test.ExpectString(t, "ID_Start", ident.Name)
	test.Assert(t, ident.Contains('x') && ident.Contains('я'), "letters are ID_Start")
	test.Assert(t, !ident.Contains('字') && ident.Contains(0x20000), "only BMP ideographs are excluded")

	cfg.Sets[0].Include = []string{"NoSuchTable"}
	_, e = Generate(cfg)
	test.ExpectErrorCode(t, UnknownTableError, e)

	cfg.Sets[0].Include = nil
	cfg.Sets[0].Ranges = []string{"0041-"}
	_, e = Generate(cfg)
	test.ExpectErrorCode(t, InvalidRangeError, e)

	cfg.Sets[0].Ranges = nil
	_, e = Generate(cfg)
	test.ExpectErrorCode(t, EmptySetError, e)

	cfg.Sets[0].Var = "not a name"
	_, e = Generate(cfg)
	test.ExpectErrorCode(t, InvalidNameError, e)
}

func TestWithin(t *testing.T) {
	sc := SetConfig{Name: "Letters", Include: []string{"L"}, Ranges: []string{"0030..0039"}, Within: []string{"ASCII", "Greek"}}
	set, e := sc.Set()
	test.ExpectNoError(t, e)
	for _, r := range "azAZ09αΩ" {
		test.Assert(t, set.Contains(r), "%q must be contained", r)
	}
	for _, r := range "_яé字" {
		test.Assert(t, !set.Contains(r), "%q must not be contained", r)
	}

	sc.Within = []string{"Han"}
	sc.Exclude = []string{"L"}
	_, e = sc.Set()
	test.ExpectErrorCode(t, EmptySetError, e)

	sc.Within = []string{"Nope"}
	_, e = sc.Set()
	test.ExpectErrorCode(t, UnknownTableError, e)
}

func TestVarName(t *testing.T) {
	samples := map[string]string{
		"ID_Start":    "IDStart",
		"White_Space": "WhiteSpace",
		"ident chars": "IdentChars",
		"1abc":        "Set1abc",
		"":            "Set",
	}
	for name, expected := range samples {
		test.ExpectString(t, expected, VarName(name))
	}
}

func TestRenderGo(t *testing.T) {
	cfg, e := LoadConfig("sets.toml", []byte(tomlConfig))
	test.ExpectNoError(t, e)
	tries, e := Generate(cfg)
	test.ExpectNoError(t, e)

	src, e := RenderGo(cfg.Package, tries)
	test.ExpectNoError(t, e)
	test.Assert(t, strings.HasPrefix(string(src), "// Code generated with pegxgen.\n"), "missing header")

	file, e := goparser.ParseFile(token.NewFileSet(), "tables.go", src, 0)
	test.ExpectNoError(t, e)
	test.ExpectString(t, "tables", file.Name.Name)

	var vars []string
	for _, decl := range file.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.VAR {
			for _, spec := range gd.Specs {
				vars = append(vars, spec.(*ast.ValueSpec).Names[0].Name)
			}
		}
	}
	if diff := cmp.Diff([]string{"Greekish", "IdentStart"}, vars); diff != "" {
		t.Fatalf("(-want, +got)\n%s", diff)
	}

	_, e = RenderGo("bad-name", tries)
	test.ExpectErrorCode(t, InvalidNameError, e)
}

func TestRenderJSON(t *testing.T) {
	cfg, e := LoadConfig("sets.yaml", []byte(yamlConfig))
	test.ExpectNoError(t, e)
	tries, e := Generate(cfg)
	test.ExpectNoError(t, e)

	content, e := RenderJSON(tries)
	test.ExpectNoError(t, e)
	loaded, e := LoadJSON(content)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, len(tries), len(loaded))
	for i, l := range loaded {
		if diff := cmp.Diff(tries[i].Trie, l, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("trie #%d (-want, +got)\n%s", i, diff)
		}
	}

	_, e = LoadJSON([]byte(`[{"Name": "broken", "Tree2Level1": "AQ=="}]`))
	test.Assert(t, e != nil, "expecting validation error")

	_, e = LoadJSON([]byte(`[null]`))
	test.ExpectErrorCode(t, charset.InvalidTrieError, e)
}
