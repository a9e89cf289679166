// Package triegen builds character set tries from declarative configuration
// and renders them as Go source or JSON.
//
// Configuration lists sets, each one is a union of named Unicode tables (see charset.Table)
// and explicit code point ranges, optionally restricted to characters of "within" tables,
// minus excluded tables and ranges:
//
//	package: tables
//	sets:
//	  - name: Ident
//	    var: IdentChars
//	    include: [L, Nd]
//	    ranges: ["005F", "U+0024"]
//	    within: [Latin, Greek, Nd]
//	    exclude: [Han]
//	    exclude_ranges: ["00AA..00BA"]
package triegen

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/rangetable"
	"gopkg.in/yaml.v3"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/charset"
	"github.com/ava12/pegx/internal/bitset"
	"github.com/ava12/pegx/parser"
)

const (
	UnknownFormatError = pegx.GeneratorErrors + iota
	ConfigError
	InvalidRangeError
	UnknownTableError
	InvalidNameError
	EmptySetError
)

func unknownFormatError(name string) *pegx.Error {
	return pegx.FormatError(UnknownFormatError, "unknown configuration format: %s (expecting .yaml, .yml, or .toml)", name)
}

func configError(name string, e error) *pegx.Error {
	return pegx.FormatError(ConfigError, "cannot load %s: %s", name, e.Error())
}

func invalidRangeError(set, text string, e error) *pegx.Error {
	return pegx.FormatError(InvalidRangeError, "set %s: invalid range %q: %s", set, text, e.Error())
}

func unknownTableError(set, table string) *pegx.Error {
	return pegx.FormatError(UnknownTableError, "set %s: unknown table %s", set, table)
}

func emptySetError(set string) *pegx.Error {
	return pegx.FormatError(EmptySetError, "set %s has no characters", set)
}

func invalidNameError(kind, name string) *pegx.Error {
	return pegx.FormatError(InvalidNameError, "invalid %s name: %q", kind, name)
}

type Config struct {
	Package string      `yaml:"package" toml:"package" json:"package"`
	Sets    []SetConfig `yaml:"sets" toml:"sets" json:"sets"`
}

type SetConfig struct {
	Name string `yaml:"name" toml:"name" json:"name"`

	// Var is the Go variable name, derived from Name if empty.
	Var string `yaml:"var" toml:"var" json:"var,omitempty"`

	Include       []string `yaml:"include" toml:"include" json:"include,omitempty"`
	Ranges        []string `yaml:"ranges" toml:"ranges" json:"ranges,omitempty"`
	// Within restricts the set to characters of listed tables.
	Within        []string `yaml:"within" toml:"within" json:"within,omitempty"`
	Exclude       []string `yaml:"exclude" toml:"exclude" json:"exclude,omitempty"`
	ExcludeRanges []string `yaml:"exclude_ranges" toml:"exclude_ranges" json:"exclude_ranges,omitempty"`
}

// LoadConfig decodes YAML or TOML configuration, format is chosen by name extension.
func LoadConfig(name string, content []byte) (*Config, error) {
	cfg := &Config{}
	var e error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		e = dec.Decode(cfg)
	case ".toml":
		var md toml.MetaData
		md, e = toml.Decode(string(content), cfg)
		if e == nil && len(md.Undecoded()) > 0 {
			e = pegx.FormatError(ConfigError, "unknown key %s", md.Undecoded()[0].String())
		}
	default:
		return nil, unknownFormatError(name)
	}

	if e != nil {
		return nil, configError(name, e)
	}
	return cfg, nil
}

// Set resolves configured character set.
func (sc *SetConfig) Set() (*bitset.Set, error) {
	set, e := sc.union(sc.Include, sc.Ranges)
	if e != nil {
		return nil, e
	}

	if len(sc.Within) > 0 {
		within, e := sc.union(sc.Within, nil)
		if e != nil {
			return nil, e
		}
		set.Intersect(within)
	}

	excluded, e := sc.union(sc.Exclude, sc.ExcludeRanges)
	if e != nil {
		return nil, e
	}
	if set.Subtract(excluded).IsEmpty() {
		return nil, emptySetError(sc.Name)
	}
	return set, nil
}

func (sc *SetConfig) union(names, ranges []string) (*bitset.Set, error) {
	set := bitset.New()
	for _, name := range names {
		t, found := charset.Table(name)
		if !found {
			return nil, unknownTableError(sc.Name, name)
		}
		part := bitset.New()
		rangetable.Visit(t, func(r rune) {
			part.Add(r)
		})
		set.Union(part)
	}
	return set, sc.addRanges(set, ranges)
}

func (sc *SetConfig) addRanges(set *bitset.Set, ranges []string) error {
	for _, text := range ranges {
		lo, hi, e := ParseRange(text)
		if e != nil {
			return invalidRangeError(sc.Name, text, e)
		}
		set.AddRange(lo, hi)
	}
	return nil
}

// Table resolves configured set to range table.
func (sc *SetConfig) Table() (*unicode.RangeTable, error) {
	set, e := sc.Set()
	if e != nil {
		return nil, e
	}
	return rangetable.New(set.ToSlice()...), nil
}

// Build resolves configured set to trie.
func (sc *SetConfig) Build() (*charset.Trie, error) {
	table, e := sc.Table()
	if e != nil {
		return nil, e
	}
	return charset.Build(sc.Name, table)
}

var codePoint parser.Parser[rune] = func(s parser.State) parser.Result[rune] {
	s = parser.Skip(s, parser.StrInsensitive("U+"))
	r := s.MatchStrIf(func(c rune) bool {
		return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	}, "HEX_DIGITS")
	if r.IsFailure() {
		return parser.Propagate[rune](r)
	}

	value, e := strconv.ParseUint(r.Value(), 16, 32)
	if e != nil || value > charset.MaxRune {
		return parser.Stop[rune](parser.CustomAt(s.Offset(), r.State().Offset(), "code point is beyond U+10FFFF"))
	}
	return parser.Continue(r.State(), rune(value))
}

var codeRange = parser.Seq(
	codePoint,
	parser.Optional(parser.Right(parser.Choice(parser.Str(".."), parser.Str("-")), codePoint)),
)

// ParseRange parses single code point or inclusive range: "0041", "U+0041", "0041..005A", "0041-005A".
func ParseRange(text string) (lo, hi rune, e error) {
	p, e := parser.Parse(strings.TrimSpace(text), codeRange)
	if e != nil {
		return 0, 0, e
	}

	lo = p.First
	hi = p.Second.OrElse(lo)
	if hi < lo {
		return 0, 0, parser.CustomAt(0, len(text), "range end U+%04X is less than start U+%04X", hi, lo)
	}
	return lo, hi, nil
}
