package charset

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

var derived = map[string]func() *unicode.RangeTable{
	"ASCII": func() *unicode.RangeTable {
		return &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0, Hi: 0x7f, Stride: 1}}, LatinOffset: 1}
	},
	"ID_Start": func() *unicode.RangeTable {
		return subtract(
			rangetable.Merge(unicode.L, unicode.Nl, unicode.Other_ID_Start),
			unicode.Pattern_Syntax, unicode.Pattern_White_Space,
		)
	},
	"ID_Continue": func() *unicode.RangeTable {
		return subtract(
			rangetable.Merge(
				unicode.L, unicode.Nl, unicode.Other_ID_Start,
				unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue,
			),
			unicode.Pattern_Syntax, unicode.Pattern_White_Space,
		)
	},
}

func subtract(table *unicode.RangeTable, excluded ...*unicode.RangeTable) *unicode.RangeTable {
	set := tableSet(table)
	for _, t := range excluded {
		set.Subtract(tableSet(t))
	}
	return rangetable.New(set.ToSlice()...)
}

// Table resolves character set name to range table. Known names are
// Unicode general categories ("L", "Nd"), scripts ("Greek"), properties ("White_Space"),
// and derived sets "ASCII", "ID_Start", "ID_Continue".
func Table(name string) (*unicode.RangeTable, bool) {
	if f := derived[name]; f != nil {
		return f(), true
	}

	for _, tables := range []map[string]*unicode.RangeTable{unicode.Categories, unicode.Scripts, unicode.Properties} {
		if t := tables[name]; t != nil {
			return t, true
		}
	}
	return nil, false
}

// Names returns all names accepted by Table, unsorted.
func Names() []string {
	res := make([]string, 0, len(derived)+len(unicode.Categories)+len(unicode.Scripts)+len(unicode.Properties))
	for name := range derived {
		res = append(res, name)
	}
	for _, tables := range []map[string]*unicode.RangeTable{unicode.Categories, unicode.Scripts, unicode.Properties} {
		for name := range tables {
			res = append(res, name)
		}
	}
	return res
}

var (
	cacheLock sync.Mutex
	cache     = make(map[string]*Trie)
)

// Lookup returns trie for named character set, see Table for known names.
// Tries are built on the first request and kept for the process lifetime.
func Lookup(name string) (*Trie, error) {
	cacheLock.Lock()
	defer cacheLock.Unlock()

	if t := cache[name]; t != nil {
		return t, nil
	}

	table, found := Table(name)
	if !found {
		return nil, unknownSetError(name)
	}

	t, e := Build(name, table)
	if e != nil {
		return nil, e
	}

	cache[name] = t
	return t, nil
}

// MustLookup is like Lookup but panics on error. Intended for package-level variables.
func MustLookup(name string) *Trie {
	t, e := Lookup(name)
	if e != nil {
		panic(e)
	}
	return t
}
