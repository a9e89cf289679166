package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ava12/pegx/internal/test"
)

func TestParseChar(t *testing.T) {
	samples := map[string]rune{"a": 'a', "я": 'я', "U+0041": 'A', "1F600": 0x1F600, "5": '5'}
	for arg, expected := range samples {
		r, e := parseChar(arg)
		test.ExpectNoError(t, e)
		test.ExpectInt(t, int(expected), int(r))
	}

	for _, arg := range []string{"0041..0042", "xyz", ""} {
		_, e := parseChar(arg)
		test.Assert(t, e != nil, "expecting error for %q", arg)
	}
}

func TestTrieAndContains(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "sets.yaml")
	test.ExpectNoError(t, os.WriteFile(config, []byte("sets:\n  - name: Digits\n    include: [Nd]\n"), 0o666))

	test.ExpectNoError(t, runTrie(config, "", "tables", false))
	src, e := os.ReadFile(filepath.Join(dir, "sets.go"))
	test.ExpectNoError(t, e)
	test.Assert(t, bytes.Contains(src, []byte("package tables\n")), "expecting package clause")
	test.Assert(t, bytes.Contains(src, []byte("var Digits = &charset.Trie{")), "expecting Digits variable")

	jsonFile := filepath.Join(dir, "digits.json")
	test.ExpectNoError(t, runTrie(config, jsonFile, "", true))

	cmd := newContainsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-f", jsonFile, "Digits", "7", "x", "U+0661"})
	test.ExpectNoError(t, cmd.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	test.ExpectInt(t, 3, len(lines))
	test.ExpectString(t, "U+0037 '7' Digits: true", lines[0])
	test.ExpectString(t, "U+0078 'x' Digits: false", lines[1])
	test.ExpectString(t, "U+0661 '١' Digits: true", lines[2])

	cmd = newContainsCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-f", jsonFile, "Letters", "a"})
	test.Assert(t, cmd.Execute() != nil, "expecting missing set error")
}
