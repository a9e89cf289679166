/*
pegxgen is a console utility building character set tries.
Usage is

	pegxgen trie [-j] [-p <name>] [-o <name>] <file>
	pegxgen contains [-f <file>] <set> <char>...
	pegxgen sets

trie builds sets described in YAML or TOML file <file> (see package triegen)
and writes them as Go source or JSON:

-j flag instructs pegxgen to output JSON file instead of Go source;

-o <name> defines output file name, default is the name of input file with .go or .json suffix;

-p <name> defines Go package name, default is the package from configuration or directory name of output file.

contains tells whether characters belong to the set; characters are given literally
or as code points (U+0041). The set is resolved with charset.Lookup or loaded
from JSON file produced by "trie -j".

sets lists known set names.

-v flag (repeatable) increases log verbosity.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ava12/pegx/charset"
	"github.com/ava12/pegx/triegen"
)

var log = commonlog.GetLogger("pegx.pegxgen")

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:          "pegxgen",
		Short:        "Character set trie generator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newTrieCmd())
	rootCmd.AddCommand(newContainsCmd())
	rootCmd.AddCommand(newSetsCmd())

	if e := rootCmd.Execute(); e != nil {
		os.Exit(3)
	}
}

func newTrieCmd() *cobra.Command {
	var (
		generateJson             bool
		outFileName, packageName string
	)

	cmd := &cobra.Command{
		Use:   "trie [-j] [-p <name>] [-o <name>] <file>",
		Short: "Build character set tries from YAML or TOML configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrie(args[0], outFileName, packageName, generateJson)
		},
	}

	cmd.Flags().BoolVarP(&generateJson, "json", "j", false, "output JSON instead of Go")
	cmd.Flags().StringVarP(&outFileName, "output", "o", "", "output file name, default is the name of input file with .go or .json suffix")
	cmd.Flags().StringVarP(&packageName, "package", "p", "", "Go package name, default is configured package or dir name of output file")

	return cmd
}

func runTrie(inFileName, outFileName, packageName string, generateJson bool) error {
	if outFileName == "" {
		ext := filepath.Ext(inFileName)
		outFileName = inFileName[:len(inFileName)-len(ext)]
		if generateJson {
			outFileName += ".json"
		} else {
			outFileName += ".go"
		}
	}

	src, e := os.ReadFile(inFileName)
	if e != nil {
		return e
	}

	cfg, e := triegen.LoadConfig(inFileName, src)
	if e != nil {
		return e
	}

	tries, e := triegen.Generate(cfg)
	if e != nil {
		return e
	}

	var content []byte
	if generateJson {
		content, e = triegen.RenderJSON(tries)
	} else {
		if packageName == "" {
			packageName = cfg.Package
		}
		if packageName == "" {
			packageName, e = dirName(outFileName)
			if e != nil {
				return e
			}
		}
		content, e = triegen.RenderGo(packageName, tries)
	}
	if e != nil {
		return e
	}

	log.Noticef("writing %d sets to %s", len(tries), outFileName)
	return os.WriteFile(outFileName, content, 0o666)
}

func dirName(fileName string) (string, error) {
	dir, e := filepath.Abs(fileName)
	if e != nil {
		return "", e
	}

	dir, _ = filepath.Split(dir)
	_, name := filepath.Split(dir[:len(dir)-1])
	return name, nil
}

func newContainsCmd() *cobra.Command {
	var jsonFileName string

	cmd := &cobra.Command{
		Use:   "contains [-f <file>] <set> <char>...",
		Short: "Tell whether characters belong to a character set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, e := findSet(args[0], jsonFileName)
			if e != nil {
				return e
			}

			for _, arg := range args[1:] {
				r, e := parseChar(arg)
				if e != nil {
					return e
				}

				fmt.Fprintf(cmd.OutOrStdout(), "U+%04X %q %s: %v\n", r, r, t.Name, t.Contains(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&jsonFileName, "file", "f", "", "JSON file produced by \"trie -j\"")

	return cmd
}

func findSet(name, jsonFileName string) (*charset.Trie, error) {
	if jsonFileName == "" {
		return charset.Lookup(name)
	}

	content, e := os.ReadFile(jsonFileName)
	if e != nil {
		return nil, e
	}

	tries, e := triegen.LoadJSON(content)
	if e != nil {
		return nil, fmt.Errorf("%s: %w", jsonFileName, e)
	}

	for _, t := range tries {
		if t.Name == name {
			log.Debugf("set %s loaded from %s", name, jsonFileName)
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s: no set %s", jsonFileName, name)
}

func parseChar(arg string) (rune, error) {
	if r, size := utf8.DecodeRuneInString(arg); size == len(arg) && r != utf8.RuneError {
		return r, nil
	}

	lo, hi, e := triegen.ParseRange(arg)
	if e != nil {
		return 0, fmt.Errorf("invalid character %q: %w", arg, e)
	}
	if lo != hi {
		return 0, fmt.Errorf("invalid character %q: range is not allowed", arg)
	}
	return lo, nil
}

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List known character set names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := charset.Names()
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
