// Package charset implements Unicode character class membership using three-level bitmap tries.
//
// A Trie splits the code space into 64-character chunks:
//   - U+0000..U+07FF: flat table of chunks (Tree1Level1);
//   - U+0800..U+FFFF: chunk index per 64 characters (Tree2Level1) into shared chunks (Tree2Level2);
//   - U+10000..U+10FFFF: block index per 4096 characters (Tree3Level1) into shared blocks
//     of 64 chunk indexes (Tree3Level2) into shared chunks (Tree3Level3).
//
// Index tables may be shorter than the code space, missing entries mean "not contained".
package charset

import (
	"fmt"

	"github.com/ava12/pegx/parser"
)

const (
	chunkShift = 6
	chunkMask  = 1<<chunkShift - 1
	blockShift = 12

	tree2First = 0x800 >> chunkShift
	tree3First = 0x10000 >> blockShift

	// MaxRune is the greatest Unicode scalar value.
	MaxRune = 0x10FFFF
)

// Trie is a read-only character set. Tries are safe for concurrent use.
type Trie struct {
	Name        string
	Tree1Level1 []uint64
	Tree2Level1 []uint8
	Tree2Level2 []uint64
	Tree3Level1 []uint8
	Tree3Level2 []uint8
	Tree3Level3 []uint64
}

// ContainsUint32 tells whether code point belongs to the set; values above U+10FFFF never do.
func (t *Trie) ContainsUint32(cp uint32) bool {
	var chunk uint64
	switch {
	case cp < 0x800:
		i := int(cp >> chunkShift)
		if i >= len(t.Tree1Level1) {
			return false
		}
		chunk = t.Tree1Level1[i]

	case cp < 0x10000:
		i := int(cp>>chunkShift) - tree2First
		if i >= len(t.Tree2Level1) {
			return false
		}
		chunk = t.Tree2Level2[t.Tree2Level1[i]]

	case cp <= MaxRune:
		i := int(cp>>blockShift) - tree3First
		if i >= len(t.Tree3Level1) {
			return false
		}
		j := int(t.Tree3Level1[i])<<chunkShift + int(cp>>chunkShift&chunkMask)
		if j >= len(t.Tree3Level2) {
			return false
		}
		chunk = t.Tree3Level3[t.Tree3Level2[j]]

	default:
		return false
	}

	return chunk>>(cp&chunkMask)&1 != 0
}

// Contains tells whether character belongs to the set.
func (t *Trie) Contains(r rune) bool {
	return r >= 0 && t.ContainsUint32(uint32(r))
}

// Parse matches one character of the set, fails with MissingCharacterSet reason.
func (t *Trie) Parse(s parser.State) parser.Result[rune] {
	r, size := s.Peek()
	if size > 0 && t.Contains(r) {
		return parser.Continue(s.Advance(size), r)
	}
	return parser.Stop[rune](parser.MissingCharacterSetAt(s.Offset(), t.Name))
}

// ParseRun matches the longest non-empty run of characters of the set, fails with MissingCharacterSet reason.
func (t *Trie) ParseRun(s parser.State) parser.Result[string] {
	r := s.MatchStrIf(t.Contains, t.Name)
	if r.IsFailure() {
		return parser.Stop[string](parser.MissingCharacterSetAt(s.Offset(), t.Name))
	}
	return r
}

func (t *Trie) String() string {
	return fmt.Sprintf("CharacterSet(%s)", t.Name)
}
