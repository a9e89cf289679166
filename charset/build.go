package charset

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/internal/bitset"
)

const (
	TooManyChunksError = pegx.CharsetErrors + iota
	UnknownSetError
	InvalidTrieError
)

func tooManyChunksError(name, part string) *pegx.Error {
	return pegx.FormatError(TooManyChunksError, "character set %s: too many distinct %s, 256 max", name, part)
}

func unknownSetError(name string) *pegx.Error {
	return pegx.FormatError(UnknownSetError, "unknown character set: %s", name)
}

func invalidTrieError(name, msg string, params ...any) *pegx.Error {
	return pegx.FormatError(InvalidTrieError, "character set %s: "+msg, append([]any{name}, params...)...)
}

const (
	tree1Len = tree2First
	tree2Len = 0x10000>>chunkShift - tree2First
	tree3Len = (MaxRune+1)>>blockShift - tree3First
)

type chunkIndex struct {
	chunks []uint64
	index  map[uint64]uint8
}

// newChunkIndex creates index where entry 0 is the empty chunk.
func newChunkIndex() *chunkIndex {
	return &chunkIndex{[]uint64{0}, map[uint64]uint8{0: 0}}
}

func (ci *chunkIndex) add(chunk uint64) (uint8, bool) {
	if i, found := ci.index[chunk]; found {
		return i, true
	}

	if len(ci.chunks) > 0xff {
		return 0, false
	}

	i := uint8(len(ci.chunks))
	ci.chunks = append(ci.chunks, chunk)
	ci.index[chunk] = i
	return i, true
}

// Build creates trie containing all characters of the table.
func Build(name string, table *unicode.RangeTable) (*Trie, error) {
	return build(name, tableSet(table))
}

func tableSet(table *unicode.RangeTable) *bitset.Set {
	set := bitset.New()
	rangetable.Visit(table, func(r rune) {
		set.Add(r)
	})
	return set
}

func build(name string, set *bitset.Set) (*Trie, error) {
	t := &Trie{Name: name}

	t.Tree1Level1 = make([]uint64, tree1Len)
	for i := range t.Tree1Level1 {
		t.Tree1Level1[i] = set.Chunk(i)
	}

	leaves := newChunkIndex()
	t.Tree2Level1 = make([]uint8, tree2Len)
	for i := range t.Tree2Level1 {
		leaf, ok := leaves.add(set.Chunk(tree2First + i))
		if !ok {
			return nil, tooManyChunksError(name, "chunks in plane 0")
		}
		t.Tree2Level1[i] = leaf
	}
	t.Tree2Level2 = leaves.chunks

	leaves = newChunkIndex()
	var block [1 << chunkShift]uint8
	blocks := map[[1 << chunkShift]uint8]uint8{block: 0}
	t.Tree3Level2 = make([]uint8, len(block))
	t.Tree3Level1 = make([]uint8, tree3Len)
	for i := range t.Tree3Level1 {
		first := (tree3First + i) << (blockShift - chunkShift)
		for j := range block {
			leaf, ok := leaves.add(set.Chunk(first + j))
			if !ok {
				return nil, tooManyChunksError(name, "chunks in planes 1-16")
			}
			block[j] = leaf
		}

		index, found := blocks[block]
		if !found {
			if len(blocks) > 0xff {
				return nil, tooManyChunksError(name, "blocks in planes 1-16")
			}
			index = uint8(len(blocks))
			blocks[block] = index
			t.Tree3Level2 = append(t.Tree3Level2, block[:]...)
		}
		t.Tree3Level1[i] = index
	}
	t.Tree3Level3 = leaves.chunks

	t.Tree1Level1 = trimZeros(t.Tree1Level1)
	t.Tree2Level1 = trimZeros(t.Tree2Level1)
	t.Tree3Level1 = trimZeros(t.Tree3Level1)
	return t, nil
}

func trimZeros[T uint8 | uint64](items []T) []T {
	n := len(items)
	for n > 0 && items[n-1] == 0 {
		n--
	}
	return items[:n]
}

// Validate checks table sizes and indexes, e.g. for tries loaded from JSON.
func (t *Trie) Validate() error {
	if t == nil {
		return pegx.FormatError(InvalidTrieError, "missing character set")
	}
	if len(t.Tree1Level1) > tree1Len {
		return invalidTrieError(t.Name, "Tree1Level1 has %d entries, %d max", len(t.Tree1Level1), tree1Len)
	}
	if len(t.Tree2Level1) > tree2Len {
		return invalidTrieError(t.Name, "Tree2Level1 has %d entries, %d max", len(t.Tree2Level1), tree2Len)
	}
	if len(t.Tree3Level1) > tree3Len {
		return invalidTrieError(t.Name, "Tree3Level1 has %d entries, %d max", len(t.Tree3Level1), tree3Len)
	}

	for i, leaf := range t.Tree2Level1 {
		if int(leaf) >= len(t.Tree2Level2) {
			return invalidTrieError(t.Name, "Tree2Level1[%d] is out of range", i)
		}
	}
	for i, child := range t.Tree3Level1 {
		if (int(child)+1)<<chunkShift > len(t.Tree3Level2) {
			return invalidTrieError(t.Name, "Tree3Level1[%d] is out of range", i)
		}
	}
	for i, leaf := range t.Tree3Level2 {
		if int(leaf) >= len(t.Tree3Level3) {
			return invalidTrieError(t.Name, "Tree3Level2[%d] is out of range", i)
		}
	}
	return nil
}

// Table converts trie back to range table.
func (t *Trie) Table() *unicode.RangeTable {
	set := bitset.New()
	for cp := rune(0); cp <= MaxRune; cp++ {
		if t.Contains(cp) {
			set.Add(cp)
		}
	}
	return rangetable.New(set.ToSlice()...)
}
