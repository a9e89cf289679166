// Package bitset implements growable sets of non-negative runes stored as 64-bit chunks.
package bitset

import (
	"math/bits"
)

const (
	ChunkShift = 6
	ChunkSize  = 1 << ChunkShift
)

// Set is a set of runes. The zero value is an empty set.
type Set struct {
	chunks []uint64
}

func New(items ...rune) *Set {
	result := &Set{}
	return result.Add(items...)
}

func (s *Set) allocate(item rune) {
	index := int(item >> ChunkShift)
	if index < len(s.chunks) {
		return
	}

	chunks := make([]uint64, index+1, (index+1)*5/4+1)
	copy(chunks, s.chunks)
	s.chunks = chunks
}

func bitMask(item rune) uint64 {
	return 1 << (uint(item) & (ChunkSize - 1))
}

// Add adds items, negative items are ignored.
func (s *Set) Add(items ...rune) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}

		s.allocate(item)
		s.chunks[item>>ChunkShift] |= bitMask(item)
	}
	return s
}

// AddRange adds inclusive range [lo, hi].
func (s *Set) AddRange(lo, hi rune) *Set {
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		return s
	}

	s.allocate(hi)
	for item := lo; item <= hi; item++ {
		if item&(ChunkSize-1) == 0 && hi-item >= ChunkSize-1 {
			s.chunks[item>>ChunkShift] = ^uint64(0)
			item += ChunkSize - 1
			continue
		}

		s.chunks[item>>ChunkShift] |= bitMask(item)
	}
	return s
}

func (s *Set) Contains(item rune) bool {
	if item < 0 || int(item>>ChunkShift) >= len(s.chunks) {
		return false
	}
	return s.chunks[item>>ChunkShift]&bitMask(item) != 0
}

// Chunk returns bits for items [index*64, index*64+63], zero for chunks beyond the set.
func (s *Set) Chunk(index int) uint64 {
	if index < 0 || index >= len(s.chunks) {
		return 0
	}
	return s.chunks[index]
}

// Len returns number of items.
func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount64(chunk)
	}
	return result
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []rune {
	result := make([]rune, 0, s.Len())
	for i, chunk := range s.chunks {
		base := rune(i << ChunkShift)
		for chunk != 0 {
			result = append(result, base+rune(bits.TrailingZeros64(chunk)))
			chunk &= chunk - 1
		}
	}
	return result
}

// Union adds all items of t to s.
func (s *Set) Union(t *Set) *Set {
	if len(t.chunks) > len(s.chunks) {
		s.allocate(rune(len(t.chunks)<<ChunkShift) - 1)
	}
	for i, chunk := range t.chunks {
		s.chunks[i] |= chunk
	}
	return s
}

// Subtract removes all items of t from s.
func (s *Set) Subtract(t *Set) *Set {
	for i := 0; i < len(s.chunks) && i < len(t.chunks); i++ {
		s.chunks[i] &= ^t.chunks[i]
	}
	return s
}

// Intersect keeps only items present in t.
func (s *Set) Intersect(t *Set) *Set {
	for i := range s.chunks {
		if i < len(t.chunks) {
			s.chunks[i] &= t.chunks[i]
		} else {
			s.chunks[i] = 0
		}
	}
	return s
}
