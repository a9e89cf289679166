// Package source defines named source text used to convert byte offsets to line and column numbers.
//
// Line starts are computed lazily on the first lookup, so sources that never produce
// diagnostics cost nothing beyond the text itself.
package source

import (
	"strings"
	"unicode/utf8"
)

// Source contains source name and text.
type Source struct {
	name          string
	content       string
	lineStarts    []int
	prevLineIndex int
}

// New creates new source. name may be empty.
func New(name, content string) *Source {
	return &Source{name: name, content: content, prevLineIndex: -1}
}

// Name returns source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns source text.
func (s *Source) Content() string {
	return s.content
}

// Len returns text length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

func (s *Source) lines() []int {
	if s.lineStarts != nil {
		return s.lineStarts
	}

	lineCnt := strings.Count(s.content, "\n") + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(s.content) && j < lineCnt; i++ {
		if s.content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}
	return s.lineStarts
}

// LineCol converts byte offset to 1-based line and column numbers.
// Columns are counted in code points. Out of range offsets are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	lineStarts := s.lines()
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCountInString(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and byte column to byte offset.
// Returns 0 for non-positive arguments, result is clamped to text length.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	lineStarts := s.lines()
	l := len(s.content)
	if line > len(lineStarts) {
		return l
	}

	res := lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

func (s *Source) findLineIndex(pos int) int {
	lineStarts := s.lineStarts
	if s.prevLineIndex >= 0 && lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(lineStarts) - 1
		for lineIndex <= last && lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(lineStarts) - 1
	index := 0
	if s.prevLineIndex >= 0 {
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := lineStarts[index]
		if lineStart == pos {
			s.prevLineIndex = index
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = index
	return index
}

// Pos is a position in source text. Implements pegx.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position for given byte offset, src may be nil.
func NewPos(src *Source, pos int) Pos {
	res := Pos{src: src, pos: pos}
	if src != nil {
		res.line, res.col = src.LineCol(pos)
	}
	return res
}

// Source returns source or nil.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

// Pos returns byte offset.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns 1-based line number or 0 if source is not defined.
func (p Pos) Line() int {
	return p.line
}

// Col returns 1-based column number or 0 if source is not defined.
func (p Pos) Col() int {
	return p.col
}
