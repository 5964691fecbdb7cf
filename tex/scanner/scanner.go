// scanner.go -
// Copyright (C) 2018  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package scanner provides rewindable character sources for TeX input
// files, together with a bounded stack of such sources which models
// nested \input and \include file inclusion.
package scanner

import "golang.org/x/crypto/sha3"

// Source is a rewindable cursor over one in-memory document body.  It
// supports unbounded single-character pushback and forward lookahead
// without consumption.  The whole document is loaded eagerly; Source
// never reads from disk.
type Source struct {
	buf      []rune
	pos      int
	pushback []rune

	line        int
	atLineStart bool

	sum [28]byte
}

// NewSource creates a Source reading the given document body.  Line
// numbering starts at 1.
func NewSource(data []byte) *Source {
	return &Source{
		buf:         []rune(string(data)),
		line:        1,
		atLineStart: true,
		sum:         sha3.Sum224(data),
	}
}

// Peek returns the next character without consuming it.  Pushed-back
// characters take priority over the underlying buffer.  The second
// return value is false at end of input.
func (s *Source) Peek() (rune, bool) {
	if n := len(s.pushback); n > 0 {
		return s.pushback[n-1], true
	}
	if s.pos < len(s.buf) {
		return s.buf[s.pos], true
	}
	return 0, false
}

// Next consumes and returns the next character.  Consuming a newline
// increments the line counter.
func (s *Source) Next() (rune, bool) {
	var c rune
	if n := len(s.pushback); n > 0 {
		c = s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
	} else if s.pos < len(s.buf) {
		c = s.buf[s.pos]
		s.pos++
	} else {
		return 0, false
	}

	if c == '\n' {
		s.line++
		s.atLineStart = true
	} else {
		s.atLineStart = false
	}
	return c, true
}

// Unget pushes a character back for re-reading.  Pushing back a
// newline decrements the line counter, so that Unget is the exact
// inverse of Next for line accounting.
func (s *Source) Unget(c rune) {
	if c == '\n' {
		if s.line > 0 {
			s.line--
		}
		s.atLineStart = false
	}
	s.pushback = append(s.pushback, c)
}

// PeekAhead returns up to n characters of lookahead, pushback first,
// without consuming anything.
func (s *Source) PeekAhead(n int) string {
	res := make([]rune, 0, n)
	for i := len(s.pushback) - 1; i >= 0 && len(res) < n; i-- {
		res = append(res, s.pushback[i])
	}
	for i := s.pos; i < len(s.buf) && len(res) < n; i++ {
		res = append(res, s.buf[i])
	}
	return string(res)
}

// EOF reports whether no pushback remains and the cursor is at the end
// of the buffer.
func (s *Source) EOF() bool {
	return len(s.pushback) == 0 && s.pos >= len(s.buf)
}

// Line returns the line number of the next character that would be
// read going forward.
func (s *Source) Line() int {
	return s.line
}

// AtLineStart reports whether the most recently consumed character
// ended a line (or nothing has been read yet).
func (s *Source) AtLineStart() bool {
	return s.atLineStart
}
