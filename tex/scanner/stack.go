// stack.go -
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

package scanner

import "errors"

// MaxDepth is the maximum number of simultaneously open input sources.
const MaxDepth = 256

// ErrStackOverflow indicates that pushing one more source would exceed
// MaxDepth.
var ErrStackOverflow = errors.New("file stack overflow")

// ErrIncludeLoop indicates that a source with identical contents is
// already open further down the stack.
var ErrIncludeLoop = errors.New("recursive file inclusion")

type entry struct {
	src  *Source
	name string
}

// Stack is an ordered collection of open Sources representing nested
// file inclusion.  The top of the stack is always the active source.
type Stack struct {
	entries []entry
}

// Push makes src the new active source.  The name is used as a prefix
// in diagnostic messages.  Push fails with ErrStackOverflow if the
// stack is full, and with ErrIncludeLoop if a source with the same
// contents is already open.
func (st *Stack) Push(src *Source, name string) error {
	if len(st.entries) >= MaxDepth {
		return ErrStackOverflow
	}
	for _, e := range st.entries {
		if e.src.sum == src.sum {
			return ErrIncludeLoop
		}
	}
	st.entries = append(st.entries, entry{src: src, name: name})
	return nil
}

// Pop drops the active source.
func (st *Stack) Pop() {
	if n := len(st.entries); n > 0 {
		st.entries = st.entries[:n-1]
	}
}

// Top returns the active source, or false if the stack is empty.
func (st *Stack) Top() (*Source, bool) {
	if n := len(st.entries); n > 0 {
		return st.entries[n-1].src, true
	}
	return nil, false
}

// Name returns the display name of the active source.
func (st *Stack) Name() string {
	if n := len(st.entries); n > 0 {
		return st.entries[n-1].name
	}
	return "<unknown>"
}

// Len returns the number of open sources.
func (st *Stack) Len() int {
	return len(st.entries)
}

// Empty reports whether no sources remain.
func (st *Stack) Empty() bool {
	return len(st.entries) == 0
}
