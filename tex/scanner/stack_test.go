// stack_test.go -
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

import (
	"errors"
	"fmt"
	"testing"
)

func TestStackOrder(t *testing.T) {
	st := &Stack{}
	if !st.Empty() {
		t.Error("new stack is not empty")
	}
	if name := st.Name(); name != "<unknown>" {
		t.Errorf("Name() = %q on empty stack", name)
	}

	outer := NewSource([]byte("outer"))
	inner := NewSource([]byte("inner"))
	if err := st.Push(outer, "a.tex"); err != nil {
		t.Fatal(err)
	}
	if err := st.Push(inner, "b.tex"); err != nil {
		t.Fatal(err)
	}

	if st.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", st.Len())
	}
	if top, _ := st.Top(); top != inner {
		t.Error("Top() is not the most recently pushed source")
	}
	if name := st.Name(); name != "b.tex" {
		t.Errorf("Name() = %q, expected %q", name, "b.tex")
	}

	st.Pop()
	if top, _ := st.Top(); top != outer {
		t.Error("Top() after Pop is not the outer source")
	}
	st.Pop()
	if !st.Empty() {
		t.Error("stack not empty after popping everything")
	}
}

func TestStackOverflow(t *testing.T) {
	st := &Stack{}
	for i := 0; i < MaxDepth; i++ {
		src := NewSource([]byte(fmt.Sprintf("file %d", i)))
		if err := st.Push(src, "x.tex"); err != nil {
			t.Fatalf("Push %d failed: %s", i, err)
		}
	}
	err := st.Push(NewSource([]byte("one too many")), "y.tex")
	if !errors.Is(err, ErrStackOverflow) {
		t.Errorf("Push beyond MaxDepth returned %v, expected ErrStackOverflow", err)
	}
}

func TestIncludeLoop(t *testing.T) {
	st := &Stack{}
	body := []byte("\\input self\n")
	if err := st.Push(NewSource(body), "self.tex"); err != nil {
		t.Fatal(err)
	}

	// Identical contents are refused even under a different name.
	err := st.Push(NewSource(body), "copy.tex")
	if !errors.Is(err, ErrIncludeLoop) {
		t.Errorf("Push of identical contents returned %v, expected ErrIncludeLoop", err)
	}

	// Re-opening is fine once the first copy is closed.
	st.Pop()
	if err := st.Push(NewSource(body), "self.tex"); err != nil {
		t.Errorf("Push after Pop failed: %s", err)
	}
}
