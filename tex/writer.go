// writer.go -
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

package tex

import (
	"bufio"
	"fmt"
	"io"
)

// writer buffers the filtered output and applies the output-shaping
// options: word mode, noun replacement and source-location prefixes.
type writer struct {
	out  *bufio.Writer
	opts *Options

	// atLineStart is true when the next echoed character starts a
	// fresh output line, so a "file:line:" prefix may be due.
	atLineStart bool
}

func newWriter(out io.Writer, opts *Options) *writer {
	return &writer{
		out:         bufio.NewWriter(out),
		opts:        opts,
		atLineStart: true,
	}
}

func (w *writer) prefix(name string, line int) {
	if w.opts.SrcLoc && w.atLineStart {
		fmt.Fprintf(w.out, "%s:%d: ", name, line)
		w.atLineStart = false
	}
}

// echo writes document text attributed to the given source position.
// Only newline() resets the prefix gate, so line breaks embedded in
// echoed text (verbatim content) do not start an annotated line.
func (w *writer) echo(name string, line int, s string) {
	w.prefix(name, line)
	w.out.WriteString(s)
}

// raw writes replacement text.  It carries no position attribution
// and leaves the prefix gating untouched, so a pending source-location
// prefix is emitted by the next positioned write instead.
func (w *writer) raw(s string) {
	w.out.WriteString(s)
}

func (w *writer) newline(name string, line int) {
	if w.opts.Word {
		return
	}
	w.prefix(name, line)
	w.out.WriteByte('\n')
	w.atLineStart = true
}

func (w *writer) space() {
	if !w.opts.Word {
		w.out.WriteByte(' ')
	}
}

// noun stands in for inline or displayed math.
func (w *writer) noun() {
	if w.opts.Replace {
		w.raw("noun")
	} else if w.opts.Space && !w.opts.Word {
		w.out.WriteByte(' ')
	}
}

// verbNoun stands in for relational math symbols such as \leq.
func (w *writer) verbNoun() {
	if w.opts.Replace {
		w.raw(" verbs noun")
	}
}

// ignore marks text that was consumed without output.  With -s each
// ignored construct still contributes a space.
func (w *writer) ignore() {
	if w.opts.Space && !w.opts.Word {
		w.out.WriteByte(' ')
	}
}

// word emits a complete word.  In word mode each word goes on its own
// line without position prefixes.
func (w *writer) word(name string, line int, s string) {
	if w.opts.Word {
		w.out.WriteString(s)
		w.out.WriteByte('\n')
		return
	}
	w.echo(name, line, s)
}

func (w *writer) flush() error {
	return w.out.Flush()
}
