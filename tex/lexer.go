// lexer.go -
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
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"unicode"

	"github.com/tchajed/detex/tex/scanner"
)

// ErrVerbIncomplete indicates that the closing delimiter of a \verb
// construct was not found before the end of the input.  This is the
// only scanning condition treated as fatal; everything else degrades
// to a warning.
var ErrVerbIncomplete = errors.New("\\verb not complete before end of input")

// noFootnote is the footnote brace-level marker meaning "no open
// footnote".
const noFootnote = -100

// A Resolver locates the files referenced by \input and \include
// directives.
type Resolver interface {
	// Resolve returns the contents of the named file together with
	// a display name for diagnostics.
	Resolve(name string) (data []byte, displayName string, err error)
}

// Lexer converts a stream of TeX/LaTeX source characters into filtered
// prose text, one token at a time.
type Lexer struct {
	opts  *Options
	files Resolver
	stack *scanner.Stack
	w     *writer

	commands map[string]command

	// braceLevel is the document-wide brace nesting depth tracked by
	// the Normal state.  footnoteLevel records the depth at which an
	// automatically parenthesised \footnote was opened.
	braceLevel    int
	footnoteLevel int

	recording  bool
	transcript []rune
}

// New creates a Lexer writing filtered text to out.  The files
// argument may be nil, in which case all file inclusion directives
// fail with a warning.
func New(opts *Options, out io.Writer, files Resolver) *Lexer {
	l := &Lexer{
		opts:          opts,
		files:         files,
		stack:         &scanner.Stack{},
		w:             newWriter(out, opts),
		commands:      make(map[string]command),
		footnoteLevel: noFootnote,
	}
	l.addBuiltinCommands()
	return l
}

// ProcessFile resolves the named file and processes its contents.
func (l *Lexer) ProcessFile(name string) error {
	if l.files == nil {
		return fmt.Errorf("can't open file %s", name)
	}
	data, path, err := l.files.Resolve(name)
	if err != nil {
		return fmt.Errorf("can't open file %s", name)
	}
	return l.Process(data, path)
}

// Process pushes the given document body onto the file stack and scans
// until the stack is empty again.  The name is used in diagnostics and
// source-location prefixes.
func (l *Lexer) Process(data []byte, name string) error {
	if err := l.stack.Push(scanner.NewSource(data), name); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return l.run()
}

func (l *Lexer) run() error {
	var st scanState = stateNormal
	for !l.stack.Empty() {
		src, _ := l.stack.Top()
		if src.EOF() {
			l.stack.Pop()
			continue
		}
		next, err := st.scan(l)
		if err != nil {
			for !l.stack.Empty() {
				l.stack.Pop()
			}
			l.w.flush()
			return err
		}
		st = next
	}
	return l.w.flush()
}

// ========== character primitives ==========

func (l *Lexer) nextChar() (rune, bool) {
	src, ok := l.stack.Top()
	if !ok {
		return 0, false
	}
	c, ok := src.Next()
	if ok && l.recording {
		l.transcript = append(l.transcript, c)
	}
	return c, ok
}

func (l *Lexer) peekChar() (rune, bool) {
	src, ok := l.stack.Top()
	if !ok {
		return 0, false
	}
	return src.Peek()
}

func (l *Lexer) ungetChar(c rune) {
	if src, ok := l.stack.Top(); ok {
		src.Unget(c)
	}
	if n := len(l.transcript); l.recording && n > 0 && l.transcript[n-1] == c {
		l.transcript = l.transcript[:n-1]
	}
}

func (l *Lexer) peekAhead(n int) string {
	src, ok := l.stack.Top()
	if !ok {
		return ""
	}
	return src.PeekAhead(n)
}

func (l *Lexer) fileName() string {
	return l.stack.Name()
}

func (l *Lexer) line() int {
	if src, ok := l.stack.Top(); ok {
		return src.Line()
	}
	return 1
}

// The transcript records consumed characters so that a speculative
// parse can be pushed back in full.  Used for \begin/\end, which only
// take effect in LaTeX mode.

func (l *Lexer) startTranscript() {
	l.recording = true
	l.transcript = l.transcript[:0]
}

func (l *Lexer) rewindTranscript() {
	l.recording = false
	for i := len(l.transcript) - 1; i >= 0; i-- {
		l.ungetChar(l.transcript[i])
	}
	l.transcript = nil
}

func (l *Lexer) dropTranscript() {
	l.recording = false
	l.transcript = nil
}

// ========== tokenizer primitives ==========

func isAsciiLetter(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isAsciiDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isCmdChar(c rune) bool {
	return isAsciiLetter(c) || c == '@'
}

func (l *Lexer) skipWhitespace() {
	for {
		c, ok := l.peekChar()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		l.nextChar()
	}
}

// readCommandName reads a run of command-name characters (ASCII
// letters and '@').  The result may be empty.
func (l *Lexer) readCommandName() string {
	var name []rune
	for {
		c, ok := l.peekChar()
		if !ok || !isCmdChar(c) {
			break
		}
		l.nextChar()
		name = append(name, c)
	}
	return string(name)
}

// tryMatch consumes the given literal text if it comes next in the
// input.  On a mismatch every consumed character is pushed back and
// tryMatch reports false.
func (l *Lexer) tryMatch(s string) bool {
	var matched []rune
	for _, want := range s {
		c, ok := l.nextChar()
		if ok && c == want {
			matched = append(matched, c)
			continue
		}
		if ok {
			l.ungetChar(c)
		}
		for i := len(matched) - 1; i >= 0; i-- {
			l.ungetChar(matched[i])
		}
		return false
	}
	return true
}

func (l *Lexer) matchOptionalStar() {
	if c, ok := l.peekChar(); ok && c == '*' {
		l.nextChar()
	}
}

// skipGlue consumes a TeX glue specification: a dimension optionally
// followed by "plus" and "minus" stretch clauses.
func (l *Lexer) skipGlue() {
	l.skipDimension()
	for l.tryMatch("plus") || l.tryMatch("minus") {
		l.skipDimension()
	}
}

func (l *Lexer) skipDimension() {
	l.skipWhitespace()
	if c, ok := l.peekChar(); ok && (c == '+' || c == '-') {
		l.nextChar()
	}
	for {
		c, ok := l.peekChar()
		if !ok || !(isAsciiDigit(c) || c == '.') {
			break
		}
		l.nextChar()
	}
	l.readCommandName() // the unit keyword
	l.skipWhitespace()
}

// skipBraceArg consumes one balanced brace-delimited argument, if
// present.  A backslash escapes the following character.
func (l *Lexer) skipBraceArg() {
	l.skipWhitespace()
	if !l.tryMatch("{") {
		return
	}
	depth := 1
	for depth > 0 {
		c, ok := l.nextChar()
		if !ok {
			return
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		case '\\':
			l.nextChar()
		}
	}
}

// skipOptionalBracketArg consumes one balanced bracket-delimited
// argument, if present.
func (l *Lexer) skipOptionalBracketArg() {
	l.skipWhitespace()
	if c, ok := l.peekChar(); !ok || c != '[' {
		return
	}
	l.nextChar()
	depth := 1
	for depth > 0 {
		c, ok := l.nextChar()
		if !ok {
			return
		}
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case '\\':
			l.nextChar()
		}
	}
}

// ========== mode and inclusion helpers ==========

func (l *Lexer) setLatex() {
	if !l.opts.ForceTex {
		l.opts.Latex = true
	}
}

// laBegin returns next if LaTeX mode is active, and the Normal state
// otherwise.  All LaTeX-specific state transitions go through this
// guard.
func (l *Lexer) laBegin(next scanState) scanState {
	if l.opts.IsLatex() {
		return next
	}
	return stateNormal
}

// includeFile handles \include and \subfile: the include-only
// allow-list is consulted before the file is opened.
func (l *Lexer) includeFile(name string) {
	if l.opts.NoFollow || !l.opts.inIncludeList(name) {
		return
	}
	l.inputFile(name)
}

// inputFile opens the named file and pushes it onto the file stack.
// Every failure is a warning; scanning of the including document
// continues as if the directive had no effect.
func (l *Lexer) inputFile(name string) {
	if l.opts.NoFollow {
		return
	}
	if l.files == nil {
		log.Printf("detex: warning: can't open file %s", name)
		return
	}
	data, path, err := l.files.Resolve(name)
	if err != nil {
		log.Printf("detex: warning: can't open file %s", name)
		return
	}
	if err := l.stack.Push(scanner.NewSource(data), path); err != nil {
		log.Printf("detex: warning: %s, ignoring %s", err, name)
	}
}

// ========== output helpers ==========

func (l *Lexer) echo(s string) {
	l.w.echo(l.fileName(), l.line(), s)
}

func (l *Lexer) newline() {
	l.w.newline(l.fileName(), l.line())
}

func (l *Lexer) emitWord(s string) {
	l.w.word(l.fileName(), l.line(), s)
}

// Strip processes a single in-memory document with no file resolution
// and returns the filtered text.
func Strip(data []byte, opts *Options) (string, error) {
	buf := &bytes.Buffer{}
	l := New(opts, buf, nil)
	err := l.Process(data, "<memory>")
	return buf.String(), err
}
