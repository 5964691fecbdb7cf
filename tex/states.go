// states.go -
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

import "unicode"

// A scanState consumes one state-conditioned token from the input.
// Each state carries only the fields it needs; states with counters or
// an environment name are pointer values created on entry, so stale
// fields cannot leak between states.
type scanState interface {
	scan(l *Lexer) (scanState, error)
}

var (
	stateDefine      scanState = define{}
	stateDisplay     scanState = display{}
	stateIncludeOnly scanState = includeOnly{}
	stateInput       scanState = inputDirective{}
	stateMath        scanState = math{}
	stateControl     scanState = control{}
	stateLaDisplay   scanState = laDisplay{}
	stateLaFormula   scanState = laFormula{}
	stateLaInclude   scanState = laInclude{}
	stateLaVerbatim  scanState = laVerbatim{}
	stateLaPicture   scanState = laPicture{}
)

// define skips a \def body up to its opening brace.
type define struct{}

func (define) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateDefine, nil
	}
	switch c {
	case '{':
		return stateNormal, nil
	case '\n':
		l.newline()
	}
	return stateDefine, nil
}

// display is TeX display maths, entered by "$$".  Unlike inline maths
// it reproduces newlines.
type display struct{}

func (display) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateDisplay, nil
	}
	switch c {
	case '$':
		if p, ok := l.peekChar(); ok && p == '$' {
			l.nextChar()
			return stateNormal, nil
		}
		l.checkVerbSymbol('$')
	case '\n':
		l.newline()
	default:
		l.checkVerbSymbol(c)
	}
	return stateDisplay, nil
}

// math is TeX inline maths, entered by a single "$".
type math struct{}

func (math) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateMath, nil
	}
	switch c {
	case '$':
		return stateNormal, nil
	case '\\':
		// an escaped dollar is a literal, not a mode terminator
		if p, ok := l.peekChar(); ok && p == '$' {
			l.nextChar()
		} else if isVerbSymbol(l.readCommandName()) {
			l.w.verbNoun()
		}
	case '\n':
		// swallowed
	default:
		l.checkVerbSymbol(c)
	}
	return stateMath, nil
}

func (l *Lexer) checkVerbSymbol(c rune) {
	switch c {
	case '=', '<', '>':
		l.w.verbNoun()
	case '\\':
		if isVerbSymbol(l.readCommandName()) {
			l.w.verbNoun()
		}
	}
}

func isVerbSymbol(name string) bool {
	switch name {
	case "leq", "geq", "in", "subseteq", "subset", "supset", "sim",
		"neq", "mapsto":
		return true
	}
	return false
}

// control resynchronises after an unknown control sequence.
type control struct{}

func (control) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateNormal, nil
	}
	switch {
	case c == '\n':
		return stateNormal, nil
	case unicode.IsSpace(c):
		l.skipWhitespace()
		if p, ok := l.peekChar(); ok && p == '{' {
			l.nextChar()
			l.braceLevel++
		}
		return stateNormal, nil
	case c == '{':
		l.braceLevel++
		return stateNormal, nil
	case c == '\\':
		// chained unknown command
		l.readCommandName()
		l.w.ignore()
		return stateControl, nil
	case isAsciiLetter(c), isAsciiDigit(c), c == '-',
		c == '\'', c == '=', c == '`':
		return stateControl, nil
	default:
		l.ungetChar(c)
		return stateNormal, nil
	}
}

// includeOnly parses \includeonly{a,b,c} and records the allow-list.
type includeOnly struct{}

func (includeOnly) scan(l *Lexer) (scanState, error) {
	l.skipWhitespace()
	c, ok := l.peekChar()
	if !ok {
		return stateIncludeOnly, nil
	}
	switch c {
	case '{', ',':
		l.nextChar()
	case '}':
		l.nextChar()
		if len(l.opts.IncludeList) == 0 {
			// an empty \includeonly blocks every \include
			l.opts.IncludeList = append(l.opts.IncludeList, "")
		}
		return stateNormal, nil
	default:
		var name []rune
		for {
			c, ok := l.peekChar()
			if !ok || c == ',' || c == '}' || unicode.IsSpace(c) {
				break
			}
			l.nextChar()
			name = append(name, c)
		}
		if len(name) > 0 {
			l.opts.addInclude(string(name))
		}
	}
	return stateIncludeOnly, nil
}

// inputDirective parses the filename of \input and pushes the file.
type inputDirective struct{}

func (inputDirective) scan(l *Lexer) (scanState, error) {
	l.skipWhitespace()
	c, ok := l.peekChar()
	if !ok {
		return stateNormal, nil
	}
	switch c {
	case '{':
		l.nextChar()
		return stateInput, nil
	case '}':
		return stateNormal, nil
	default:
		name := l.readFileName()
		if name != "" {
			l.inputFile(name)
		}
		return stateNormal, nil
	}
}

// laInclude parses the filename of \include and \subfile, honouring
// the include-only allow-list.
type laInclude struct{}

func (laInclude) scan(l *Lexer) (scanState, error) {
	l.skipWhitespace()
	c, ok := l.peekChar()
	if !ok {
		return stateNormal, nil
	}
	switch c {
	case '{':
		l.nextChar()
		return stateLaInclude, nil
	case '}':
		return stateNormal, nil
	default:
		name := l.readFileName()
		if name != "" {
			l.includeFile(name)
		}
		return stateNormal, nil
	}
}

// readFileName reads a filename up to the next whitespace or brace.
func (l *Lexer) readFileName() string {
	var name []rune
	for {
		c, ok := l.peekChar()
		if !ok || unicode.IsSpace(c) || c == '}' {
			break
		}
		l.nextChar()
		name = append(name, c)
	}
	return string(name)
}

// laEnv absorbs the contents of an ignored environment until the
// matching \end{...} is seen.  Only one ignored environment name is
// tracked at a time.
type laEnv struct {
	env string
}

func (s *laEnv) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return s, nil
	}
	if c == '\\' && l.tryMatch("end") {
		if l.opts.IsLatex() {
			return &laEnd{env: s.env}, nil
		}
	}
	return s, nil
}

// laEnd checks whether an \end inside an ignored environment closes
// it.
type laEnd struct {
	env string
}

func (s *laEnd) scan(l *Lexer) (scanState, error) {
	l.skipWhitespace()
	c, ok := l.peekChar()
	if !ok {
		return stateNormal, nil
	}
	switch {
	case c == '{':
		l.nextChar()
		l.skipWhitespace()
		env := l.readCommandName()
		l.skipWhitespace()
		l.tryMatch("}")
		if env == s.env {
			return stateNormal, nil
		}
		return &laEnv{env: s.env}, nil
	case isAsciiLetter(c):
		if l.readCommandName() == s.env {
			return stateNormal, nil
		}
		return s, nil
	case c == '}':
		l.nextChar()
		return &laEnv{env: s.env}, nil
	default:
		l.nextChar()
		return s, nil
	}
}

// laDisplay is LaTeX display maths, entered by "\[".
type laDisplay struct{}

func (laDisplay) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateLaDisplay, nil
	}
	switch c {
	case '\\':
		if l.tryMatch("]") {
			return stateNormal, nil
		}
		if isVerbSymbol(l.readCommandName()) {
			l.w.verbNoun()
		}
	case '\n':
		l.newline()
	default:
		l.checkVerbSymbol(c)
	}
	return stateLaDisplay, nil
}

// laFormula is LaTeX inline maths, entered by "\(".
type laFormula struct{}

func (laFormula) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateLaFormula, nil
	}
	switch c {
	case '\\':
		if l.tryMatch(")") {
			return stateNormal, nil
		}
		if isVerbSymbol(l.readCommandName()) {
			l.w.verbNoun()
		}
	case '\n':
		l.newline()
	default:
		l.checkVerbSymbol(c)
	}
	return stateLaFormula, nil
}

// macroArgs consumes and discards brace-delimited macro arguments
// ("kill args").  remaining counts arguments still to skip, open the
// braces open within the current argument.
type macroArgs struct {
	remaining int
	open      int
}

func (s *macroArgs) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return s, nil
	}
	switch c {
	case '[':
		return &optArg{next: s}, nil
	case '{':
		s.open++
	case '}':
		if s.open > 0 {
			s.open--
		}
		if s.open == 0 {
			if s.remaining > 0 {
				s.remaining--
			}
			if s.remaining == 0 {
				// one newline after the final argument belongs
				// to the match
				if p, ok := l.peekChar(); ok && p == '\n' {
					l.nextChar()
				}
				return stateNormal, nil
			}
		}
	}
	return s, nil
}

// macroStrip consumes all but the last argument ("strip args"): when
// the final argument's opening brace is seen, control returns to
// Normal so the argument's own text stays visible.
type macroStrip struct {
	remaining int
	open      int
}

func (s *macroStrip) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return s, nil
	}
	switch c {
	case '[':
		return &optArg{next: s}, nil
	case '{':
		if s.open == 0 {
			if s.remaining > 0 {
				s.remaining--
			}
			if s.remaining == 0 {
				return stateNormal, nil
			}
		}
		s.open++
	case '}':
		if s.open > 0 {
			s.open--
		}
	}
	return s, nil
}

// optArg skips a bracketed optional argument and then resumes the
// suspended argument-consumption state.  Nested brackets are balanced
// and a backslash escapes the following character, so an escaped ']'
// does not close the argument early.  depth counts brackets opened
// inside the argument.
type optArg struct {
	next  scanState
	depth int
}

func (s *optArg) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return s, nil
	}
	switch c {
	case '[':
		s.depth++
	case ']':
		if s.depth == 0 {
			return s.next, nil
		}
		s.depth--
	case '\\':
		l.nextChar()
	}
	return s, nil
}

// laVerbatim echoes a verbatim environment character for character
// until \end{verbatim}.
type laVerbatim struct{}

func (laVerbatim) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateLaVerbatim, nil
	}
	if c != '\\' {
		l.echo(string(c))
		return stateLaVerbatim, nil
	}
	if !l.tryMatch("end") {
		// a lone backslash is verbatim content
		l.w.raw("\\")
		return stateLaVerbatim, nil
	}
	l.skipWhitespace()
	if l.tryMatch("{") {
		l.skipWhitespace()
		if l.tryMatch("verbatim") {
			l.skipWhitespace()
			l.tryMatch("}")
			return stateNormal, nil
		}
	}
	return stateLaVerbatim, nil
}

// laPicture skips the brace-delimited argument of \includegraphics,
// optionally emitting the picture name.
type laPicture struct{}

func (laPicture) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateNormal, nil
	}
	switch c {
	case '{':
	case '}':
		for {
			p, ok := l.peekChar()
			if !ok || !unicode.IsSpace(p) {
				break
			}
			l.nextChar()
			if p == '\n' {
				break
			}
		}
		return stateNormal, nil
	default:
		if l.opts.ShowPictures {
			name := []rune{c}
			for {
				p, ok := l.peekChar()
				if !ok || p == '{' || p == '}' {
					break
				}
				l.nextChar()
				name = append(name, p)
			}
			l.w.raw("<Picture " + string(name) + ">")
		}
	}
	return stateLaPicture, nil
}
