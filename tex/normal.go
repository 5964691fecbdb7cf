// normal.go -
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

import "strings"

// normal is the plain-text state.  It classifies the next character
// and applies the fixed punctuation substitutions.
type normal struct{}

var stateNormal scanState = normal{}

func (normal) scan(l *Lexer) (scanState, error) {
	c, ok := l.nextChar()
	if !ok {
		return stateNormal, nil
	}

	switch {
	case c == '%':
		// comment through end of line, not echoed
		for {
			c, ok := l.nextChar()
			if !ok || c == '\n' {
				break
			}
		}

	case c == '\\':
		return l.scanControlSeq()

	case c == '$':
		if p, ok := l.peekChar(); ok && p == '$' {
			l.nextChar()
			l.w.noun()
			return stateDisplay, nil
		}
		l.w.noun()
		return stateMath, nil

	case c == '{':
		l.braceLevel++

	case c == '}':
		if l.braceLevel > 0 {
			l.braceLevel--
		}
		if l.braceLevel == l.footnoteLevel {
			l.w.raw(")")
			l.footnoteLevel = noFootnote
		}

	case c == '~':
		l.w.space()

	case c == '|':
		// dropped

	case c == '!' || c == '?':
		// "!`" and "?`" are Spanish open punctuation
		if p, ok := l.peekChar(); ok && p == '`' {
			l.nextChar()
		} else if !l.opts.Word {
			l.echo(string(c))
		}

	case c == '-':
		// en/em dashes fold to a single hyphen
		dashes := 1
		for dashes < 3 {
			p, ok := l.peekChar()
			if !ok || p != '-' {
				break
			}
			l.nextChar()
			dashes++
		}
		if !l.opts.Word {
			l.w.raw("-")
		}

	case c == '`':
		if p, ok := l.peekChar(); ok && p == '`' {
			l.nextChar()
			if !l.opts.Word {
				l.w.raw("\"")
			}
		} else if !l.opts.Word {
			l.w.raw("'")
		}

	case c == '\'':
		if p, ok := l.peekChar(); ok && p == '\'' {
			l.nextChar()
			if !l.opts.Word {
				l.w.raw("\"")
			}
		} else if !l.opts.Word {
			l.echo("'")
		}

	case c == ',':
		// ",," is the German low open quote
		if p, ok := l.peekChar(); ok && p == ',' {
			l.nextChar()
			if !l.opts.Word {
				l.w.raw("\"")
			}
		} else if !l.opts.Word {
			l.echo(",")
		}

	case c == '\n':
		l.newline()

	case c == '\t':
		if !l.opts.Word {
			l.w.raw("\t")
		}

	case c == ' ':
		// a space directly before \cite is swallowed, so that a
		// killed citation does not leave a dangling blank
		if l.citeFollows() {
			break
		}
		if !l.opts.Word {
			l.echo(" ")
		}

	case isAsciiLetter(c):
		l.scanWord(c)

	case isAsciiDigit(c):
		if !l.opts.Word {
			num := []rune{c}
			for {
				p, ok := l.peekChar()
				if !ok || !isAsciiDigit(p) {
					break
				}
				l.nextChar()
				num = append(num, p)
			}
			l.echo(string(num))
		}

	default:
		if !l.opts.Word {
			l.echo(string(c))
		}
	}

	return stateNormal, nil
}

// scanWord accumulates an alphabetic run.  An internal apostrophe
// followed by another letter stays part of the word; a trailing
// apostrophe is pushed back.
func (l *Lexer) scanWord(first rune) {
	word := []rune{first}
	for {
		c, ok := l.peekChar()
		if !ok {
			break
		}
		if isAsciiLetter(c) {
			l.nextChar()
			word = append(word, c)
			continue
		}
		if c == '\'' {
			l.nextChar()
			if p, ok := l.peekChar(); ok && isAsciiLetter(p) {
				word = append(word, '\'')
				continue
			}
			l.ungetChar('\'')
		}
		break
	}
	l.emitWord(string(word))
}

// citeFollows reports whether the input continues with "\cite" and
// the alphabetic run terminates there (so "\citation" does not count).
func (l *Lexer) citeFollows() bool {
	s := l.peekAhead(6)
	if !strings.HasPrefix(s, "\\cite") {
		return false
	}
	return len(s) < 6 || !isAsciiLetter(rune(s[5]))
}

// scanControlSeq handles a backslash in Normal state: escaped
// punctuation, formula delimiters, and the named command table.
func (l *Lexer) scanControlSeq() (scanState, error) {
	name := l.readCommandName()

	if name == "" {
		c, ok := l.nextChar()
		if !ok {
			l.w.ignore()
			return stateNormal, nil
		}
		switch c {
		case '(':
			st := l.laBegin(stateLaFormula)
			l.w.noun()
			return st, nil
		case '[':
			st := l.laBegin(stateLaDisplay)
			l.w.noun()
			return st, nil
		case '\\':
			l.matchOptionalStar()
			l.skipOptionalBracketArg()
			l.newline()
		case ' ':
			l.w.space()
		case '%':
			if !l.opts.Word {
				l.w.raw("%")
			}
		case '$':
			if !l.opts.Word {
				l.w.raw("$")
			}
		default:
			l.w.ignore()
		}
		return stateNormal, nil
	}

	if cmd, ok := l.commands[name]; ok {
		return cmd.run(l, name)
	}

	// unknown control sequence: resync in the Control state
	l.w.ignore()
	return stateControl, nil
}
