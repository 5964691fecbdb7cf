// commands.go -
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

// A command is the action bound to a recognised control-sequence name.
type command interface {
	run(l *Lexer, name string) (scanState, error)
}

type commandFunc func(l *Lexer, name string) (scanState, error)

func (f commandFunc) run(l *Lexer, name string) (scanState, error) {
	return f(l, name)
}

// killArgsCmd consumes and discards n brace-delimited arguments.
type killArgsCmd struct {
	n     int
	space bool // emit the control-sequence replacement space
}

func (c killArgsCmd) run(l *Lexer, _ string) (scanState, error) {
	st := l.laBegin(&macroArgs{remaining: c.n})
	if c.space {
		l.w.ignore()
	}
	return st, nil
}

// stripArgsCmd consumes all but the last of n arguments, keeping the
// final argument's text visible.
type stripArgsCmd int

func (c stripArgsCmd) run(l *Lexer, _ string) (scanState, error) {
	return l.laBegin(&macroStrip{remaining: int(c)}), nil
}

// glueCmd skips a TeX glue specification.
type glueCmd struct{}

func (glueCmd) run(l *Lexer, _ string) (scanState, error) {
	l.skipGlue()
	return stateNormal, nil
}

// ligatureCmd emits the command name itself (\ae -> ae) and swallows
// one trailing whitespace-or-brace character.
type ligatureCmd struct{}

func (ligatureCmd) run(l *Lexer, name string) (scanState, error) {
	if !l.opts.Word {
		l.w.raw(name)
	}
	if c, ok := l.peekChar(); ok && (unicode.IsSpace(c) || c == '}') {
		l.nextChar()
	}
	return stateNormal, nil
}

func (l *Lexer) addBuiltinCommands() {
	c := l.commands

	c["begin"] = commandFunc(cmdBegin)
	c["end"] = commandFunc(cmdEnd)

	for _, name := range []string{"kern", "vskip", "hskip"} {
		c[name] = glueCmd{}
	}
	c["vspace"] = commandFunc(cmdVspace)
	c["hspace"] = commandFunc(cmdVspace)
	c["addvspace"] = commandFunc(cmdAddvspace)

	for _, name := range []string{
		"newlength", "newsavebox", "usebox", "parbox", "rotatebox",
		"color", "pagecolor", "bibitem", "bibliography", "bibstyle",
		"index", "label", "pagestyle", "thispagestyle",
		"addfontfeature", "fontspec", "hypersetup", "sbox",
	} {
		c[name] = killArgsCmd{n: 1, space: true}
	}
	for _, name := range []string{
		"setlength", "addtolength", "settowidth", "settoheight",
		"settodepth", "savebox", "setcounter", "addtocounter",
		"stepcounter",
	} {
		c[name] = killArgsCmd{n: 2, space: true}
	}
	for _, name := range []string{"raisebox", "scalebox", "foilhead"} {
		c[name] = stripArgsCmd(2)
	}
	c["resizebox"] = commandFunc(cmdResizebox)
	for _, name := range []string{"definecolor", "fcolorbox", "addcontentsline"} {
		c[name] = killArgsCmd{n: 3}
	}
	for _, name := range []string{"textcolor", "colorbox"} {
		c[name] = killArgsCmd{n: 2}
	}

	c["includegraphics"] = commandFunc(cmdIncludeGraphics)

	for _, name := range []string{
		"part", "chapter", "section", "subsection", "subsubsection",
		"paragraph", "subparagraph",
	} {
		c[name] = commandFunc(cmdSectioning)
	}

	c["cite"] = killArgsCmd{n: 1}
	for _, name := range []string{"nameref", "pageref", "ref"} {
		c[name] = commandFunc(cmdRef)
	}

	c["documentstyle"] = commandFunc(cmdDocumentClass)
	c["documentclass"] = commandFunc(cmdDocumentClass)
	c["usepackage"] = killArgsCmd{n: 1, space: true}

	c["include"] = commandFunc(cmdInclude)
	c["subfile"] = commandFunc(cmdInclude)
	c["includeonly"] = commandFunc(cmdIncludeOnly)
	c["input"] = commandFunc(cmdInput)

	c["footnote"] = commandFunc(cmdFootnote)
	c["verb"] = commandFunc(cmdVerb)

	c["newcommand"] = commandFunc(cmdNewCommand)
	c["renewcommand"] = commandFunc(cmdNewCommand)
	c["newenvironment"] = commandFunc(cmdNewEnvironment)
	c["newcounter"] = killArgsCmd{n: 1}

	c["def"] = commandFunc(cmdDef)
	c["slash"] = commandFunc(cmdSlash)
	c["linebreak"] = commandFunc(cmdLineBreak)
	c["reflectbox"] = commandFunc(cmdNop)

	for _, name := range []string{
		"aa", "AA", "ae", "AE", "oe", "OE", "ss",
		"O", "o", "i", "j", "L", "l",
	} {
		c[name] = ligatureCmd{}
	}
}

// cmdBegin handles \begin{NAME}.  The braces are parsed speculatively:
// outside LaTeX mode they are pushed back for Normal-state echoing,
// except that \begin{document} always confirms LaTeX mode.
func cmdBegin(l *Lexer, _ string) (scanState, error) {
	l.startTranscript()
	l.skipWhitespace()
	if !l.tryMatch("{") {
		if l.opts.IsLatex() {
			l.dropTranscript()
		} else {
			l.rewindTranscript()
		}
		l.w.ignore()
		return stateNormal, nil
	}
	l.skipWhitespace()
	env := l.readCommandName()
	l.skipWhitespace()
	l.tryMatch("}")

	if env == "document" {
		l.dropTranscript()
		l.setLatex()
		for {
			c, ok := l.peekChar()
			if !ok || c != '\n' {
				break
			}
			l.nextChar()
		}
		l.w.ignore()
		return stateNormal, nil
	}

	if !l.opts.IsLatex() {
		l.rewindTranscript()
		l.w.ignore()
		return stateNormal, nil
	}
	l.dropTranscript()

	var next scanState = stateNormal
	switch env {
	case "verbatim":
		if l.opts.ignoresEnv(env) {
			next = &laEnv{env: env}
		} else {
			next = stateLaVerbatim
		}
	case "minipage":
		if l.opts.ignoresEnv(env) {
			next = &laEnv{env: env}
		} else {
			next = &macroArgs{remaining: 1}
		}
	case "table", "figure":
		l.skipWhitespace()
		l.skipOptionalBracketArg()
		if l.opts.ignoresEnv(env) {
			next = &laEnv{env: env}
		}
	default:
		if l.opts.ignoresEnv(env) {
			next = &laEnv{env: env}
		}
	}
	l.w.ignore()
	return next, nil
}

func cmdEnd(l *Lexer, _ string) (scanState, error) {
	l.startTranscript()
	l.skipWhitespace()
	if l.tryMatch("{") {
		l.skipWhitespace()
		l.readCommandName()
		l.skipWhitespace()
		l.tryMatch("}")
	}
	if l.opts.IsLatex() {
		l.dropTranscript()
	} else {
		l.rewindTranscript()
	}
	l.w.ignore()
	return stateNormal, nil
}

func cmdVspace(l *Lexer, _ string) (scanState, error) {
	l.matchOptionalStar()
	l.skipBraceArg()
	return stateNormal, nil
}

func cmdAddvspace(l *Lexer, _ string) (scanState, error) {
	l.skipBraceArg()
	return stateNormal, nil
}

func cmdResizebox(l *Lexer, _ string) (scanState, error) {
	l.matchOptionalStar()
	return l.laBegin(&macroArgs{remaining: 2}), nil
}

func cmdIncludeGraphics(l *Lexer, _ string) (scanState, error) {
	for {
		c, ok := l.peekChar()
		if !ok || c != '[' {
			break
		}
		l.skipOptionalBracketArg()
	}
	return stateLaPicture, nil
}

func cmdSectioning(l *Lexer, _ string) (scanState, error) {
	l.matchOptionalStar()
	return stateNormal, nil
}

func cmdRef(l *Lexer, _ string) (scanState, error) {
	var st scanState = stateNormal
	if l.opts.IsLatex() && !l.opts.Cite {
		st = l.laBegin(&macroArgs{remaining: 1})
	}
	l.w.ignore()
	return st, nil
}

func cmdDocumentClass(l *Lexer, _ string) (scanState, error) {
	l.setLatex()
	st := l.laBegin(&macroArgs{remaining: 1})
	l.w.ignore()
	return st, nil
}

func cmdInclude(l *Lexer, _ string) (scanState, error) {
	st := l.laBegin(stateLaInclude)
	l.w.ignore()
	return st, nil
}

func cmdIncludeOnly(l *Lexer, _ string) (scanState, error) {
	l.w.ignore()
	return stateIncludeOnly, nil
}

func cmdInput(l *Lexer, _ string) (scanState, error) {
	l.w.ignore()
	return stateInput, nil
}

// cmdFootnote emits "(" and records the brace depth so that the
// matching close brace in Normal state emits ")".  Only the most
// recently opened footnote is tracked.
func cmdFootnote(l *Lexer, _ string) (scanState, error) {
	l.skipOptionalBracketArg()
	if l.tryMatch("{") {
		l.w.raw("(")
		l.footnoteLevel = l.braceLevel
		l.braceLevel++
	}
	return stateNormal, nil
}

// cmdVerb echoes everything up to the delimiter character following
// \verb.  A newline or end of input before the closing delimiter is
// fatal.
func cmdVerb(l *Lexer, _ string) (scanState, error) {
	if !l.opts.IsLatex() {
		return stateNormal, nil
	}
	delim, ok := l.nextChar()
	if !ok || delim < ' ' {
		return stateNormal, ErrVerbIncomplete
	}
	for {
		c, ok := l.nextChar()
		if !ok || c == '\n' || c == 0 {
			return stateNormal, ErrVerbIncomplete
		}
		if c == delim {
			break
		}
		l.w.raw(string(c))
	}
	return stateNormal, nil
}

func cmdNewCommand(l *Lexer, _ string) (scanState, error) {
	l.setLatex()
	return l.laBegin(&macroArgs{remaining: 2}), nil
}

func cmdNewEnvironment(l *Lexer, _ string) (scanState, error) {
	l.setLatex()
	return l.laBegin(&macroArgs{remaining: 3}), nil
}

func cmdDef(l *Lexer, _ string) (scanState, error) {
	l.w.ignore()
	return stateDefine, nil
}

func cmdSlash(l *Lexer, _ string) (scanState, error) {
	if !l.opts.Word {
		l.w.raw("/")
	}
	return stateNormal, nil
}

func cmdLineBreak(l *Lexer, _ string) (scanState, error) {
	l.skipOptionalBracketArg()
	l.newline()
	return stateNormal, nil
}

func cmdNop(l *Lexer, _ string) (scanState, error) {
	return stateNormal, nil
}
