// options.go -
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

// DefaultEnvs is the default list of LaTeX environments whose contents
// are suppressed from the output.
const DefaultEnvs = "algorithm,align,array,bmatrix,displaymath,eqnarray," +
	"equation,floatfig,floating,longtable,picture,pmatrix,psfrags," +
	"pspicture,smallmatrix,smallpmatrix,tabular,tikzpicture,verbatim," +
	"vmatrix,wrapfigure"

// Options holds the run configuration.  The Latex flag is mutated
// during scanning when LaTeX constructs such as \documentclass or
// \begin{document} are recognised, so mode detection is stateful and
// order-dependent.
type Options struct {
	// Cite echoes the arguments of \cite, \ref and \pageref.
	Cite bool

	// Latex enables the LaTeX-specific scanner states.  It is set
	// by the -l flag and flipped on by the scanner itself when a
	// LaTeX construct is seen.
	Latex bool

	// NoFollow disables following \input, \include and \subfile.
	NoFollow bool

	// Space replaces ignored control sequences with a space.
	Space bool

	// ForceTex inhibits LaTeX mode even when LaTeX constructs are
	// seen in the input.
	ForceTex bool

	// Word emits one word per output line and drops everything else.
	Word bool

	// SrcLoc prefixes each output line with "file:line: ".
	SrcLoc bool

	// ShowPictures emits "<Picture name>" for \includegraphics
	// arguments instead of dropping them.
	ShowPictures bool

	// Replace substitutes "noun" for in-line maths and
	// " verbs noun" for relational symbols, keeping the surrounding
	// prose grammatically parseable.
	Replace bool

	// EnvIgnore lists the environments whose contents are dropped.
	EnvIgnore []string

	// IncludeList, when non-empty, restricts which \include'd files
	// are processed.  It is populated by \includeonly.
	IncludeList []string
}

// NewOptions returns Options with the default environment ignore list.
func NewOptions() *Options {
	return &Options{
		EnvIgnore: strings.Split(DefaultEnvs, ","),
	}
}

// SetEnvIgnore replaces the environment ignore list with the entries
// of the given comma separated list.
func (opts *Options) SetEnvIgnore(list string) {
	opts.EnvIgnore = nil
	for _, env := range strings.Split(list, ",") {
		if env != "" {
			opts.EnvIgnore = append(opts.EnvIgnore, env)
		}
	}
}

// IsLatex reports whether the LaTeX-specific states are active.
func (opts *Options) IsLatex() bool {
	return opts.Latex && !opts.ForceTex
}

func (opts *Options) ignoresEnv(env string) bool {
	for _, e := range opts.EnvIgnore {
		if e == env {
			return true
		}
	}
	return false
}

// inIncludeList reports whether the named file may be processed by
// \include.  An empty list allows all files.
func (opts *Options) inIncludeList(filename string) bool {
	if len(opts.IncludeList) == 0 {
		return true
	}
	base := stem(filename)
	for _, inc := range opts.IncludeList {
		if inc == base {
			return true
		}
	}
	return false
}

// addInclude records a filename, extension stripped, in the
// include-only allow-list.  With NoFollow set nothing is recorded,
// since the list could never be consulted.
func (opts *Options) addInclude(filename string) {
	if opts.NoFollow {
		return
	}
	opts.IncludeList = append(opts.IncludeList, trimExt(filename))
}

func trimExt(filename string) string {
	if pos := strings.LastIndexByte(filename, '.'); pos >= 0 {
		return filename[:pos]
	}
	return filename
}

func stem(filename string) string {
	if pos := strings.LastIndexByte(filename, '/'); pos >= 0 {
		filename = filename[pos+1:]
	}
	return trimExt(filename)
}
