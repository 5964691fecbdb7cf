// lexer_test.go -
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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"prose", "Hello world.\n", "Hello world.\n"},
		{"comment", "before % comment\nafter\n", "before after\n"},
		{"inline math", "a $x+y$ b\n", "a  b\n"},
		{"display math", "a $$x+y$$ b\n", "a  b\n"},
		{"double backtick", "``q''\n", "\"q\"\n"},
		{"lone backtick", "`q\n", "'q\n"},
		{"german quote", ",,q''\n", "\"q\"\n"},
		{"lone comma", "a, b\n", "a, b\n"},
		{"em dash", "a---b\n", "a-b\n"},
		{"en dash", "a--b\n", "a-b\n"},
		{"tie", "a~b\n", "a b\n"},
		{"bar dropped", "a|b\n", "ab\n"},
		{"spanish bang", "!`Hola!\n", "Hola!\n"},
		{"spanish question", "?`Como?\n", "Como?\n"},
		{"digits", "100 times\n", "100 times\n"},
		{"braces dropped", "{grouped}\n", "grouped\n"},
		{"escaped percent", "100\\% sure\n", "100% sure\n"},
		{"escaped dollar", "\\$5\n", "$5\n"},
		{"control space", "A\\ B\n", "A B\n"},
		{"forced break", "a\\\\b\n", "a\nb\n"},
		{"unknown command", "\\unknowncmd text\n", "text\n"},
		{"unknown with arg", "\\unknowncmd{arg}\n", "arg\n"},
		{"def body", "\\def\\foo{bar}baz\n", "barbaz\n"},
		{"glue", "a\\vskip 2pt plus 1pt b\n", "ab\n"},
		{"hspace", "a\\hspace{2cm}b\n", "ab\n"},
		{"slash", "and\\slash or\n", "and/ or\n"},
		{"ligature", "\\ae hello\n", "aehello\n"},
		{"linebreak", "a\\linebreak[4]b\n", "a\nb\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Strip([]byte(tc.input), NewOptions())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLatexCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"footnote", "x\\footnote{abc} y\n", "x(abc) y\n"},
		{"cite killed", "A \\cite{x} B\n", "A B\n"},
		{"citation is not cite", "A \\citation{x}\n", "A x\n"},
		{"label killed", "a\\label{x} b\n", "a b\n"},
		{"ref killed", "see \\ref{fig:1}.\n", "see .\n"},
		{"section star", "\\section*{Intro}\nText\n", "Intro\nText\n"},
		{"setlength", "\\setlength{\\parskip}{2pt}x\n", "x\n"},
		{"scalebox keeps last arg", "\\scalebox{2}{visible}\n", "visible\n"},
		{"raisebox keeps last arg", "\\raisebox{1ex}{up}\n", "up\n"},
		{"resizebox", "\\resizebox*{!}{2cm}{kept}\n", "kept\n"},
		{"textcolor killed", "\\textcolor{red}{gone}x\n", "x\n"},
		{"usepackage", "\\usepackage[utf8]{inputenc}\nx\n", "x\n"},
		{"newcommand", "\\newcommand{\\x}{y}z\n", "z\n"},
		{"parbox keeps body", "\\parbox[t]{3cm}{kept}x\n", "keptx\n"},
		{"escaped bracket in optional arg", "\\textcolor[a\\]{b}]{red}{gone}k\n", "k\n"},
		{"nested brackets in optional arg", "\\parbox[[x]]{3cm}{kept}\n", "kept\n"},
		{"inline formula", "a \\(x\\) b\n", "a  b\n"},
		{"display formula", "a \\[x\\] b\n", "a  b\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts := NewOptions()
			opts.Latex = true
			got, err := Strip([]byte(tc.input), opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEnvironments(t *testing.T) {
	t.Parallel()

	t.Run("ignored env dropped", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		got, err := Strip([]byte("\\begin{equation}E=mc^2\\end{equation}done\n"), opts)
		require.NoError(t, err)
		assert.Equal(t, "done\n", got)
	})

	t.Run("unlisted env kept", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		opts.SetEnvIgnore("tabular")
		got, err := Strip([]byte("\\begin{equation}E=mc^2\\end{equation}done\n"), opts)
		require.NoError(t, err)
		assert.Equal(t, "E=mc^2done\n", got)
	})

	t.Run("nested end of other env", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		input := "\\begin{tabular}{ll}a & b \\end{array} c\\end{tabular}x\n"
		got, err := Strip([]byte(input), opts)
		require.NoError(t, err)
		assert.Equal(t, "x\n", got)
	})

	t.Run("verbatim echoed", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		opts.SetEnvIgnore("equation")
		input := "\\begin{verbatim}\nraw $x$\n\\end{verbatim}done\n"
		got, err := Strip([]byte(input), opts)
		require.NoError(t, err)
		assert.Equal(t, "\nraw $x$\ndone\n", got)
	})

	t.Run("verbatim suppressed by default", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		input := "\\begin{verbatim}\nhidden\n\\end{verbatim}\ndone\n"
		got, err := Strip([]byte(input), opts)
		require.NoError(t, err)
		assert.Equal(t, "\ndone\n", got)
	})
}

func TestModeDetection(t *testing.T) {
	t.Parallel()

	t.Run("tex mode echoes begin argument", func(t *testing.T) {
		t.Parallel()
		got, err := Strip([]byte("\\begin{x} hi\n"), NewOptions())
		require.NoError(t, err)
		assert.Equal(t, "x hi\n", got)
	})

	t.Run("begin document enables latex", func(t *testing.T) {
		t.Parallel()
		input := "\\begin{document}\n\\begin{equation}x\\end{equation}ok\n"
		got, err := Strip([]byte(input), NewOptions())
		require.NoError(t, err)
		assert.Equal(t, "ok\n", got)
	})

	t.Run("documentclass enables latex", func(t *testing.T) {
		t.Parallel()
		input := "\\documentclass{article}\n\\begin{equation}x\\end{equation}done\n"
		got, err := Strip([]byte(input), NewOptions())
		require.NoError(t, err)
		assert.Equal(t, "done\n", got)
	})

	t.Run("force tex wins", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.ForceTex = true
		input := "\\documentclass{article}\nx\n"
		got, err := Strip([]byte(input), opts)
		require.NoError(t, err)
		// the class argument is echoed because LaTeX mode never
		// activates
		assert.Equal(t, "article\nx\n", got)
	})
}

func TestVerb(t *testing.T) {
	t.Parallel()

	t.Run("verbatim text kept", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		got, err := Strip([]byte("\\verb|co de|!\n"), opts)
		require.NoError(t, err)
		assert.Equal(t, "co de!\n", got)
	})

	t.Run("special characters kept", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		got, err := Strip([]byte("\\verb|\\x$|y\n"), opts)
		require.NoError(t, err)
		assert.Equal(t, "\\x$y\n", got)
	})

	t.Run("unterminated at eof", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		_, err := Strip([]byte("\\verb|oops"), opts)
		require.ErrorIs(t, err, ErrVerbIncomplete)
	})

	t.Run("unterminated at newline", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		_, err := Strip([]byte("\\verb|a\nb|\n"), opts)
		require.ErrorIs(t, err, ErrVerbIncomplete)
	})
}

func TestWordMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"words only", "Hello, world! 123\n", "Hello\nworld\n"},
		{"internal apostrophe", "it's fine\n", "it's\nfine\n"},
		{"trailing apostrophe", "dogs' bark\n", "dogs\nbark\n"},
		{"math dropped", "a $x+y$ b\n", "a\nb\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts := NewOptions()
			opts.Word = true
			got, err := Strip([]byte(tc.input), opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReplaceMode(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	opts.Replace = true
	got, err := Strip([]byte("$x \\leq y$.\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "noun verbs noun.\n", got)
}

func TestSpaceMode(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	opts.Latex = true
	opts.Space = true
	got, err := Strip([]byte("a\\label{x} b\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "a  b\n", got)
}

func TestSrcLoc(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	opts.SrcLoc = true
	got, err := Strip([]byte("Hi\nthere\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "<memory>:1: Hi\n<memory>:2: there\n", got)
}

func TestShowPictures(t *testing.T) {
	t.Parallel()

	input := "\\includegraphics[width=2cm]{fig/cat.png}\n"

	opts := NewOptions()
	opts.Latex = true
	opts.ShowPictures = true
	got, err := Strip([]byte(input), opts)
	require.NoError(t, err)
	assert.Equal(t, "<Picture fig/cat.png>", got)

	opts = NewOptions()
	opts.Latex = true
	got, err = Strip([]byte(input), opts)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

// mapResolver serves file contents from memory.
type mapResolver map[string]string

func (m mapResolver) Resolve(name string) ([]byte, string, error) {
	if body, ok := m[name]; ok {
		return []byte(body), name + ".tex", nil
	}
	return nil, "", assert.AnError
}

func runLexer(t *testing.T, opts *Options, files Resolver, input string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	l := New(opts, buf, files)
	require.NoError(t, l.Process([]byte(input), "main.tex"))
	return buf.String()
}

func TestInput(t *testing.T) {
	t.Parallel()

	t.Run("missing file continues", func(t *testing.T) {
		t.Parallel()
		got, err := Strip([]byte("a\\input nothere\nb\n"), NewOptions())
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n", got)
	})

	t.Run("nested", func(t *testing.T) {
		t.Parallel()
		files := mapResolver{
			"inner1": "1 \\input{inner2} 1",
			"inner2": "2",
		}
		got := runLexer(t, NewOptions(), files, "a \\input{inner1} b\n")
		assert.Equal(t, "a 1 2 1 b\n", got)
	})

	t.Run("no follow", func(t *testing.T) {
		t.Parallel()
		files := mapResolver{"inner": "hidden"}
		opts := NewOptions()
		opts.NoFollow = true
		got := runLexer(t, opts, files, "a \\input{inner} b\n")
		assert.Equal(t, "a  b\n", got)
	})

	t.Run("deep chain hits stack limit", func(t *testing.T) {
		t.Parallel()
		files := mapResolver{}
		for i := 0; i < 300; i++ {
			files[fmt.Sprintf("f%d", i)] = fmt.Sprintf("\\input{f%d}", i+1)
		}
		files["f300"] = "x"
		buf := &bytes.Buffer{}
		l := New(NewOptions(), buf, files)
		// the chain is cut off with a warning at the depth limit, so
		// the payload at its end is never reached
		require.NoError(t, l.ProcessFile("f0"))
		assert.Equal(t, "", buf.String())
	})

	t.Run("self inclusion refused", func(t *testing.T) {
		t.Parallel()
		files := mapResolver{"a": "x \\input{a} y\n"}
		buf := &bytes.Buffer{}
		l := New(NewOptions(), buf, files)
		require.NoError(t, l.ProcessFile("a"))
		assert.Equal(t, "x  y\n", buf.String())
	})
}

func TestIncludeOnly(t *testing.T) {
	t.Parallel()

	files := mapResolver{"ch1": "one", "ch2": "two"}

	t.Run("filters includes", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		input := "\\includeonly{ch1}\n\\include{ch1}\n\\include{ch2}\n"
		got := runLexer(t, opts, files, input)
		assert.Equal(t, "\none\n\n", got)
	})

	t.Run("empty list blocks all", func(t *testing.T) {
		t.Parallel()
		opts := NewOptions()
		opts.Latex = true
		input := "\\includeonly{}\n\\include{ch1}\n"
		got := runLexer(t, opts, files, input)
		assert.Equal(t, "\n\n", got)
	})
}

func TestCiteSpace(t *testing.T) {
	t.Parallel()

	// the space before \cite is swallowed together with the killed
	// citation
	opts := NewOptions()
	opts.Latex = true
	got, err := Strip([]byte("found in \\cite{knuth}.\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "found in.\n", got)
}
