// main.go -
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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/tchajed/detex/tex"
	"github.com/tchajed/detex/tex/texfiles"
)

const version = "2.8.9"

var (
	citeFlag    = flag.Bool("c", false, "echo the arguments of \\cite, \\ref and \\pageref")
	envList     = flag.String("e", tex.DefaultEnvs, "comma separated list of environments to ignore")
	latexFlag   = flag.Bool("l", false, "force LaTeX mode")
	noFollow    = flag.Bool("n", false, "do not follow \\input and \\include")
	replaceFlag = flag.Bool("r", false, "replace math with \"noun\" and \"verbs\" placeholders")
	spaceFlag   = flag.Bool("s", false, "replace control sequences with spaces")
	texFlag     = flag.Bool("t", false, "force TeX mode")
	wordFlag    = flag.Bool("w", false, "word only output, one word per line")
	srcFlag     = flag.Bool("1", false, "prefix each line with its source file and line number")
	interFlag   = flag.Bool("i", false, "read lines interactively")
	versionFlag = flag.Bool("v", false, "print the version number and exit")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *versionFlag {
		fmt.Println("detex", version)
		return
	}

	opts := tex.NewOptions()
	opts.Cite = *citeFlag
	opts.Latex = *latexFlag
	opts.NoFollow = *noFollow
	opts.Replace = *replaceFlag
	opts.Space = *spaceFlag
	opts.ForceTex = *texFlag
	opts.Word = *wordFlag
	opts.SrcLoc = *srcFlag
	opts.SetEnvIgnore(*envList)

	// Invoking the binary as "delatex" implies -l, like the
	// historical delatex hard link.
	if filepath.Base(os.Args[0]) == "delatex" {
		opts.Latex = true
	}

	files := texfiles.NewResolver()

	if *interFlag {
		if err := runInteractive(opts, files); err != nil {
			log.Fatalf("detex: %s", err)
		}
		return
	}

	l := tex.New(opts, os.Stdout, files)

	if flag.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("detex: %s", err)
		}
		if err := l.Process(data, "<stdin>"); err != nil {
			log.Fatalf("detex: %s", err)
		}
		return
	}

	exitCode := 0
	for _, name := range flag.Args() {
		if err := l.ProcessFile(name); err != nil {
			log.Printf("detex: warning: %s", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
