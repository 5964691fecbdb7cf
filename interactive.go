// interactive.go -
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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/tchajed/detex/tex"
)

const historyFile = ".detex_history"

// runInteractive reads single lines of TeX from the terminal and
// prints the filtered text after each one.  Scanner state such as
// LaTeX mode and the includeonly list persists across lines.
func runInteractive(opts *tex.Options, files tex.Resolver) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	l := tex.New(opts, os.Stdout, files)
	for {
		line, err := ln.Prompt("detex> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if err := l.Process([]byte(line+"\n"), "<interactive>"); err != nil {
			fmt.Fprintf(os.Stderr, "detex: %s\n", err)
		}
	}
}
