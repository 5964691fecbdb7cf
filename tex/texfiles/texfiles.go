// texfiles.go -
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

// Package texfiles locates TeX input files using TEXINPUTS-style
// search paths and extension fallback rules.
package texfiles

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// MaxPaths is the maximum number of separate search paths consulted.
const MaxPaths = 10

// ErrNotFound indicates that a file could not be located in any of the
// search paths.
var ErrNotFound = errors.New("file not found")

// DefaultInputs returns the search path used when TEXINPUTS is unset.
func DefaultInputs() string {
	if runtime.GOOS == "windows" {
		return ".;/emtex/texinput"
	}
	return ".:/usr/local/tex/inputs"
}

// Resolver locates TeX files in an ordered list of search paths.
type Resolver struct {
	Paths []string
}

// NewResolver builds a Resolver from the TEXINPUTS environment
// variable.  A leading or trailing path separator splices the default
// path list in at that end.
func NewResolver() *Resolver {
	sep := string(os.PathListSeparator)

	texinputs := os.Getenv("TEXINPUTS")
	if texinputs == "" {
		texinputs = DefaultInputs()
	}

	var paths string
	if strings.HasPrefix(texinputs, sep) {
		paths = DefaultInputs()
	}
	paths += texinputs
	if strings.HasSuffix(texinputs, sep) {
		paths += DefaultInputs()
	}

	r := &Resolver{}
	for _, p := range strings.Split(paths, sep) {
		if p == "" {
			continue
		}
		r.Paths = append(r.Paths, p)
		if len(r.Paths) >= MaxPaths {
			break
		}
	}
	return r
}

// Resolve locates the named file and returns its contents together
// with the path it was found under.  For each search path the
// following order is used:
//
//   - a name ending in ".tex" must match exactly, otherwise the next
//     path is tried;
//   - a name with some other extension is tried as named;
//   - the name with ".tex" substituted for its extension is tried;
//   - the name is tried as-is.
//
// Absolute names bypass the search paths.  The error is ErrNotFound
// when no candidate matches.
func (r *Resolver) Resolve(name string) ([]byte, string, error) {
	if filepath.IsAbs(name) {
		if data, err := os.ReadFile(name); err == nil {
			return data, name, nil
		}
		return nil, "", ErrNotFound
	}

	for _, dir := range r.Paths {
		full := filepath.Join(dir, name)

		if strings.HasSuffix(name, ".tex") {
			if data, err := os.ReadFile(full); err == nil {
				return data, full, nil
			}
			continue
		}

		if ext := filepath.Ext(name); ext != "" {
			if data, err := os.ReadFile(full); err == nil {
				return data, full, nil
			}
		}

		texName := withTexExt(full)
		if data, err := os.ReadFile(texName); err == nil {
			return data, texName, nil
		}

		if data, err := os.ReadFile(full); err == nil {
			return data, full, nil
		}
	}

	if len(r.Paths) == 0 {
		if data, err := os.ReadFile(name); err == nil {
			return data, name, nil
		}
		texName := withTexExt(name)
		if data, err := os.ReadFile(texName); err == nil {
			return data, texName, nil
		}
	}

	return nil, "", ErrNotFound
}

// withTexExt replaces the extension of path with ".tex".
func withTexExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".tex"
}
