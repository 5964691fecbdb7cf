// Package tex strips TeX/LaTeX markup from document source, emitting
// the underlying prose text.
//
// The package performs a best-effort lexical strip: no macro expansion
// takes place, and unrecognised constructs fall back to literal echo.
package tex
