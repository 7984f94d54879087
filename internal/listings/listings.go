// Package listings resolves code fence info strings to language names
// understood by the LaTeX listings package.
package listings

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// DefaultLanguage is substituted for tags outside the catalog.
const DefaultLanguage = "python"

// languages is the set of listings language names, lowercased.
var languages = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"abap", "acm", "acmscript", "acsl", "ada", "algol", "ant", "assembler",
		"awk", "bash", "basic", "c", "c++", "cil", "clean", "cobol", "comal 80",
		"command.com", "comsol", "csh", "delphi", "eiffel", "elan", "elisp",
		"erlang", "euphoria", "fortran", "gap", "gcl", "gnuplot", "go", "hansl",
		"haskell", "html", "idl", "inform", "java", "jvmis", "ksh", "lingo",
		"lisp", "llvm", "logo", "lua", "make", "mathematica", "matlab",
		"mercury", "metapost", "miranda", "mizar", "ml", "modula-2", "mupad",
		"nastran", "oberon-2", "ocl", "octave", "oorexx", "oz", "pascal",
		"perl", "php", "pl/i", "plasm", "postscript", "pov", "prolog",
		"promela", "pstricks", "python", "r", "reduce", "rexx", "ruby", "s",
		"sas", "scala", "scilab", "sh", "shelxl", "simula", "sl", "sparql",
		"sql", "swift", "tcl", "tex", "vbscript", "verilog", "vhdl", "vrml",
		"xml", "xslt",
	} {
		languages[name] = struct{}{}
	}
}

// Catalog resolves fence tags against the listings languages.
// The zero value is not usable; create one with New.
type Catalog struct {
	fallback string
}

// New creates a Catalog that substitutes fallback for unknown tags.
// An empty or unknown fallback is replaced by DefaultLanguage.
func New(fallback string) *Catalog {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if !Known(fallback) {
		fallback = DefaultLanguage
	}
	return &Catalog{fallback: fallback}
}

// Fallback returns the language substituted for unknown tags.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Resolve returns the listings name for tag. Exact (case-insensitive)
// catalog names win; otherwise the tag is looked up as a chroma lexer name,
// alias or file extension and that lexer's names are tried. ok is false
// when the fallback was substituted for a non-empty tag.
func (c *Catalog) Resolve(tag string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return c.fallback, true
	}
	if Known(tag) {
		return tag, true
	}
	if name, ok := viaLexer(tag); ok {
		return name, true
	}
	return c.fallback, false
}

// Known reports whether name is a listings language.
func Known(name string) bool {
	_, ok := languages[name]
	return ok
}

// viaLexer maps tag through the chroma lexer registry, so "py", "golang"
// or "cpp" reach their listings names.
func viaLexer(tag string) (string, bool) {
	lexer := lexers.Get(tag)
	if lexer == nil {
		return "", false
	}
	cfg := lexer.Config()

	candidates := append([]string{cfg.Name}, cfg.Aliases...)
	for _, candidate := range candidates {
		candidate = strings.ToLower(candidate)
		if Known(candidate) {
			return candidate, true
		}
	}
	return "", false
}
