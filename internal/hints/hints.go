// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"

	"github.com/alnah/go-md2tex/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForTeXNotFound returns hints for a missing TeX distribution.
// The suggestion depends on the platform and on container detection.
func ForTeXNotFound() string {
	switch {
	case IsInContainer():
		return format("install texlive-latex-recommended in the image, or mount a TeX Live install")
	case runtime.GOOS == "windows":
		return format("install MiKTeX or TeX Live and add its bin directory to PATH")
	case runtime.GOOS == "darwin":
		return format("install MacTeX or BasicTeX and restart the shell")
	default:
		return format("install TeX Live from your package manager (e.g. texlive-latex-recommended)")
	}
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the md2tex user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "md2tex") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownLanguage returns hints for an unsupported default code language.
func ForUnknownLanguage() string {
	return format("use a listings language name such as python, go, c or bash")
}

// ForEmptyMarkdown returns hints for empty input files.
func ForEmptyMarkdown() string {
	return format("the input file has no content")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
