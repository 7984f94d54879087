package assets

import (
	"os"
	"path/filepath"
	"testing"
)

// Listings and preamble snippets used as custom assets.
const (
	boxedStyle   = "\\lstdefinestyle{md2tex}{frame=single, basicstyle=\\ttfamily}\n"
	memoPreamble = "\\documentclass{<<.Class>>}\n\\usepackage{listings}\n"
)

// assetTree creates a custom asset directory holding the given files,
// keyed by their path relative to the root (e.g. "styles/boxed.tex").
func assetTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"styles", "templates"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(root, rel), []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return root
}
