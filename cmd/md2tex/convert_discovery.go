package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
)

// MaxWorkers caps --workers. Conversion is CPU-bound, so more workers than
// cores only adds scheduling overhead.
const MaxWorkers = 64

// texExtension is the extension of every output file.
const texExtension = ".tex"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert. A directory input is
// walked recursively and mirrored under output.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", md2tex.ErrReadMarkdown, err)
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "")}}, nil
	}

	if isTeXPath(output) {
		return nil, fmt.Errorf("%w: output %s must be a directory when input is a directory", ErrUsage, output)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: resolveOutputPath(path, output, inputPath)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", md2tex.ErrReadMarkdown, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	return files, nil
}

// resolveOutputPath determines the .tex output path for a markdown file.
// An empty output writes next to the input; an output ending in .tex is
// used as is; any other output is a directory.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	base := texPath(filepath.Base(inputPath))

	if output == "" {
		return texPath(inputPath)
	}

	if isTeXPath(output) {
		return output
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(output, base)
}

// texPath replaces the extension of path with .tex.
func texPath(path string) string {
	out, err := fileutil.ReplaceExt(path, texExtension)
	if err != nil {
		// texExtension is a valid constant.
		panic(err)
	}
	return out
}

func isTeXPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), texExtension)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
