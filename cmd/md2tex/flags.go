package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document class and title block flags.
type documentFlags struct {
	class          string
	fontSize       string
	title          string
	author         string
	date           string
	numberSections bool
	numberSet      bool // --number-sections given explicitly
}

// pageFlags holds page geometry flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// codeFlags holds code block flags.
type codeFlags struct {
	style           string
	defaultLanguage string
}

// assetFlags holds asset selection flags.
type assetFlags struct {
	basePath string
	template string
}

// convertFlags holds every flag of a conversion run.
type convertFlags struct {
	output   string
	workers  int
	stdout   bool
	common   commonFlags
	document documentFlags
	page     pageFlags
	code     codeFlags
	assets   assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.class, "doc-class", "", "LaTeX document class (default \"article\")")
	fs.StringVar(&f.fontSize, "font-size", "", "base font size: 10pt, 11pt, 12pt")
	fs.StringVar(&f.title, "doc-title", "", "document title")
	fs.StringVar(&f.author, "doc-author", "", "document author")
	fs.StringVar(&f.date, "doc-date", "", "document date (\"today\", \"auto\", \"auto:FORMAT\" or literal)")
	fs.BoolVar(&f.numberSections, "number-sections", false, "number section headings")
}

// addPageFlags adds page geometry flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, a5, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addCodeFlags adds code block flags to a FlagSet.
func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.StringVar(&f.style, "code-style", "", "listings style for code blocks")
	fs.StringVar(&f.defaultLanguage, "default-language", "", "language for unknown code block tags (default \"python\")")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.basePath, "asset-path", "", "directory with custom styles/ and templates/")
	fs.StringVar(&f.template, "template", "", "preamble template name")
}

// parseConvertFlags parses conversion flags and returns positional args.
// Parse failures wrap ErrUsage; -h/--help returns flag.ErrHelp.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("md2tex", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.stdout, "stdout", false, "write LaTeX to standard output")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addCodeFlags(fs, &f.code)
	addAssetFlags(fs, &f.assets)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	f.document.numberSet = fs.Changed("number-sections")

	return f, fs.Args(), nil
}
