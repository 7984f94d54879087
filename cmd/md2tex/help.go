package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex [flags] <input> [output]")
	fmt.Fprintln(w, "       md2tex <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to LaTeX. A directory input converts every")
	fmt.Fprintln(w, ".md and .markdown file below it into a mirrored output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  doctor     Check the TeX installation (--json for machine output)")
	fmt.Fprintln(w, "  help       Show help for a topic: config, env, dates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output .tex file or directory")
	fmt.Fprintln(w, "      --stdout                Write LaTeX to standard output")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --doc-class <s>         Document class (default \"article\")")
	fmt.Fprintln(w, "      --font-size <s>         Base font size: 10pt, 11pt, 12pt")
	fmt.Fprintln(w, "      --doc-title <s>         Title (front matter wins)")
	fmt.Fprintln(w, "      --doc-author <s>        Author (front matter wins)")
	fmt.Fprintln(w, "      --doc-date <s>          Date: \"today\", \"auto\", \"auto:FORMAT\" or literal")
	fmt.Fprintln(w, "      --number-sections       Number section headings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, a5, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code and assets:")
	fmt.Fprintln(w, "      --code-style <s>        Listings style: default, plain, or a custom name")
	fmt.Fprintln(w, "      --default-language <s>  Language for unknown code tags (default \"python\")")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with custom styles/ and templates/")
	fmt.Fprintln(w, "      --template <s>          Preamble template name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 I/O or conversion error, 2 usage or config error, 130 interrupted.")
}

// printConfigHelp prints the config file layout.
func printConfigHelp(w io.Writer) {
	fmt.Fprintln(w, "Config files are YAML. 'md2tex -c work' looks for work.yaml or work.yml")
	fmt.Fprintln(w, "in the current directory, then in the md2tex user config directory.")
	fmt.Fprintln(w, "Unknown fields are rejected.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  input:")
	fmt.Fprintln(w, "    defaultDir: ./docs")
	fmt.Fprintln(w, "  output:")
	fmt.Fprintln(w, "    defaultDir: ./build")
	fmt.Fprintln(w, "  document:")
	fmt.Fprintln(w, "    class: article")
	fmt.Fprintln(w, "    fontSize: 11pt")
	fmt.Fprintln(w, "    title: \"Notes\"")
	fmt.Fprintln(w, "    author: \"A. Writer\"")
	fmt.Fprintln(w, "    date: today")
	fmt.Fprintln(w, "    numberSections: false")
	fmt.Fprintln(w, "  page:")
	fmt.Fprintln(w, "    size: a4")
	fmt.Fprintln(w, "    orientation: portrait")
	fmt.Fprintln(w, "    margin: 1.0")
	fmt.Fprintln(w, "  code:")
	fmt.Fprintln(w, "    defaultLanguage: python")
	fmt.Fprintln(w, "    style: default")
	fmt.Fprintln(w, "  assets:")
	fmt.Fprintln(w, "    basePath: ./tex-assets")
	fmt.Fprintln(w, "    template: default")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > MD2TEX_* variables > config file > defaults.")
	fmt.Fprintln(w, "Front matter in a Markdown file overrides title, author and date.")
}

// printEnvHelp prints the recognized environment variables.
func printEnvHelp(w io.Writer) {
	names := make([]string, 0, len(knownEnvVars))
	for name := range knownEnvVars {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Environment variables (override the config file, not flags):")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// printDatesHelp prints the date value syntax.
func printDatesHelp(w io.Writer) {
	fmt.Fprintln(w, "Date values:")
	fmt.Fprintln(w, "  today          LaTeX \\today, resolved when the document is compiled")
	fmt.Fprintln(w, "  auto           Conversion date as YYYY-MM-DD")
	fmt.Fprintln(w, "  auto:FORMAT    Conversion date in FORMAT")
	fmt.Fprintln(w, "  anything else  Used literally")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "Use [text] to escape literals: [Date]: YYYY")
}

// runHelp prints help for a topic and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch strings.ToLower(args[0]) {
	case "config":
		printConfigHelp(env.Stdout)
	case "env":
		printEnvHelp(env.Stdout)
	case "dates", "date":
		printDatesHelp(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown help topic: %s\n", args[0])
		fmt.Fprintln(env.Stderr, "topics: config, env, dates")
		return ExitUsage
	}
	return ExitSuccess
}
