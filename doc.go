// Package md2tex converts Markdown documents to LaTeX source.
//
// # Quick Start
//
// Create a converter, convert markdown, and write the result:
//
//	conv, err := md2tex.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2tex.Input{
//	    Markdown: "# Hello\n\n- one\n- two",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.tex", result.LaTeX, 0644)
//
// Non-fatal problems, such as a code block tagged with a language the
// listings package does not know, are reported in result.Diagnostics.
//
// # Conversion Pipeline
//
//  1. Preprocessing (line endings, Unicode NFC, YAML front matter)
//  2. Line classification (heading, list item, quote line, code fence, ...)
//  3. Grouping of consecutive lines into lists, quotes and code blocks
//  4. Rendering to LaTeX, with inline Markdown (emphasis, code, links,
//     math) converted by Goldmark
//
// The Markdown dialect is line oriented: a list item, quote line or
// heading occupies exactly one line, and nesting is expressed with four
// columns of indentation per level.
//
// # Configuration
//
// Converter-wide options:
//
//	conv, err := md2tex.NewConverter(
//	    md2tex.WithCodeStyle("plain"),
//	    md2tex.WithDefaultLanguage("go"),
//	    md2tex.WithAssetPath("/path/to/custom/assets"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2tex.Input{
//	    Markdown: content,
//	    Document: &md2tex.DocumentSettings{Title: "Report", Date: "today"},
//	    Page:     &md2tex.PageSettings{Size: "a4", Orientation: "portrait", Margin: 1},
//	})
//
// Title, author and date in a leading YAML front matter block take
// precedence over DocumentSettings.
//
// # Custom Assets
//
// Override the preamble template and style blocks with a directory:
//
//	assets/
//	├── styles/
//	│   └── custom.tex
//	└── templates/
//	    └── default.tex
//
// Templates use << and >> as action delimiters so that LaTeX braces need no
// escaping. A code style must define an lstlisting style named "md2tex".
package md2tex
