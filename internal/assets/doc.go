// Package assets provides the LaTeX style blocks and preamble templates
// used when writing documents. Assets can be loaded from embedded files or
// a custom directory.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from the go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── {name}.tex        # listings style blocks (default, plain)
//	│   └── hyperref.tex      # \hypersetup block
//	└── templates/
//	    └── {name}.tex        # preamble templates (text/template, << >> delimiters)
//
// Code style blocks must define the lstlisting style named by CodeStyleName.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
