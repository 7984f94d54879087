package assets

// Built-in asset names.
const (
	// DefaultStyleName is the listings style used for code blocks.
	DefaultStyleName = "default"

	// LinkStyleName is the style holding the hyperref setup.
	LinkStyleName = "hyperref"

	// DefaultTemplateName is the preamble template.
	DefaultTemplateName = "default"
)

// CodeStyleName is the lstlisting style every code style asset defines.
const CodeStyleName = "md2tex"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a style block by name using the embedded loader.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a preamble template by name using the embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
