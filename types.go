package md2tex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-md2tex/internal/dateutil"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeA5     = "a5"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

// Document defaults.
const (
	DefaultDocumentClass = "article"
	DefaultLanguage      = "python"
)

// documentClassPattern accepts LaTeX class names such as "article" or
// "scrartcl".
var documentClassPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// PageSettings configures the geometry package.
type PageSettings struct {
	Size        string  // "letter", "a4", "a5", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means geometry defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// geometry returns the geometry package options for p, empty for nil.
func (p *PageSettings) geometry() string {
	if p == nil {
		return ""
	}
	opts := []string{strings.ToLower(p.Size) + "paper"}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		opts = append(opts, OrientationLandscape)
	}
	opts = append(opts, fmt.Sprintf("margin=%.2fin", p.Margin))
	return strings.Join(opts, ",")
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeA5, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// DocumentSettings configures the document class and title block.
// Title, Author and Date are Markdown; front matter in the input overrides
// them.
type DocumentSettings struct {
	Class          string // LaTeX class, default "article"
	FontSize       string // "10pt", "11pt", "12pt" or empty
	Title          string
	Author         string
	Date           string // literal, "today", "auto" or "auto:FORMAT"
	NumberSections bool
}

// Validate checks that document settings are valid.
// Returns nil if d is nil (nil means defaults).
func (d *DocumentSettings) Validate() error {
	if d == nil {
		return nil
	}
	if d.Class != "" && !documentClassPattern.MatchString(d.Class) {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentClass, d.Class)
	}
	switch d.FontSize {
	case "", "10pt", "11pt", "12pt":
	default:
		return fmt.Errorf("%w: %q (must be 10pt, 11pt or 12pt)", ErrInvalidFontSize, d.FontSize)
	}
	if err := dateutil.ValidateDate(d.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return nil
}

// Input contains conversion parameters.
type Input struct {
	Markdown string            // Markdown content (required)
	Document *DocumentSettings // Document settings (optional, nil = defaults)
	Page     *PageSettings     // Page settings (optional, nil = geometry defaults)
}

// Diagnostic is a non-fatal problem found while converting, such as an
// unknown code block language.
type Diagnostic struct {
	Line    int // 1-based line in the input, 0 when unknown
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	LaTeX        []byte
	Diagnostics  []Diagnostic
	ContainsCode bool // true if the document has at least one code block
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	assetPath       string
	codeStyle       string
	templateName    string
	defaultLanguage string
}

// WithAssetPath sets a directory holding custom styles/ and templates/.
// Custom assets take precedence over the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithCodeStyle selects the style asset used for code blocks.
func WithCodeStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.codeStyle = name
	}
}

// WithTemplate selects the preamble template asset.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithDefaultLanguage sets the language substituted for unknown code block
// tags. NewConverter fails with ErrUnknownLanguage if it is not a known
// listings language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Converter) {
		c.cfg.defaultLanguage = lang
	}
}
