package md2tex

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/alnah/go-md2tex/internal/assets"
	"github.com/alnah/go-md2tex/internal/dateutil"
	"github.com/alnah/go-md2tex/internal/listings"
	"github.com/alnah/go-md2tex/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.LanguageResolver = (*listings.Catalog)(nil)
	_ AssetLoader               = (*assets.AssetResolver)(nil)
)

// Converter orchestrates the Markdown-to-LaTeX conversion pipeline.
// Create with NewConverter, then call Convert for each document. A Converter
// holds no per-document state and is safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	publicAssetLoader AssetLoader
	assetLoader       AssetLoader
	preprocessor      *pipeline.Preprocessor
	grouper           *pipeline.Grouper
	inline            *pipeline.InlineTransformer
	preamble          *template.Template
	codeStyle         string
	linkStyle         string
	now               func() time.Time
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithAssetPath, WithCodeStyle).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			codeStyle:       DefaultStyle,
			templateName:    DefaultTemplate,
			defaultLanguage: DefaultLanguage,
		},
		preprocessor: &pipeline.Preprocessor{},
		inline:       pipeline.NewInlineTransformer(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.resolveAssetLoader(); err != nil {
		return nil, err
	}

	lang, ok := listings.New(DefaultLanguage).Resolve(c.cfg.defaultLanguage)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, c.cfg.defaultLanguage)
	}
	c.grouper = pipeline.NewGrouper(listings.New(lang))

	if err := c.loadAssets(); err != nil {
		return nil, err
	}

	return c, nil
}

// resolveAssetLoader picks the asset source: WithAssetLoader, then
// WithAssetPath, then the embedded assets.
func (c *Converter) resolveAssetLoader() error {
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
		return nil
	}
	loader, err := NewAssetLoader(c.cfg.assetPath)
	if err != nil {
		return err
	}
	c.assetLoader = loader
	return nil
}

func (c *Converter) loadAssets() error {
	text, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
	if err != nil {
		return fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}
	c.preamble, err = pipeline.ParsePreamble(c.cfg.templateName, text)
	if err != nil {
		return fmt.Errorf("parsing template %q: %w", c.cfg.templateName, err)
	}

	c.codeStyle, err = c.assetLoader.LoadStyle(c.cfg.codeStyle)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", c.cfg.codeStyle, err)
	}

	c.linkStyle, err = c.assetLoader.LoadStyle(assets.LinkStyleName)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", assets.LinkStyleName, err)
	}
	return nil
}

// Convert runs the full pipeline and returns the LaTeX document.
// The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrLaTeXGeneration, r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	src, err := c.preprocessor.Preprocess(ctx, input.Markdown)
	if err != nil {
		if errors.Is(err, pipeline.ErrFrontMatter) {
			return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
		return nil, err
	}

	records, containsCode := pipeline.TokenizeFrom(src.Body, src.FirstLine)
	contents, diags := c.grouper.Group(records)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	data, err := c.preambleData(input, src.Meta, containsCode)
	if err != nil {
		return nil, err
	}

	renderer := pipeline.NewRenderer(c.inline, pipeline.RenderSettings{
		Preamble:       c.preamble,
		Data:           data,
		CodeStyleName:  assets.CodeStyleName,
		NumberSections: input.Document != nil && input.Document.NumberSections,
	})
	latex, err := renderer.Document(contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaTeXGeneration, err)
	}

	return &ConvertResult{
		LaTeX:        []byte(latex),
		Diagnostics:  toDiagnostics(diags),
		ContainsCode: containsCode,
	}, nil
}

// Close releases resources held by the converter. It currently holds none.
func (c *Converter) Close() error {
	return nil
}

// preambleData builds the template data. Front matter fields override the
// document settings.
func (c *Converter) preambleData(input Input, meta pipeline.FrontMatter, containsCode bool) (pipeline.PreambleData, error) {
	doc := DocumentSettings{}
	if input.Document != nil {
		doc = *input.Document
	}
	if meta.Title != "" {
		doc.Title = meta.Title
	}
	if meta.Author != "" {
		doc.Author = meta.Author
	}
	if meta.Date != "" {
		doc.Date = meta.Date
	}

	class := doc.Class
	if class == "" {
		class = DefaultDocumentClass
	}

	date, err := c.date(doc.Date)
	if err != nil {
		return pipeline.PreambleData{}, err
	}

	return pipeline.PreambleData{
		Class:        class,
		ClassOptions: doc.FontSize,
		Geometry:     input.Page.geometry(),
		ContainsCode: containsCode,
		CodeStyle:    strings.TrimSpace(c.codeStyle),
		LinkStyle:    strings.TrimSpace(c.linkStyle),
		Title:        c.inline.Transform(doc.Title),
		Author:       c.inline.Transform(doc.Author),
		Date:         date,
	}, nil
}

// date renders a date value: "today" becomes \today, auto values are
// resolved against the current time.
func (c *Converter) date(value string) (string, error) {
	if dateutil.IsToday(value) {
		return `\today`, nil
	}
	resolved, err := dateutil.ResolveDate(value, c.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return c.inline.Transform(resolved), nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Document.Validate(); err != nil {
		return err
	}
	return nil
}

func toDiagnostics(diags []pipeline.Diagnostic) []Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic(d)
	}
	return out
}
