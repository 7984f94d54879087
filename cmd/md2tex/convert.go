package main

import (
	"context"
	"errors"
	"fmt"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/assets"
	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/dateutil"
	"github.com/alnah/go-md2tex/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrStdoutBatch      = errors.New("--stdout needs a single input file")
	ErrConversionFailed = errors.New("conversion failed")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	document *md2tex.DocumentSettings
	page     *md2tex.PageSettings
	workers  int
	toStdout bool
	quiet    bool
	verbose  bool
}

// input builds the converter input for one file.
func (p *conversionParams) input(markdown string) md2tex.Input {
	return md2tex.Input{
		Markdown: markdown,
		Document: p.document,
		Page:     p.page,
	}
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig(env.getenv)
	warnUnknownEnvVars(env.Stderr, env.environ())

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Resolve "auto" dates once for the entire batch
	date, err := dateutil.ResolveDate(cfg.Document.Date, env.now())
	if err != nil {
		return fmt.Errorf("%w: %v", md2tex.ErrInvalidDate, err)
	}
	cfg.Document.Date = date

	inputPath, output, err := resolvePaths(positionalArgs, flags.output, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, output)
	if err != nil {
		return err
	}
	if flags.stdout && len(files) > 1 {
		return fmt.Errorf("%w: %s holds %d files", ErrStdoutBatch, inputPath, len(files))
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	params := &conversionParams{
		document: buildDocumentSettings(cfg),
		page:     buildPageSettings(cfg),
		workers:  workers,
		toStdout: flags.stdout,
		quiet:    flags.common.quiet,
		verbose:  flags.common.verbose,
	}
	if err := params.document.Validate(); err != nil {
		return err
	}
	if err := params.page.Validate(); err != nil {
		return err
	}

	if params.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), resolveWorkers(workers, len(files)))
	}

	results := convertBatch(ctx, conv, files, params)

	failed := printResults(results, params, env)
	if ctx.Err() != nil {
		return fmt.Errorf("interrupted: %w", ctx.Err())
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failed, len(results))
	}

	return nil
}

// loadConfig loads the config named by the --config flag, falling back to
// MD2TEX_CONFIG. No name means the neutral default config.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.Document.Class, flags.document.class)
	set(&cfg.Document.FontSize, flags.document.fontSize)
	set(&cfg.Document.Title, flags.document.title)
	set(&cfg.Document.Author, flags.document.author)
	set(&cfg.Document.Date, flags.document.date)
	if flags.document.numberSet {
		cfg.Document.NumberSections = flags.document.numberSections
	}

	set(&cfg.Page.Size, flags.page.size)
	set(&cfg.Page.Orientation, flags.page.orientation)
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	set(&cfg.Code.Style, flags.code.style)
	set(&cfg.Code.DefaultLanguage, flags.code.defaultLanguage)

	set(&cfg.Assets.BasePath, flags.assets.basePath)
	set(&cfg.Assets.Template, flags.assets.template)
}

// resolvePaths returns the input path and the output file or directory.
// The output comes from --output, then the second argument, then the
// configured output directory.
func resolvePaths(args []string, flagOutput string, cfg *config.Config) (input, output string, err error) {
	if len(args) > 2 {
		return "", "", fmt.Errorf("%w: too many arguments (%d)", ErrUsage, len(args))
	}

	switch {
	case len(args) > 0:
		input = args[0]
	case cfg.Input.DefaultDir != "":
		input = cfg.Input.DefaultDir
	default:
		return "", "", fmt.Errorf("%w: %w", ErrUsage, ErrNoInput)
	}

	switch {
	case flagOutput != "":
		output = flagOutput
	case len(args) == 2:
		output = args[1]
	default:
		output = cfg.Output.DefaultDir
	}

	return input, output, nil
}

// newConverter creates the shared converter from config.
func newConverter(cfg *config.Config) (*md2tex.Converter, error) {
	var opts []md2tex.Option
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2tex.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Assets.Template != "" {
		opts = append(opts, md2tex.WithTemplate(cfg.Assets.Template))
	}
	if cfg.Code.Style != "" {
		opts = append(opts, md2tex.WithCodeStyle(cfg.Code.Style))
	}
	if cfg.Code.DefaultLanguage != "" {
		opts = append(opts, md2tex.WithDefaultLanguage(cfg.Code.DefaultLanguage))
	}

	conv, err := md2tex.NewConverter(opts...)
	switch {
	case err == nil:
		return conv, nil
	case errors.Is(err, md2tex.ErrStyleNotFound) && cfg.Assets.BasePath == "":
		return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.EmbeddedStyles()))
	case errors.Is(err, md2tex.ErrUnknownLanguage):
		return nil, fmt.Errorf("%w%s", err, hints.ForUnknownLanguage())
	default:
		return nil, err
	}
}

// buildDocumentSettings creates md2tex.DocumentSettings from config.
func buildDocumentSettings(cfg *config.Config) *md2tex.DocumentSettings {
	return &md2tex.DocumentSettings{
		Class:          cfg.Document.Class,
		FontSize:       cfg.Document.FontSize,
		Title:          cfg.Document.Title,
		Author:         cfg.Document.Author,
		Date:           cfg.Document.Date,
		NumberSections: cfg.Document.NumberSections,
	}
}

// buildPageSettings creates md2tex.PageSettings from config.
// Returns nil when no page setting is configured, which leaves the
// geometry package with its defaults.
func buildPageSettings(cfg *config.Config) *md2tex.PageSettings {
	hasConfig := cfg.Page.Size != "" || cfg.Page.Orientation != "" || cfg.Page.Margin > 0
	if !hasConfig {
		return nil
	}

	ps := md2tex.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin > 0 {
		ps.Margin = cfg.Page.Margin
	}
	return ps
}
