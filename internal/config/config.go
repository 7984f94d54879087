package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxTitleLength       = 200  // Document title
	MaxAuthorLength      = 200  // One or more author names
	MaxDateLength        = 100  // "today", "auto:FORMAT" or a literal date
	MaxClassLength       = 50   // "article", "scrartcl"
	MaxFontSizeLength    = 10   // "11pt"
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxLanguageLength    = 50   // fence language name
	MaxStyleLength       = 100  // style name
	MaxPathLength        = 4096 // PATH_MAX on Linux
)

// Page margin bounds in inches. Zero means unset.
const (
	minMargin = 0.25
	maxMargin = 3.0
)

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Page     PageConfig     `yaml:"page"`
	Code     CodeConfig     `yaml:"code"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig defines the document class and title block.
type DocumentConfig struct {
	Class          string `yaml:"class"`    // LaTeX document class (default: "article")
	FontSize       string `yaml:"fontSize"` // "10pt", "11pt", "12pt"
	Title          string `yaml:"title"`
	Author         string `yaml:"author"`
	Date           string `yaml:"date"` // "today", "auto", "auto:FORMAT" or literal
	NumberSections bool   `yaml:"numberSections"`
}

// PageConfig defines page geometry.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "a5", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// CodeConfig defines code block options.
type CodeConfig struct {
	DefaultLanguage string `yaml:"defaultLanguage"` // Fallback for unknown fence languages
	Style           string `yaml:"style"`           // Listings style name
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Template string `yaml:"template"` // Preamble template name
}

// Validate checks field lengths and the values that can be checked without
// the converter. Called automatically by LoadConfig.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.class", c.Document.Class, MaxClassLength},
		{"document.fontSize", c.Document.FontSize, MaxFontSizeLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxAuthorLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"code.defaultLanguage", c.Code.DefaultLanguage, MaxLanguageLength},
		{"code.style", c.Code.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.template", c.Assets.Template, MaxStyleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidConfig, c.Page.Orientation)
		}
	}
	if c.Page.Margin != 0 && (c.Page.Margin < minMargin || c.Page.Margin > maxMargin) {
		return fmt.Errorf("%w: page.margin %.2f (must be between %.2f and %.2f)", ErrInvalidConfig, c.Page.Margin, minMargin, maxMargin)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. Empty fields fall back to
// the converter defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "md2tex", name+ext))
		}
	}
	return paths
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
