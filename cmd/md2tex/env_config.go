package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2tex/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2TEX_CONFIG: config name or path

	InputDir  string // MD2TEX_INPUT_DIR: default input directory
	OutputDir string // MD2TEX_OUTPUT_DIR: default output directory

	DocClass  string // MD2TEX_DOC_CLASS: document class
	DocAuthor string // MD2TEX_DOC_AUTHOR: author line
	DocDate   string // MD2TEX_DOC_DATE: date value

	PageSize string // MD2TEX_PAGE_SIZE: letter, a4, a5, legal

	CodeStyle       string // MD2TEX_CODE_STYLE: listings style
	DefaultLanguage string // MD2TEX_DEFAULT_LANGUAGE: fallback fence language
	AssetPath       string // MD2TEX_ASSET_PATH: custom asset directory

	Workers int // MD2TEX_WORKERS: parallel workers
}

// envPrefix starts every variable md2tex reads.
const envPrefix = "MD2TEX_"

// knownEnvVars lists valid MD2TEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2TEX_CONFIG":           true,
	"MD2TEX_INPUT_DIR":        true,
	"MD2TEX_OUTPUT_DIR":       true,
	"MD2TEX_DOC_CLASS":        true,
	"MD2TEX_DOC_AUTHOR":       true,
	"MD2TEX_DOC_DATE":         true,
	"MD2TEX_PAGE_SIZE":        true,
	"MD2TEX_CODE_STYLE":       true,
	"MD2TEX_DEFAULT_LANGUAGE": true,
	"MD2TEX_ASSET_PATH":       true,
	"MD2TEX_WORKERS":          true,
	"MD2TEX_CONTAINER":        true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:      getenv("MD2TEX_CONFIG"),
		InputDir:        getenv("MD2TEX_INPUT_DIR"),
		OutputDir:       getenv("MD2TEX_OUTPUT_DIR"),
		DocClass:        getenv("MD2TEX_DOC_CLASS"),
		DocAuthor:       getenv("MD2TEX_DOC_AUTHOR"),
		DocDate:         getenv("MD2TEX_DOC_DATE"),
		PageSize:        getenv("MD2TEX_PAGE_SIZE"),
		CodeStyle:       getenv("MD2TEX_CODE_STYLE"),
		DefaultLanguage: getenv("MD2TEX_DEFAULT_LANGUAGE"),
		AssetPath:       getenv("MD2TEX_ASSET_PATH"),
	}

	if workers := getenv("MD2TEX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2TEX_* variables.
// Helps catch typos like MD2TEX_DOC_AUTOR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfEmpty := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}

	setIfEmpty(&cfg.Input.DefaultDir, env.InputDir)
	setIfEmpty(&cfg.Output.DefaultDir, env.OutputDir)
	setIfEmpty(&cfg.Document.Class, env.DocClass)
	setIfEmpty(&cfg.Document.Author, env.DocAuthor)
	setIfEmpty(&cfg.Document.Date, env.DocDate)
	setIfEmpty(&cfg.Page.Size, env.PageSize)
	setIfEmpty(&cfg.Code.Style, env.CodeStyle)
	setIfEmpty(&cfg.Code.DefaultLanguage, env.DefaultLanguage)
	setIfEmpty(&cfg.Assets.BasePath, env.AssetPath)
}
