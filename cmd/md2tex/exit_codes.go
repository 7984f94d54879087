package main

import (
	"context"
	"errors"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/config"
)

// Exit codes for the md2tex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 128+SIGINT when interrupted.
const (
	ExitSuccess     = 0   // Successful conversion
	ExitGeneral     = 1   // I/O or conversion failure
	ExitUsage       = 2   // Invalid flags, config, or validation
	ExitInterrupted = 130 // Canceled by SIGINT/SIGTERM
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrStdoutBatch) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, md2tex.ErrInvalidPageSize) ||
		errors.Is(err, md2tex.ErrInvalidOrientation) ||
		errors.Is(err, md2tex.ErrInvalidMargin) ||
		errors.Is(err, md2tex.ErrInvalidDocumentClass) ||
		errors.Is(err, md2tex.ErrInvalidFontSize) ||
		errors.Is(err, md2tex.ErrInvalidDate) ||
		errors.Is(err, md2tex.ErrUnknownLanguage) ||
		errors.Is(err, md2tex.ErrStyleNotFound) ||
		errors.Is(err, md2tex.ErrTemplateNotFound) ||
		errors.Is(err, md2tex.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
