package md2tex

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown   = errors.New("markdown content cannot be empty")
	ErrReadMarkdown    = errors.New("failed to read markdown")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrLaTeXGeneration = errors.New("LaTeX generation failed")
	ErrFrontMatter     = errors.New("invalid front matter")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Document settings validation errors.
	ErrInvalidDocumentClass = errors.New("invalid document class")
	ErrInvalidFontSize      = errors.New("invalid font size")
	ErrInvalidDate          = errors.New("invalid date")

	// Code block settings errors.
	ErrUnknownLanguage = errors.New("unknown code language")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
