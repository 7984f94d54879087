package assets

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewAssetResolver - Custom directory selection
// ---------------------------------------------------------------------------

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantCustom bool
		wantErr    error
	}{
		{"embedded only", "", false, nil},
		{"custom directory", assetTree(t, nil), true, nil},
		{"missing custom directory", "/nonexistent/md2tex-assets", false, ErrInvalidBasePath},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver, err := NewAssetResolver(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewAssetResolver(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if resolver.HasCustomLoader() != tt.wantCustom {
				t.Errorf("HasCustomLoader() = %v, want %v", resolver.HasCustomLoader(), tt.wantCustom)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAssetResolver_Load - Custom first, embedded on not-found
// ---------------------------------------------------------------------------

func TestAssetResolver_Load(t *testing.T) {
	t.Parallel()

	const plainOverride = "\\lstdefinestyle{md2tex}{frame=none}\n"

	resolver, err := NewAssetResolver(assetTree(t, map[string]string{
		"styles/boxed.tex":   boxedStyle,
		"styles/plain.tex":   plainOverride,
		"templates/memo.tex": memoPreamble,
	}))
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	embeddedDefault, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(default) error = %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{"custom-only style", resolver.LoadStyle, "boxed", boxedStyle, nil},
		{"custom overrides embedded style", resolver.LoadStyle, "plain", plainOverride, nil},
		{"embedded style fallback", resolver.LoadStyle, DefaultStyleName, embeddedDefault, nil},
		{"custom template", resolver.LoadTemplate, "memo", memoPreamble, nil},
		{"unknown style", resolver.LoadStyle, "solarized", "", ErrStyleNotFound},
		{"unknown template", resolver.LoadTemplate, "beamer", "", ErrTemplateNotFound},
		{"invalid style name is not retried", resolver.LoadStyle, "../secret", "", ErrInvalidAssetName},
		{"invalid template name is not retried", resolver.LoadTemplate, "memo.tex", "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("load(%q) = %q, want %q", tt.asset, got, tt.want)
			}
		})
	}

	t.Run("embedded template fallback is a preamble", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTemplate(DefaultTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.HasPrefix(got, `\documentclass`) {
			t.Errorf("LoadTemplate() = %q, want a preamble", got)
		}
	})
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"style not found", fmt.Errorf("%w: %q", ErrStyleNotFound, "boxed"), true},
		{"template not found", fmt.Errorf("%w: %q", ErrTemplateNotFound, "memo"), true},
		{"same text without wrapping", errors.New(ErrStyleNotFound.Error()), false},
		{"invalid name", ErrInvalidAssetName, false},
		{"read failure", ErrAssetRead, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
