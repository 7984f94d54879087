package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// ErrFrontMatter indicates the document header could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Closing delimiter of a front matter block
	frontMatterEnd = regexp.MustCompile(`(?m)^---[ \t]*$`)
)

const byteOrderMark = "\uFEFF"

var frontMatterFormat = frontmatter.NewFormat("---", "---", yamlutil.UnmarshalFrontMatter)

// FrontMatter holds the document fields read from a leading YAML block.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"`
}

// Source is a document ready for tokenizing.
type Source struct {
	Body      string
	FirstLine int // line number of Body's first line in the original text
	Meta      FrontMatter
}

// Preprocessor normalizes raw Markdown before classification.
type Preprocessor struct{}

// Preprocess normalizes line endings and Unicode (NFC), drops a byte order
// mark and extracts front matter.
func (p *Preprocessor) Preprocess(ctx context.Context, content string) (Source, error) {
	if err := ctx.Err(); err != nil {
		return Source{}, err
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	content = norm.NFC.String(content)

	return splitFrontMatter(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// splitFrontMatter separates a "---" delimited YAML header from the body.
// A document without a closed header is returned unchanged.
func splitFrontMatter(content string) (Source, error) {
	src := Source{Body: content, FirstLine: 1}
	if !strings.HasPrefix(content, "---\n") || !frontMatterEnd.MatchString(content[len("---\n"):]) {
		return src, nil
	}

	var meta FrontMatter
	rest, err := frontmatter.Parse(strings.NewReader(content), &meta, frontMatterFormat)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	body := string(rest)
	if strings.HasSuffix(content, body) {
		consumed := content[:len(content)-len(body)]
		src.FirstLine = strings.Count(consumed, "\n") + 1
	}
	src.Body = body
	src.Meta = meta
	return src, nil
}
