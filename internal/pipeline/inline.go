package pipeline

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Math placeholders use Private Use Area characters so that goldmark keeps
// math spans intact. They are replaced back after rendering.
const (
	mathStartPlaceholder = "\uE000" // U+E000: Private Use Area
	mathEndPlaceholder   = "\uE001" // U+E001: Private Use Area
)

var (
	textEscaper = strings.NewReplacer(
		`\`, `\textbackslash{}`,
		`{`, `\{`,
		`}`, `\}`,
		`$`, `\$`,
		`&`, `\&`,
		`%`, `\%`,
		`#`, `\#`,
		`_`, `\_`,
		`~`, `\textasciitilde{}`,
		`^`, `\textasciicircum{}`,
		`=>`, `$\rightarrow$`,
		`→`, `$\rightarrow$`,
	)

	codeEscaper = strings.NewReplacer(
		`\`, `\textbackslash{}`,
		`{`, `\{`,
		`}`, `\}`,
		`$`, `\$`,
		`&`, `\&`,
		`%`, `\%`,
		`#`, `\#`,
		`_`, `\_`,
		`~`, `\textasciitilde{}`,
		`^`, `\textasciicircum{}`,
	)

	urlEscaper = strings.NewReplacer(
		`%`, `\%`,
		`#`, `\#`,
	)
)

// InlineTransformer converts the inline Markdown of one line to LaTeX.
// It only knows about paragraphs, so list markers, quote markers and
// headings inside the content are kept as literal text.
type InlineTransformer struct {
	parser parser.Parser
}

// NewInlineTransformer creates an InlineTransformer with emphasis, code
// spans, links, autolinks, bare URLs and strikethrough enabled.
func NewInlineTransformer() *InlineTransformer {
	inlines := append(parser.DefaultInlineParsers(),
		util.Prioritized(extension.NewStrikethroughParser(), 500),
		util.Prioritized(extension.NewLinkifyParser(), 999),
	)
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(inlines...),
	)
	return &InlineTransformer{parser: p}
}

// Transform returns content as LaTeX. Math spans ($...$) are passed through
// untouched; a dollar sign followed by a digit is treated as currency.
func (t *InlineTransformer) Transform(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	protected, maths := protectMath(content)
	src := []byte(protected)
	doc := t.parser.Parse(text.NewReader(src))

	var b strings.Builder
	renderChildren(&b, doc, src)

	out := b.String()
	for i, m := range maths {
		out = strings.Replace(out, mathPlaceholder(i), m, 1)
	}
	return strings.TrimSpace(out)
}

func renderChildren(b *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		renderNode(b, c, src)
	}
}

func renderNode(b *strings.Builder, n ast.Node, src []byte) {
	switch n := n.(type) {
	case *ast.Text:
		b.WriteString(escapeText(n.Segment.Value(src)))
		if n.SoftLineBreak() || n.HardLineBreak() {
			b.WriteByte(' ')
		}
	case *ast.String:
		b.WriteString(escapeText(n.Value))
	case *ast.Emphasis:
		if n.Level >= 2 {
			b.WriteString(`\textbf{`)
		} else {
			b.WriteString(`\textit{`)
		}
		renderChildren(b, n, src)
		b.WriteByte('}')
	case *east.Strikethrough:
		b.WriteString(`\sout{`)
		renderChildren(b, n, src)
		b.WriteByte('}')
	case *ast.CodeSpan:
		var raw strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				raw.Write(t.Segment.Value(src))
			}
		}
		b.WriteString(`\texttt{`)
		b.WriteString(codeEscaper.Replace(raw.String()))
		b.WriteByte('}')
	case *ast.Link:
		b.WriteString(`\href{`)
		b.WriteString(urlEscaper.Replace(string(n.Destination)))
		b.WriteString(`}{`)
		renderChildren(b, n, src)
		b.WriteByte('}')
	case *ast.AutoLink:
		url := string(n.URL(src))
		if n.AutoLinkType == ast.AutoLinkEmail {
			if !strings.HasPrefix(url, "mailto:") {
				url = "mailto:" + url
			}
			b.WriteString(`\href{` + urlEscaper.Replace(url) + `}{`)
			b.WriteString(escapeText(n.Label(src)))
			b.WriteByte('}')
			return
		}
		b.WriteString(`\url{` + urlEscaper.Replace(url) + `}`)
	case *ast.Image:
		// Images have no inline LaTeX form; keep the alt text.
		renderChildren(b, n, src)
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.WriteString(escapeText(seg.Value(src)))
		}
	default:
		renderChildren(b, n, src)
	}
}

// escapeText resolves Markdown escapes and entities, then escapes LaTeX
// special characters.
func escapeText(v []byte) string {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return textEscaper.Replace(string(v))
}

func mathPlaceholder(i int) string {
	return mathStartPlaceholder + strconv.Itoa(i) + mathEndPlaceholder
}

// protectMath replaces $...$ spans outside code spans with placeholders and
// returns the spans in order.
func protectMath(s string) (string, []string) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var (
		b     strings.Builder
		maths []string
	)
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			end := min(i+2, len(s))
			b.WriteString(s[i:end])
			i = end
		case '`':
			run := backtickRun(s[i:])
			closing := findBacktickRun(s[i+run:], run)
			if closing < 0 {
				b.WriteString(s[i : i+run])
				i += run
				continue
			}
			end := i + run + closing + run
			b.WriteString(s[i:end])
			i = end
		case '$':
			end := mathEnd(s, i)
			if end < 0 {
				b.WriteByte('$')
				i++
				continue
			}
			b.WriteString(mathPlaceholder(len(maths)))
			maths = append(maths, s[i:end])
			i = end
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), maths
}

// mathEnd returns the index just past the math span opening at s[i], or -1
// when s[i] does not open one.
func mathEnd(s string, i int) int {
	if i+1 >= len(s) {
		return -1
	}
	first := s[i+1]
	if first == ' ' || first == '$' || (first >= '0' && first <= '9') {
		return -1
	}
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '$':
			if s[j-1] == ' ' {
				return -1
			}
			return j + 1
		}
	}
	return -1
}

func backtickRun(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}

// findBacktickRun returns the offset of the first run of exactly n
// backticks in s, or -1.
func findBacktickRun(s string, n int) int {
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		run := backtickRun(s[i:])
		if run == n {
			return i
		}
		i += run
	}
	return -1
}
