package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// errNoPreamble is returned when rendering without a preamble template.
var errNoPreamble = errors.New("no preamble template")

// PreambleDelims are the action delimiters of preamble templates. The
// defaults clash with LaTeX braces.
var PreambleDelims = [2]string{"<<", ">>"}

// ParsePreamble parses a preamble template using PreambleDelims.
func ParsePreamble(name, text string) (*template.Template, error) {
	return template.New(name).Delims(PreambleDelims[0], PreambleDelims[1]).Option("missingkey=error").Parse(text)
}

// PreambleData is the data a preamble template is executed with. Text
// fields are already LaTeX.
type PreambleData struct {
	Class        string
	ClassOptions string // comma-separated, empty for none
	Geometry     string // comma-separated geometry options, empty for none
	ContainsCode bool
	CodeStyle    string // listings style block, emitted only with code
	LinkStyle    string // hyperref setup block
	Title        string
	Author       string
	Date         string
}

// RenderSettings configures a Renderer for one document.
type RenderSettings struct {
	Preamble       *template.Template
	Data           PreambleData
	CodeStyleName  string // lstlisting style referenced by code blocks
	NumberSections bool
}

// Renderer maps grouping events to LaTeX fragments.
type Renderer struct {
	inline   *InlineTransformer
	settings RenderSettings
}

// NewRenderer creates a Renderer for one document.
func NewRenderer(inline *InlineTransformer, settings RenderSettings) *Renderer {
	return &Renderer{inline: inline, settings: settings}
}

// Document renders the preamble followed by every fragment, one per line.
func (r *Renderer) Document(contents []Contents) (string, error) {
	preamble, err := r.Preamble()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(preamble)
	for _, c := range contents {
		if frag, ok := r.Render(c); ok {
			b.WriteString(frag)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// Preamble executes the preamble template with the document data.
func (r *Renderer) Preamble() (string, error) {
	if r.settings.Preamble == nil {
		return "", errNoPreamble
	}
	var b strings.Builder
	if err := r.settings.Preamble.Execute(&b, r.settings.Data); err != nil {
		return "", fmt.Errorf("executing preamble: %w", err)
	}
	return b.String(), nil
}

// Render returns the fragment for c, or false when c produces no output.
func (r *Renderer) Render(c Contents) (string, bool) {
	switch c.Token.Kind {
	case KindFileStart:
		return r.beginDocument(), true
	case KindFileEnd:
		return `\end{document}`, true
	case KindHeading:
		return fmt.Sprintf("%s{%s}\n", headingCommand(c.Token.Level), r.text(c)), true
	case KindUnorderedListItem:
		return r.listItem(c, "itemize", ""), true
	case KindOrderedListItem:
		return r.listItem(c, "enumerate", r.counter(c)), true
	case KindBlockQuoteLine:
		return r.quoteLine(c), true
	case KindCodeFence:
		return r.fence(c), true
	case KindText:
		if c.Position == PositionMiddle {
			return deref(c.Content), true
		}
		return r.text(c), true
	case KindBlank:
		return "", true
	case KindComment:
		return "", false
	default:
		return "", false
	}
}

func (r *Renderer) beginDocument() string {
	var b strings.Builder
	b.WriteString(`\begin{document}`)
	if r.settings.Data.Title != "" {
		b.WriteString("\n\\maketitle")
	}
	if !r.settings.NumberSections {
		b.WriteString("\n\\setcounter{secnumdepth}{0}")
	}
	b.WriteByte('\n')
	return b.String()
}

func headingCommand(level uint) string {
	switch level {
	case 1:
		return `\section`
	case 2:
		return `\subsection`
	case 3:
		return `\subsubsection`
	case 4:
		return `\paragraph`
	default:
		return `\subparagraph`
	}
}

// listItem renders a list line. prelude goes right after \begin.
func (r *Renderer) listItem(c Contents, env, prelude string) string {
	outer := indentation(c.Indent)
	inner := indentation(c.Indent + 1)
	begin := outer + `\begin{` + env + `}`
	if prelude != "" {
		begin += "\n" + inner + prelude
	}
	end := outer + `\end{` + env + `}` + "\n"
	item := inner + `\item ` + r.text(c)

	switch c.Position {
	case PositionStart:
		return begin + "\n" + item
	case PositionEnd:
		if c.Synthetic() {
			return end
		}
		return item + "\n" + end
	case PositionSingleton:
		return begin + "\n" + item + "\n" + end
	default:
		return item
	}
}

// counter seeds the enumerate counter of the list's enumerate nesting
// level so the list starts at its first ordinal. Indentation does not
// matter: an enumerate inside an itemize still counts with enumi.
func (r *Renderer) counter(c Contents) string {
	if c.Token.Ordinal == 1 {
		return ""
	}
	names := [...]string{"enumi", "enumii", "enumiii", "enumiv"}
	depth := max(int(c.Depth), 1)
	name := names[min(depth, len(names))-1]
	return fmt.Sprintf(`\setcounter{%s}{%d}`, name, int(c.Token.Ordinal)-1)
}

func (r *Renderer) quoteLine(c Contents) string {
	const begin, end = `\begin{quote}`, "\\end{quote}\n"
	line := r.text(c)
	if line != "" {
		line = indentation(1) + line
	}

	switch c.Position {
	case PositionStart:
		if line == "" {
			return begin
		}
		return begin + "\n" + line + `\\`
	case PositionEnd:
		if c.Synthetic() || line == "" {
			return end
		}
		return line + "\n" + end
	case PositionSingleton:
		if line == "" {
			return begin + "\n" + end
		}
		return begin + "\n" + line + "\n" + end
	default:
		if line == "" {
			return ""
		}
		return line + `\\`
	}
}

func (r *Renderer) fence(c Contents) string {
	if c.Position != PositionStart {
		return "\\end{lstlisting}\n"
	}

	var opts []string
	if lang := deref(c.Content); lang != "" {
		if strings.Contains(lang, " ") {
			lang = "{" + lang + "}"
		}
		opts = append(opts, "language="+lang)
	}
	if r.settings.CodeStyleName != "" {
		opts = append(opts, "style="+r.settings.CodeStyleName)
	}
	if len(opts) == 0 {
		return `\begin{lstlisting}`
	}
	return `\begin{lstlisting}[` + strings.Join(opts, ", ") + `]`
}

func (r *Renderer) text(c Contents) string {
	return r.inline.Transform(deref(c.Content))
}

func indentation(level uint) string {
	return strings.Repeat("    ", int(level))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
