package pipeline

import "fmt"

// Kind is the discriminant of a classified line.
type Kind uint8

const (
	KindFileStart Kind = iota
	KindFileEnd
	KindHeading
	KindUnorderedListItem
	KindOrderedListItem
	KindCodeFence
	KindBlockQuoteLine
	KindComment
	KindText
	KindBlank
)

var kindNames = [...]string{
	KindFileStart:         "FileStart",
	KindFileEnd:           "FileEnd",
	KindHeading:           "Heading",
	KindUnorderedListItem: "UnorderedListItem",
	KindOrderedListItem:   "OrderedListItem",
	KindCodeFence:         "CodeFence",
	KindBlockQuoteLine:    "BlockQuoteLine",
	KindComment:           "Comment",
	KindText:              "Text",
	KindBlank:             "Blank",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Groupable reports whether lines of this kind take part in multi-line groups.
func (k Kind) Groupable() bool {
	switch k {
	case KindUnorderedListItem, KindOrderedListItem, KindCodeFence, KindBlockQuoteLine:
		return true
	default:
		return false
	}
}

// Token is a Kind plus its payload. Level is set for headings and Ordinal
// for ordered list items; both are zero otherwise.
type Token struct {
	Kind    Kind
	Level   uint
	Ordinal uint
}

// Same compares discriminants only, so two ordered items with different
// ordinals are the same kind.
func (t Token) Same(o Token) bool {
	return t.Kind == o.Kind
}

func (t Token) String() string {
	switch t.Kind {
	case KindHeading:
		return fmt.Sprintf("Heading(%d)", t.Level)
	case KindOrderedListItem:
		return fmt.Sprintf("OrderedListItem(%d)", t.Ordinal)
	default:
		return t.Kind.String()
	}
}

// LineRecord is the classification of one physical line.
type LineRecord struct {
	Token   Token
	Content *string
	Indent  uint
	Line    int    // 1-based line number in the source document
	Raw     string // line as read, used verbatim inside code fences
}

// Position is the role of a Contents within its group.
type Position uint8

const (
	// PositionNone marks standalone contents outside any group.
	PositionNone Position = iota
	PositionStart
	PositionMiddle
	PositionEnd
	PositionSingleton
)

func (p Position) String() string {
	switch p {
	case PositionNone:
		return "None"
	case PositionStart:
		return "Start"
	case PositionMiddle:
		return "Middle"
	case PositionEnd:
		return "End"
	case PositionSingleton:
		return "Singleton"
	default:
		return fmt.Sprintf("Position(%d)", uint8(p))
	}
}

// Contents is one grouping event handed to the renderer.
// A nil Content on an End marks a synthetic close emitted for an
// interrupted or unterminated group.
type Contents struct {
	Token    Token
	Content  *string
	Indent   uint
	Position Position
	Line     int
	Depth    uint // groups of the same kind enclosing a Start or Singleton, itself included
}

// Synthetic reports whether c closes a group without carrying a line.
func (c Contents) Synthetic() bool {
	return c.Position == PositionEnd && c.Content == nil
}

// Diagnostic is a non-fatal message produced while grouping.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// ptr returns a pointer to a copy of s.
func ptr(s string) *string {
	return &s
}
