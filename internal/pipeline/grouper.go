package pipeline

import "fmt"

// LanguageResolver maps a fence info string to a supported language name.
// ok is false when the tag was not recognized and a default was substituted.
type LanguageResolver interface {
	Resolve(tag string) (name string, ok bool)
}

// Grouper turns a flat sequence of line records into bracketed group events.
// A Grouper holds no per-document state and is safe for concurrent use.
type Grouper struct {
	languages LanguageResolver
}

// NewGrouper creates a Grouper. A nil resolver keeps fence tags as written.
func NewGrouper(languages LanguageResolver) *Grouper {
	return &Grouper{languages: languages}
}

// Group runs the grouping pass over records. The result always starts with
// a FileStart and ends with a FileEnd, and every Start has exactly one
// matching End. Group never fails: unknown fence languages are replaced and
// reported as diagnostics.
func (g *Grouper) Group(records []LineRecord) ([]Contents, []Diagnostic) {
	r := &groupRun{
		languages: g.languages,
		stack:     newGroupStack(),
		out:       make([]Contents, 0, len(records)+2),
	}

	r.emit(Contents{Token: Token{Kind: KindFileStart}})
	for i := range records {
		r.step(records, i)
	}
	r.closeAll()
	r.emit(Contents{Token: Token{Kind: KindFileEnd}})

	return r.out, r.diags
}

// previous is the look-back over the last processed line.
type previous struct {
	token    Token
	position Position
	indent   uint
}

// groupRun holds the state of one grouping pass.
type groupRun struct {
	languages LanguageResolver
	stack     *groupStack
	prev      *previous
	out       []Contents
	diags     []Diagnostic
}

func (r *groupRun) step(records []LineRecord, i int) {
	rec := records[i]

	if r.fenceOpen() {
		if rec.Token.Kind == KindCodeFence {
			r.closeFence(rec)
			return
		}
		r.emit(Contents{
			Token:    Token{Kind: KindText},
			Content:  ptr(rec.Raw),
			Indent:   rec.Indent,
			Position: PositionMiddle,
			Line:     rec.Line,
		})
		return
	}

	switch rec.Token.Kind {
	case KindCodeFence:
		r.openFence(rec)
	case KindComment:
		r.closeAll()
		r.prev = nil
	case KindBlank:
		// Blank lines never close a group; outside groups they separate paragraphs.
		if r.stack.empty() {
			r.emit(contentsOf(rec, PositionNone))
		}
	case KindUnorderedListItem, KindOrderedListItem, KindBlockQuoteLine:
		r.groupItem(rec, nextRecord(records, i))
	default:
		r.closeAll()
		r.emit(contentsOf(rec, PositionNone))
		r.prev = &previous{token: rec.Token, position: PositionNone, indent: rec.Indent}
	}
}

func (r *groupRun) fenceOpen() bool {
	top, ok := r.stack.peek()
	return ok && top.token.Kind == KindCodeFence
}

func (r *groupRun) openFence(rec LineRecord) {
	r.closeAll()

	tag := ""
	if rec.Content != nil {
		tag = *rec.Content
	}
	lang := tag
	if r.languages != nil {
		var ok bool
		lang, ok = r.languages.Resolve(tag)
		if !ok {
			r.diags = append(r.diags, Diagnostic{
				Line:    rec.Line,
				Message: fmt.Sprintf("unknown code language %q, using %q", tag, lang),
			})
		}
	}

	r.stack.push(openGroup{token: rec.Token, indent: rec.Indent})
	r.emit(Contents{
		Token:    rec.Token,
		Content:  ptr(lang),
		Indent:   rec.Indent,
		Position: PositionStart,
		Line:     rec.Line,
	})
	r.prev = &previous{token: rec.Token, position: PositionStart, indent: rec.Indent}
}

func (r *groupRun) closeFence(rec LineRecord) {
	top, _ := r.stack.pop()
	r.emit(Contents{
		Token:    top.token,
		Indent:   top.indent,
		Position: PositionEnd,
		Line:     rec.Line,
	})
	r.prev = &previous{token: top.token, position: PositionEnd, indent: top.indent}
}

// groupItem places a list item or quote line within its group.
func (r *groupRun) groupItem(cur, next LineRecord) {
	r.closeDeeper(cur)

	pos := r.reconcile(cur, r.decide(cur, next))
	c := contentsOf(cur, pos)
	switch pos {
	case PositionStart:
		c.Depth = uint(r.stack.count(cur.Token.Kind))
	case PositionSingleton:
		c.Depth = uint(r.stack.count(cur.Token.Kind)) + 1
	}
	r.emit(c)
	r.prev = &previous{token: cur.Token, position: pos, indent: cur.Indent}
}

// decide applies the position table: indent changes first, then kind
// changes against the previous and next lines.
func (r *groupRun) decide(cur, next LineRecord) Position {
	var prevIndent uint
	if r.prev != nil {
		prevIndent = r.prev.indent
	}

	deeperThanPrev := cur.Indent > prevIndent
	deeperThanNext := cur.Indent > next.Indent
	switch {
	case deeperThanPrev && deeperThanNext:
		return PositionSingleton
	case deeperThanPrev:
		return PositionStart
	case deeperThanNext:
		return PositionEnd
	}

	differsPrev := r.differsFromPrevious(cur)
	differsNext := differsFromNext(cur, next)
	switch {
	case differsPrev && differsNext:
		return PositionSingleton
	case differsNext:
		return PositionEnd
	case differsPrev || r.prev.position == PositionEnd:
		return PositionStart
	default:
		return PositionMiddle
	}
}

func (r *groupRun) differsFromPrevious(cur LineRecord) bool {
	return r.prev == nil || !r.prev.token.Same(cur.Token) || r.prev.indent != cur.Indent
}

// differsFromNext reports whether the group of cur ends at cur. A deeper
// list or quote line is a nested child and keeps the group open.
func differsFromNext(cur, next LineRecord) bool {
	switch next.Token.Kind {
	case KindUnorderedListItem, KindOrderedListItem, KindBlockQuoteLine:
	default:
		return true
	}
	if next.Indent < cur.Indent {
		return true
	}
	return next.Indent == cur.Indent && !next.Token.Same(cur.Token)
}

// reconcile adjusts a decided position against the open groups so that
// every Start is matched by exactly one End.
func (r *groupRun) reconcile(cur LineRecord, pos Position) Position {
	open := r.stack.topMatches(cur.Token, cur.Indent)
	group := openGroup{token: cur.Token, indent: cur.Indent}

	switch pos {
	case PositionStart:
		if open {
			return PositionMiddle
		}
		r.stack.push(group)
		return PositionStart
	case PositionMiddle:
		if !open {
			r.stack.push(group)
			return PositionStart
		}
		return PositionMiddle
	case PositionEnd, PositionSingleton:
		if open {
			r.stack.pop()
			return PositionEnd
		}
		return PositionSingleton
	default:
		return pos
	}
}

// closeDeeper ends open groups nested deeper than cur, and a sibling group
// of another kind at the same indent.
func (r *groupRun) closeDeeper(cur LineRecord) {
	for {
		top, ok := r.stack.peek()
		if !ok {
			return
		}
		if top.indent < cur.Indent || (top.indent == cur.Indent && top.token.Same(cur.Token)) {
			return
		}
		r.stack.pop()
		r.emitClose(top)
	}
}

// closeAll ends every open group, innermost first.
func (r *groupRun) closeAll() {
	for {
		top, ok := r.stack.pop()
		if !ok {
			return
		}
		r.emitClose(top)
	}
}

func (r *groupRun) emitClose(g openGroup) {
	r.emit(Contents{Token: g.token, Indent: g.indent, Position: PositionEnd})
}

func (r *groupRun) emit(c Contents) {
	r.out = append(r.out, c)
}

// nextRecord returns the first non-blank record after i, or a FileEnd
// record when none is left.
func nextRecord(records []LineRecord, i int) LineRecord {
	for j := i + 1; j < len(records); j++ {
		if records[j].Token.Kind != KindBlank {
			return records[j]
		}
	}
	return LineRecord{Token: Token{Kind: KindFileEnd}}
}

func contentsOf(rec LineRecord, pos Position) Contents {
	return Contents{
		Token:    rec.Token,
		Content:  rec.Content,
		Indent:   rec.Indent,
		Position: pos,
		Line:     rec.Line,
	}
}
