package pipeline

import "github.com/emirpasic/gods/stacks/arraystack"

// openGroup identifies a group that has been started and not yet ended.
type openGroup struct {
	token  Token
	indent uint
}

func (g openGroup) matches(t Token, indent uint) bool {
	return g.token.Same(t) && g.indent == indent
}

// groupStack is a typed view over an array-backed LIFO stack.
type groupStack struct {
	s *arraystack.Stack
}

func newGroupStack() *groupStack {
	return &groupStack{s: arraystack.New()}
}

func (g *groupStack) push(e openGroup) {
	g.s.Push(e)
}

func (g *groupStack) pop() (openGroup, bool) {
	v, ok := g.s.Pop()
	if !ok {
		return openGroup{}, false
	}
	return v.(openGroup), true
}

func (g *groupStack) peek() (openGroup, bool) {
	v, ok := g.s.Peek()
	if !ok {
		return openGroup{}, false
	}
	return v.(openGroup), true
}

func (g *groupStack) empty() bool {
	return g.s.Empty()
}

// topMatches reports whether the innermost open group has the given kind
// and indent.
func (g *groupStack) topMatches(t Token, indent uint) bool {
	top, ok := g.peek()
	return ok && top.matches(t, indent)
}

// count returns the number of open groups of the given kind.
func (g *groupStack) count(kind Kind) int {
	n := 0
	for _, v := range g.s.Values() {
		if v.(openGroup).token.Kind == kind {
			n++
		}
	}
	return n
}
