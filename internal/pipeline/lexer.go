package pipeline

import "strings"

// Tokenize classifies every line of text in order. Blank lines are kept so
// the grouper can look past them. The second result reports whether any
// line opened or closed a code fence.
//
// A single trailing newline does not produce an extra blank record.
func Tokenize(text string) ([]LineRecord, bool) {
	return TokenizeFrom(text, 1)
}

// TokenizeFrom is Tokenize with line numbering starting at first, for text
// that had a header (such as front matter) removed.
func TokenizeFrom(text string, first int) ([]LineRecord, bool) {
	if text == "" {
		return nil, false
	}
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	records := make([]LineRecord, 0, len(lines))
	containsCodeFence := false

	for i, line := range lines {
		rec := Classify(line, first+i)
		if rec.Token.Kind == KindCodeFence {
			containsCodeFence = true
		}
		records = append(records, rec)
	}

	return records, containsCodeFence
}
