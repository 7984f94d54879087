package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// IndentWidth is the number of leading columns that make one indent level.
const IndentWidth = 4

// Precompiled line patterns, checked in classification order.
var (
	commentPattern       = regexp.MustCompile(`^\s*<!--.*-->\s*$`)
	fencePattern         = regexp.MustCompile("^\\s*(?:```|~~~)\\s*([^\\s`]*)")
	headingPattern       = regexp.MustCompile(`^\s*(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)
	closingHashes        = regexp.MustCompile(`(?:^|[ \t]+)#+$`)
	blockQuotePattern    = regexp.MustCompile(`^\s*>[ \t]?(.*)$`)
	unorderedItemPattern = regexp.MustCompile(`^\s*[-+*][ \t]+(.*)$`)
	orderedItemPattern   = regexp.MustCompile(`^\s*(\d*)[.)][ \t]+(.*)$`)
)

// Classify turns one raw line into a LineRecord. It is stateless: the same
// line always yields the same record, whatever surrounds it.
func Classify(line string, number int) LineRecord {
	rec := LineRecord{
		Indent: indentLevel(line),
		Line:   number,
		Raw:    line,
	}

	if strings.TrimSpace(line) == "" {
		rec.Token = Token{Kind: KindBlank}
		return rec
	}

	if commentPattern.MatchString(line) {
		rec.Token = Token{Kind: KindComment}
		return rec
	}

	if m := fencePattern.FindStringSubmatch(line); m != nil {
		rec.Token = Token{Kind: KindCodeFence}
		rec.Content = ptr(m[1])
		return rec
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		rec.Token = Token{Kind: KindHeading, Level: uint(len(m[1]))}
		rec.Content = ptr(strings.TrimSpace(closingHashes.ReplaceAllString(m[2], "")))
		return rec
	}

	if m := blockQuotePattern.FindStringSubmatch(line); m != nil {
		rec.Token = Token{Kind: KindBlockQuoteLine}
		rec.Content = ptr(strings.TrimSpace(m[1]))
		return rec
	}

	if m := unorderedItemPattern.FindStringSubmatch(line); m != nil {
		rec.Token = Token{Kind: KindUnorderedListItem}
		rec.Content = ptr(strings.TrimSpace(m[1]))
		return rec
	}

	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		rec.Token = Token{Kind: KindOrderedListItem, Ordinal: parseOrdinal(m[1])}
		rec.Content = ptr(strings.TrimSpace(m[2]))
		return rec
	}

	rec.Token = Token{Kind: KindText}
	rec.Content = ptr(strings.TrimSpace(line))
	return rec
}

// parseOrdinal parses a list marker number. Empty or out-of-range markers
// fall back to 1.
func parseOrdinal(s string) uint {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 1
	}
	return uint(n)
}

// indentLevel counts leading columns (a tab counts as a full level) and
// divides by IndentWidth.
func indentLevel(line string) uint {
	cols := 0
	for _, r := range line {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += IndentWidth
		default:
			return uint(cols / IndentWidth)
		}
	}
	return uint(cols / IndentWidth)
}
