package sn

import (
	"strings"
	"unicode"
)

// tokenizer is a forward-only cursor over the lines of a document.
// Lines are split on LF only; a trailing CR stays part of the line.
type tokenizer struct {
	lines []string
	pos   int
}

func newTokenizer(content string) *tokenizer {
	return &tokenizer{lines: strings.Split(content, "\n")}
}

// Peek returns the current line without advancing.
func (t *tokenizer) Peek() (string, bool) {
	if t.pos < len(t.lines) {
		return t.lines[t.pos], true
	}
	return "", false
}

// Next returns the current line and advances past it.
func (t *tokenizer) Next() (string, bool) {
	line, ok := t.Peek()
	if ok {
		t.pos++
	}
	return line, ok
}

// More reports whether unconsumed lines remain.
func (t *tokenizer) More() bool {
	return t.pos < len(t.lines)
}

// Line returns the 1-based number of the current line.
func (t *tokenizer) Line() int {
	return t.pos + 1
}

// isComment reports whether line starts with '#' after leading whitespace.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "#")
}

// isBlank reports whether line holds only whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isSkippable reports whether line produces no node in any phase.
func isSkippable(line string) bool {
	return isBlank(line) || isComment(line)
}

// hasFoldPrefix reports whether s starts with the ASCII prefix, ignoring case.
// prefix must be lower-case.
func hasFoldPrefix[T ~string | ~[]byte](s T, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return false
		}
	}
	return true
}

// equalFold reports whether s equals the lower-case ASCII word, ignoring case.
func equalFold[T ~string | ~[]byte](s T, word string) bool {
	return len(s) == len(word) && hasFoldPrefix(s, word)
}
