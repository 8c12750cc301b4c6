// Package dateutil resolves the date stamps printed in PDF footers and
// written into imported documents.
//
// A stamp is either a literal string, or "auto" with an optional layout:
//
//	auto              2026-10-16
//	auto:long         October 16, 2026
//	auto:DD.MM.YYYY   16.10.2026
//	auto:[Rev] YYYY   Rev 2026
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidLayout is returned for empty, oversized or malformed layouts.
var ErrInvalidLayout = errors.New("invalid date layout")

// MaxLayoutLength bounds the length of a user-supplied layout.
const MaxLayoutLength = 50

// DefaultLayout is applied to a bare "auto".
const DefaultLayout = "YYYY-MM-DD"

const autoKeyword = "auto"

// Presets are named layouts accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// layoutTokens is ordered longest first so that YYYY wins over YY.
var layoutTokens = [...]struct{ token, goLayout string }{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Compile translates a user layout into a Go time layout. Text wrapped in
// square brackets is copied literally; anything that is not a token is too.
func Compile(layout string) (string, error) {
	switch {
	case layout == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidLayout)
	case len(layout) > MaxLayoutLength:
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidLayout, MaxLayoutLength)
	}

	var b strings.Builder
	b.Grow(len(layout) + 8)

	for rest := layout; rest != ""; {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at offset %d", ErrInvalidLayout, len(layout)-len(rest))
			}
			b.WriteString(literal)
			rest = after
			continue
		}
		rest = writeToken(&b, rest)
	}
	return b.String(), nil
}

// writeToken emits the Go layout for the token at the start of s, or the
// first byte of s when no token matches, and returns what remains.
func writeToken(b *strings.Builder, s string) string {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goLayout)
			return s[len(t.token):]
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// Resolve expands an auto stamp against now. Values that do not start with
// "auto" (any case) are returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	if len(value) < len(autoKeyword) || !strings.EqualFold(value[:len(autoKeyword)], autoKeyword) {
		return value, nil
	}

	layout := DefaultLayout
	switch rest := value[len(autoKeyword):]; {
	case rest == "":
	case rest[0] != ':':
		return "", fmt.Errorf("%w: %q, expected \"auto\" or \"auto:LAYOUT\"", ErrInvalidLayout, value)
	default:
		layout = rest[1:]
		if preset, ok := Presets[strings.ToLower(layout)]; ok {
			layout = preset
		}
	}

	goLayout, err := Compile(layout)
	if err != nil {
		return "", err
	}
	return now.Format(goLayout), nil
}
