package sn

import (
	"regexp"
	"strings"
)

// Placeholders protecting escaped braces while formatting passes run.
const (
	leftBracePlaceholder  = "\x00LEFTBRACE\x00"
	rightBracePlaceholder = "\x00RIGHTBRACE\x00"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// escapeHTML escapes &, <, >, " and '.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// inlineRule is one formatting pass. Passes run in order over the whole text
// and never revisit their own output.
type inlineRule struct {
	pattern *regexp.Regexp
	replace string
}

var inlineRules = []inlineRule{
	{regexp.MustCompile(`(?i)\{b:(.*?)\}`), "<strong>${1}</strong>"},
	{regexp.MustCompile(`(?i)\{bold:(.*?)\}`), "<strong>${1}</strong>"},
	{regexp.MustCompile(`(?i)\{i:(.*?)\}`), "<em>${1}</em>"},
	{regexp.MustCompile(`(?i)\{italic:(.*?)\}`), "<em>${1}</em>"},
	{regexp.MustCompile(`(?i)\{u:(.*?)\}`), "<u>${1}</u>"},
}

var colorPattern = regexp.MustCompile(`(?i)\{color=([^:]+):(.*?)\}`)

// FormatInline escapes text and expands the inline directives {b:..},
// {bold:..}, {i:..}, {italic:..}, {u:..} and {color=NAME:..}. Doubled braces
// {{ and }} come out as literal { and }.
func FormatInline(text string) string {
	result := escapeHTML(text)

	result = strings.ReplaceAll(result, "{{", leftBracePlaceholder)
	result = strings.ReplaceAll(result, "}}", rightBracePlaceholder)

	for _, rule := range inlineRules {
		result = rule.pattern.ReplaceAllString(result, rule.replace)
	}

	result = colorPattern.ReplaceAllStringFunc(result, func(match string) string {
		m := colorPattern.FindStringSubmatch(match)
		return `<span style="color: ` + escapeHTML(m[1]) + `">` + m[2] + `</span>`
	})

	result = strings.ReplaceAll(result, leftBracePlaceholder, "{")
	result = strings.ReplaceAll(result, rightBracePlaceholder, "}")

	return result
}
