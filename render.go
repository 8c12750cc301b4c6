package sn

import (
	"strings"
	"sync"

	"github.com/alnah/go-supernotation/internal/assets"
)

// sealBanner is appended after all content of a sealed, signed document.
const sealBanner = `<div class="sn-seal">🔒 Document sealed and signed</div>`

// defaultStylesheet is the embedded default style, loaded once.
var defaultStylesheet = sync.OnceValue(func() string {
	css, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return ""
	}
	return css
})

// RenderOption configures Render.
type RenderOption func(*renderConfig)

type renderConfig struct {
	stylesheet    string
	useStylesheet bool
	highlight     bool
	baseURL       string
}

// WithStylesheet replaces the embedded default stylesheet. The content is
// copied into the page's <style> element with "</" escaped; an empty string
// leaves the element empty.
func WithStylesheet(css string) RenderOption {
	return func(c *renderConfig) {
		c.stylesheet = css
		c.useStylesheet = true
	}
}

// WithHighlighting enables syntax highlighting of code blocks.
func WithHighlighting(enabled bool) RenderOption {
	return func(c *renderConfig) {
		c.highlight = enabled
	}
}

// WithBaseURL adds a <base> element so relative image and link targets
// resolve against url instead of the page location.
func WithBaseURL(url string) RenderOption {
	return func(c *renderConfig) {
		c.baseURL = url
	}
}

// Render produces a self-contained HTML page for doc. It never modifies doc.
func Render(doc *Document, opts ...RenderOption) string {
	cfg := renderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	css := cfg.stylesheet
	if !cfg.useStylesheet {
		css = defaultStylesheet()
	}

	out := []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<head>",
		`    <meta charset="UTF-8">`,
		`    <meta name="viewport" content="width=device-width, initial-scale=1.0">`,
		"    <title>" + escapeHTML(doc.Title()) + "</title>",
	}
	if cfg.baseURL != "" {
		out = append(out, `    <base href="`+escapeHTML(cfg.baseURL)+`">`)
	}
	out = append(out,
		"    <style>",
		sanitizeCSS(css),
		"    </style>",
		"</head>",
		"<body>",
		`<div class="sn-document">`,
	)

	for _, n := range doc.Nodes {
		out = append(out, renderNode(n, &cfg)...)
	}

	if doc.Sealed && doc.HasSignature() {
		out = append(out, sealBanner)
	}

	out = append(out, "</div>", "</body>", "</html>")
	return strings.Join(out, "\n")
}

// renderNode returns the output lines for one node. Meta, Signature and
// Close produce nothing.
func renderNode(n Node, cfg *renderConfig) []string {
	switch n := n.(type) {
	case Title:
		return []string{`<h1 class="sn-title">` + FormatInline(n.Text) + "</h1>"}

	case SectionDef:
		id := escapeHTML(n.ID)
		return []string{`<h2 id="` + id + `" class="sn-section">` + id + "</h2>"}

	case SectionLink:
		return []string{`<p><a href="#` + escapeHTML(n.ID) + `">` + FormatInline(n.Text) + "</a></p>"}

	case Paragraph:
		return []string{`<p class="sn-para">` + FormatInline(n.Text) + "</p>"}

	case BreakLine:
		return []string{`<hr class="sn-break">`}

	case List:
		tag := "ul"
		if n.Style == ListNumbers {
			tag = "ol"
		}
		lines := make([]string, 0, len(n.Items)+2)
		lines = append(lines, "<"+tag+` class="sn-list">`)
		for _, item := range n.Items {
			lines = append(lines, "    <li>"+FormatInline(item)+"</li>")
		}
		return append(lines, "</"+tag+">")

	case CodeBlock:
		return []string{`<pre class="sn-code"><code>`, renderCode(n.Code, cfg.highlight), "</code></pre>"}

	case Image:
		return []string{`<img src="` + escapeHTML(n.Path) + `" alt="` + escapeHTML(n.Alt) + `" class="sn-image">`}

	case Link:
		url := escapeHTML(n.URL)
		return []string{`<p><a href="` + url + `" class="sn-link">` + url + "</a></p>"}

	case LinkText:
		return []string{`<p><a href="` + escapeHTML(n.URL) + `" class="sn-link">` + FormatInline(n.Text) + "</a></p>"}

	case OpenSN:
		return []string{`<p><a href="` + escapeHTML(n.Location) + `" class="sn-opensn">` + FormatInline(n.Text) + "</a></p>"}

	case EndNewSN:
		path := escapeHTML(n.Path)
		return []string{`<div class="sn-next"><a href="` + path + `">Next: ` + path + " →</a></div>"}

	case Unknown:
		return []string{`<p class="sn-unknown">` + escapeHTML(n.Raw) + "</p>"}

	case Meta, Signature, Close:
		return nil
	}
	return nil
}

// sanitizeCSS keeps a stylesheet from closing its <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

func renderCode(code string, highlight bool) string {
	if highlight {
		if out, err := highlightCode(code); err == nil {
			return out
		}
	}
	return escapeHTML(code)
}
