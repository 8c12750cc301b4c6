// Package mdimport converts Markdown into SN documents.
//
// The mapping is lossy where SN has no equivalent:
//
//	# Heading (first)        title: Heading
//	## Heading               sec: Heading
//	paragraph                para: text with {b:..} and {i:..} spans
//	- item / 1. item         olist:bullet / olist:numbers
//	```code```               code: ... endcode:
//	---                      break-line
//	![alt](path)             img:= path|alt
//	[text](url)              linktxt: text|url
//	[text](#heading)         sec=Heading: text
//	[text](other.sn)         opensn=other.sn: text
//	<https://x>              link: https://x
//
// Links inside running text become "text (url)". Nested lists are
// flattened; tables and raw HTML are dropped.
package mdimport

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	sn "github.com/alnah/go-supernotation"
)

// ErrEmptyInput is returned for Markdown with no content.
var ErrEmptyInput = errors.New("markdown input is empty")

// zeroWidthSpace shields text that SN would otherwise read as a command.
const zeroWidthSpace = "\u200b"

// Option configures Convert.
type Option func(*importer)

// WithTitle sets the title used when the Markdown has no level-one heading.
func WithTitle(title string) Option {
	return func(im *importer) {
		im.fallbackTitle = title
	}
}

// WithMeta adds meta: lines after the header, in order.
func WithMeta(entries ...string) Option {
	return func(im *importer) {
		im.meta = append(im.meta, entries...)
	}
}

type importer struct {
	src           []byte
	fallbackTitle string
	meta          []string
	lines         []string
	hasTitle      bool
	sections      map[string]string // lower-case slug -> section ID
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// Convert returns the SN rendition of the Markdown in src.
func Convert(src []byte, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, ErrEmptyInput
	}

	im := &importer{src: src, sections: map[string]string{}}
	for _, opt := range opts {
		opt(im)
	}

	doc := markdown.Parser().Parse(text.NewReader(src))
	im.collectSections(doc)

	im.emit(sn.HeaderLine, "")
	for _, m := range im.meta {
		im.emit("meta: " + oneLine(m))
	}
	if len(im.meta) > 0 {
		im.emit("")
	}
	if im.fallbackTitle != "" && !hasLevelOneHeading(doc) {
		im.emit("title: "+escapeBraces(im.fallbackTitle), "")
		im.hasTitle = true
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		im.block(n)
	}

	for len(im.lines) > 0 && im.lines[len(im.lines)-1] == "" {
		im.lines = im.lines[:len(im.lines)-1]
	}
	return []byte(strings.Join(im.lines, "\n") + "\n"), nil
}

func (im *importer) emit(lines ...string) {
	im.lines = append(im.lines, lines...)
}

// block writes one top-level block followed by a blank separator line.
func (im *importer) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		heading := oneLine(im.plain(n))
		if n.Level == 1 && !im.hasTitle {
			im.hasTitle = true
			im.emit("title: " + escapeBraces(heading))
		} else {
			im.emit("sec: " + sectionID(heading))
		}

	case *ast.Paragraph:
		im.paragraph(n)

	case *ast.List:
		im.list(n)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		im.code(n)

	case *ast.ThematicBreak:
		im.emit("break-line")

	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if p, ok := c.(*ast.Paragraph); ok {
				im.emit("para: {i:"+oneLine(im.inline(p, true))+"}", "")
			} else {
				im.block(c)
			}
		}
		return

	default:
		return
	}
	im.emit("")
}

// paragraph maps a paragraph holding a lone image or link onto the matching
// SN command and everything else onto para:.
func (im *importer) paragraph(p *ast.Paragraph) {
	if only := p.FirstChild(); only != nil && only.NextSibling() == nil {
		switch n := only.(type) {
		case *ast.Image:
			im.emit("img:= " + string(n.Destination) + "|" + oneLine(im.plain(n)))
			return
		case *ast.AutoLink:
			im.emit("link: " + string(n.URL(im.src)))
			return
		case *ast.Link:
			im.emit(im.link(n))
			return
		}
	}
	im.emit("para: " + oneLine(im.inline(p, false)))
}

func (im *importer) link(n *ast.Link) string {
	dest := string(n.Destination)
	label := oneLine(im.inline(n, false))
	if label == "" {
		label = dest
	}

	if frag, ok := strings.CutPrefix(dest, "#"); ok {
		if id, found := im.sections[strings.ToLower(frag)]; found {
			return "sec=" + id + ": " + label
		}
	}
	if !strings.Contains(dest, ":") && strings.HasSuffix(strings.ToLower(dest), ".sn") {
		return "opensn=" + dest + ": " + label
	}
	// The first | separates text from URL.
	return "linktxt: " + strings.ReplaceAll(label, "|", "/") + "|" + dest
}

// list flattens n and its nested lists into one SN list.
func (im *importer) list(n *ast.List) {
	kind := "bullet"
	if n.IsOrdered() {
		kind = "numbers"
	}
	im.emit("olist:" + kind)

	var items []string
	im.collectItems(n, &items)
	for _, item := range items {
		if sn.IsReservedLine(item) {
			item = zeroWidthSpace + item
		}
		im.emit(item)
	}
}

func (im *importer) collectItems(list *ast.List, items *[]string) {
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.List:
				im.collectItems(c, items)
			case *ast.Paragraph, *ast.TextBlock:
				if item := oneLine(im.inline(c, false)); item != "" {
					*items = append(*items, item)
				}
			}
		}
	}
}

// code copies the block lines verbatim. Lines that would end the SN block
// early, or that signing would cut or strip, are shielded.
func (im *importer) code(n ast.Node) {
	im.emit("code:")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(im.src)), "\r\n")
		if shieldInCode(line) {
			line = zeroWidthSpace + line
		}
		im.emit(line)
	}
	im.emit("endcode:")
}

// inline renders the inline children of n with SN spans. Spans are not
// nested because SN's span syntax cannot express nesting; inside a span,
// children are emitted as plain text.
func (im *importer) inline(n ast.Node, inSpan bool) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.WriteString(escapeBraces(string(c.Segment.Value(im.src))))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.WriteString(escapeBraces(string(c.Value)))
		case *ast.CodeSpan:
			b.WriteString(escapeBraces(im.plain(c)))
		case *ast.Emphasis:
			inner := im.inline(c, true)
			if inSpan {
				b.WriteString(inner)
				continue
			}
			tag := "i"
			if c.Level >= 2 {
				tag = "b"
			}
			b.WriteString("{" + tag + ":" + inner + "}")
		case *ast.Link:
			b.WriteString(im.inline(c, inSpan) + " (" + escapeBraces(string(c.Destination)) + ")")
		case *ast.AutoLink:
			b.WriteString(escapeBraces(string(c.URL(im.src))))
		case *ast.Image:
			b.WriteString(escapeBraces(im.plain(c)))
		default:
			b.WriteString(im.inline(c, inSpan))
		}
	}
	return b.String()
}

// plain returns the text content of n without markup.
func (im *importer) plain(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(im.src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(im.src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// collectSections records the ID every non-title heading will get so that
// fragment links can target it.
func (im *importer) collectSections(doc ast.Node) {
	titleSeen := im.fallbackTitle != "" && !hasLevelOneHeading(doc)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if h.Level == 1 && !titleSeen {
			titleSeen = true
			continue
		}
		id := sectionID(oneLine(im.plain(h)))
		im.sections[strings.ToLower(id)] = id
	}
}

func hasLevelOneHeading(doc ast.Node) bool {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return true
		}
	}
	return false
}

var idUnsafe = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// sectionID turns heading text into an ID usable in sec: and sec= lines,
// matching the slugs Markdown renderers generate up to case.
func sectionID(heading string) string {
	id := strings.Join(strings.FieldsFunc(heading, unicode.IsSpace), "-")
	id = idUnsafe.ReplaceAllString(id, "")
	if id == "" {
		return "section"
	}
	return id
}

func shieldInCode(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	return trimmed == "endcode:" || trimmed == "close:" || strings.HasPrefix(trimmed, "sign:")
}

// oneLine collapses whitespace runs, newlines included, to single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var braceEscaper = strings.NewReplacer("{", "{{", "}", "}}")

func escapeBraces(s string) string {
	return braceEscaper.Replace(s)
}
