package sn

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ParseMode controls how unrecognized commands are handled.
type ParseMode int

const (
	// Lenient keeps unrecognized lines as Unknown nodes.
	Lenient ParseMode = iota
	// Strict fails on the first unrecognized line and stops after endnewsn:.
	Strict
)

func (m ParseMode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseOption configures Parse.
type ParseOption func(*parser)

// WithMode selects the parse mode. The default is Lenient.
func WithMode(m ParseMode) ParseOption {
	return func(p *parser) {
		p.mode = m
	}
}

// Command keywords, matched case-insensitively.
const (
	kwMeta     = "meta:"
	kwTitle    = "title:"
	kwSecDef   = "sec:"
	kwSecLink  = "sec="
	kwPara     = "para:"
	kwBreak    = "break-line"
	kwBreakAlt = "break-line:"
	kwList     = "olist:"
	kwCode     = "code:"
	kwEndCode  = "endcode:"
	kwImage    = "img:="
	kwLink     = "link:"
	kwLinkText = "linktxt:"
	kwOpenSN   = "opensn="
	kwEndNewSN = "endnewsn:"
	kwSign     = "sign:"
	kwClose    = "close:"
)

// commandPrefixes terminate a list when a line starts with one of them.
var commandPrefixes = []string{
	kwTitle, kwSecDef, kwSecLink, kwPara, kwBreak,
	kwList, kwCode, kwImage, kwLink, kwLinkText,
	kwOpenSN, kwEndNewSN, kwSign, kwClose, kwMeta,
}

var (
	secLinkPattern = regexp.MustCompile(`(?i)^sec=([^:]+):\s*(.*)`)
	openSNPattern  = regexp.MustCompile(`(?i)^opensn=([^:]+):\s*(.*)`)
	listPattern    = regexp.MustCompile(`(?i)^olist:(bullet|numbers)`)
)

type parser struct {
	mode ParseMode
	tok  *tokenizer
}

// Parse turns SN source into a Document.
// On failure it returns a *ParseError wrapping ErrMissingHeader,
// ErrUnknownCommand or ErrInvalidListType, and no Document.
func Parse(content string, opts ...ParseOption) (*Document, error) {
	p := &parser{mode: Lenient}
	for _, opt := range opts {
		opt(p)
	}
	p.tok = newTokenizer(content)
	return p.parse()
}

// ParseFile reads path and parses its content.
func ParseFile(path string, opts ...ParseOption) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return Parse(string(data), opts...)
}

func (p *parser) parse() (*Document, error) {
	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	doc := &Document{
		Version:  FormatVersion,
		Metadata: p.parseMetadata(),
	}

	for p.tok.More() {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		doc.Nodes = append(doc.Nodes, node)

		switch n := node.(type) {
		case Signature:
			doc.Signature = n.Value
		case Close:
			doc.Sealed = true
		case EndNewSN:
			if p.mode == Strict {
				return doc, nil
			}
		}
	}

	return doc, nil
}

// parseHeader skips blank and comment lines and consumes the header line.
func (p *parser) parseHeader() error {
	for {
		line, ok := p.tok.Peek()
		if !ok {
			return &ParseError{Err: ErrMissingHeader}
		}
		if isSkippable(line) {
			p.tok.Next()
			continue
		}
		if strings.TrimSpace(line) != HeaderLine {
			return &ParseError{Line: p.tok.Line(), Text: line, Err: ErrMissingHeader}
		}
		p.tok.Next()
		return nil
	}
}

// parseMetadata collects meta: lines. The first other substantive line is
// left unconsumed for the body phase.
func (p *parser) parseMetadata() []Meta {
	var meta []Meta
	for {
		line, ok := p.tok.Peek()
		if !ok {
			return meta
		}
		if isSkippable(line) {
			p.tok.Next()
			continue
		}
		stripped := strings.TrimSpace(line)
		if !hasFoldPrefix(stripped, kwMeta) {
			return meta
		}
		p.tok.Next()
		meta = append(meta, Meta{Content: strings.TrimSpace(stripped[len(kwMeta):])})
	}
}

// parseNode consumes one line (or one block) and returns its node.
// A nil node with a nil error means the input produced nothing.
func (p *parser) parseNode() (Node, error) {
	line, ok := p.tok.Peek()
	if !ok {
		return nil, nil
	}
	if isSkippable(line) {
		p.tok.Next()
		return nil, nil
	}

	stripped := strings.TrimSpace(line)
	rest := func(keyword string) string {
		return strings.TrimSpace(stripped[len(keyword):])
	}

	switch {
	case hasFoldPrefix(stripped, kwTitle):
		p.tok.Next()
		return Title{Text: rest(kwTitle)}, nil

	case hasFoldPrefix(stripped, kwSecDef):
		p.tok.Next()
		return SectionDef{ID: rest(kwSecDef)}, nil

	case hasFoldPrefix(stripped, kwSecLink):
		p.tok.Next()
		m := secLinkPattern.FindStringSubmatch(stripped)
		if m == nil {
			return nil, nil
		}
		return SectionLink{ID: strings.TrimSpace(m[1]), Text: strings.TrimSpace(m[2])}, nil

	case hasFoldPrefix(stripped, kwPara):
		p.tok.Next()
		return Paragraph{Text: rest(kwPara)}, nil

	case equalFold(stripped, kwBreak), equalFold(stripped, kwBreakAlt):
		p.tok.Next()
		return BreakLine{}, nil

	case hasFoldPrefix(stripped, kwList):
		return p.parseList(stripped)

	case equalFold(stripped, kwCode):
		return p.parseCodeBlock(), nil

	case hasFoldPrefix(stripped, kwImage):
		p.tok.Next()
		return parseImage(stripped[len(kwImage):]), nil

	case hasFoldPrefix(stripped, kwLink):
		p.tok.Next()
		return Link{URL: rest(kwLink)}, nil

	case hasFoldPrefix(stripped, kwLinkText):
		p.tok.Next()
		return parseLinkText(stripped[len(kwLinkText):]), nil

	case hasFoldPrefix(stripped, kwOpenSN):
		p.tok.Next()
		m := openSNPattern.FindStringSubmatch(stripped)
		if m == nil {
			return nil, nil
		}
		return OpenSN{Location: strings.TrimSpace(m[1]), Text: strings.TrimSpace(m[2])}, nil

	case hasFoldPrefix(stripped, kwEndNewSN):
		p.tok.Next()
		return EndNewSN{Path: rest(kwEndNewSN)}, nil

	case hasFoldPrefix(stripped, kwSign):
		p.tok.Next()
		return Signature{Value: rest(kwSign)}, nil

	case equalFold(stripped, kwClose):
		p.tok.Next()
		return Close{}, nil
	}

	if p.mode == Strict {
		return nil, &ParseError{Line: p.tok.Line(), Text: line, Err: ErrUnknownCommand}
	}
	p.tok.Next()
	return Unknown{Raw: line}, nil
}

// parseList reads an olist: header and its items. Items run until a blank
// line or a line that looks like a command; comments inside are skipped.
func (p *parser) parseList(header string) (Node, error) {
	m := listPattern.FindStringSubmatch(header)
	if m == nil {
		return nil, &ParseError{Line: p.tok.Line(), Text: header, Err: ErrInvalidListType}
	}
	p.tok.Next()

	list := List{Style: ListKind(strings.ToLower(m[1]))}
	for {
		line, ok := p.tok.Peek()
		if !ok || isBlank(line) {
			break
		}
		if isComment(line) {
			p.tok.Next()
			continue
		}
		if looksLikeCommand(line) {
			break
		}
		p.tok.Next()
		list.Items = append(list.Items, strings.TrimSpace(line))
	}
	return list, nil
}

// parseCodeBlock captures lines verbatim until endcode:. A block left open at
// end of input closes with what was collected.
func (p *parser) parseCodeBlock() Node {
	p.tok.Next()

	var lines []string
	for {
		line, ok := p.tok.Next()
		if !ok || equalFold(strings.TrimSpace(line), kwEndCode) {
			break
		}
		lines = append(lines, line)
	}
	return CodeBlock{Code: strings.Join(lines, "\n")}
}

// parseImage splits "path|alt text".
func parseImage(content string) Image {
	if path, alt, ok := strings.Cut(content, "|"); ok {
		return Image{Path: strings.TrimSpace(path), Alt: strings.TrimSpace(alt)}
	}
	return Image{Path: strings.TrimSpace(content)}
}

// parseLinkText splits "text|url", then "text:url"; without a separator the
// content serves as both text and URL.
func parseLinkText(content string) LinkText {
	if text, url, ok := strings.Cut(content, "|"); ok {
		return LinkText{Text: strings.TrimSpace(text), URL: strings.TrimSpace(url)}
	}
	if text, url, ok := strings.Cut(content, ":"); ok {
		return LinkText{Text: strings.TrimSpace(text), URL: strings.TrimSpace(url)}
	}
	content = strings.TrimSpace(content)
	return LinkText{Text: content, URL: content}
}

// IsReservedLine reports whether line would be read as a command or a
// comment rather than as list item text.
func IsReservedLine(line string) bool {
	return isComment(line) || looksLikeCommand(line)
}

func looksLikeCommand(line string) bool {
	stripped := strings.TrimSpace(line)
	for _, prefix := range commandPrefixes {
		if hasFoldPrefix(stripped, prefix) {
			return true
		}
	}
	return false
}
