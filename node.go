package sn

// FormatVersion is the only document format version understood by this package.
const FormatVersion = "v1"

// HeaderLine must be the first substantive line of every SN document.
const HeaderLine = "<super-notation-v1>"

// defaultTitle is reported by Document.Title when no title: line exists.
const defaultTitle = "Untitled Document"

// Document is the result of a successful parse.
// Metadata always precede Nodes in the source. Sealed is true iff a Close node
// was parsed; Signature holds the value of the last Signature node.
type Document struct {
	Version   string
	Metadata  []Meta
	Nodes     []Node
	Sealed    bool
	Signature string
}

// HasSignature reports whether the document carried a sign: line.
func (d *Document) HasSignature() bool {
	return d.Signature != ""
}

// Title returns the text of the first Title node.
func (d *Document) Title() string {
	for _, n := range d.Nodes {
		if t, ok := n.(Title); ok {
			return t.Text
		}
	}
	return defaultTitle
}

// Sections returns the identifiers of all SectionDef nodes in order.
func (d *Document) Sections() []string {
	var ids []string
	for _, n := range d.Nodes {
		if s, ok := n.(SectionDef); ok {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// UndefinedSections returns SectionLink targets with no matching SectionDef.
// The parser never rejects such links; this is a diagnostic only.
func (d *Document) UndefinedSections() []string {
	defined := make(map[string]bool)
	for _, id := range d.Sections() {
		defined[id] = true
	}

	seen := make(map[string]bool)
	var missing []string
	for _, n := range d.Nodes {
		l, ok := n.(SectionLink)
		if !ok || defined[l.ID] || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		missing = append(missing, l.ID)
	}
	return missing
}

// NodeKind identifies a Node variant.
type NodeKind int

// Node kinds, one per variant.
const (
	KindMeta NodeKind = iota
	KindTitle
	KindSectionDef
	KindSectionLink
	KindParagraph
	KindBreakLine
	KindList
	KindCodeBlock
	KindImage
	KindLink
	KindLinkText
	KindOpenSN
	KindEndNewSN
	KindSignature
	KindClose
	KindUnknown
)

var kindNames = [...]string{
	KindMeta:        "Meta",
	KindTitle:       "Title",
	KindSectionDef:  "SectionDef",
	KindSectionLink: "SectionLink",
	KindParagraph:   "Paragraph",
	KindBreakLine:   "BreakLine",
	KindList:        "List",
	KindCodeBlock:   "CodeBlock",
	KindImage:       "Image",
	KindLink:        "Link",
	KindLinkText:    "LinkText",
	KindOpenSN:      "OpenSN",
	KindEndNewSN:    "EndNewSN",
	KindSignature:   "Signature",
	KindClose:       "Close",
	KindUnknown:     "Unknown",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "NodeKind(?)"
	}
	return kindNames[k]
}

// Node is one content element of a Document.
// The set of implementations is closed: only the types in this file satisfy it.
type Node interface {
	Kind() NodeKind
	node()
}

// Meta is a metadata entry. It is never rendered.
type Meta struct {
	Content string
}

// Title is the document heading.
type Title struct {
	Text string
}

// SectionDef defines an anchor target.
type SectionDef struct {
	ID string
}

// SectionLink points at a SectionDef by identifier.
type SectionLink struct {
	ID   string
	Text string
}

// Paragraph is a block of inline-formatted text.
type Paragraph struct {
	Text string
}

// BreakLine is a horizontal divider.
type BreakLine struct{}

// ListKind selects bulleted or numbered rendering.
type ListKind string

// List kinds as written after olist:.
const (
	ListBullet  ListKind = "bullet"
	ListNumbers ListKind = "numbers"
)

// List is an ordered sequence of items.
type List struct {
	Style ListKind
	Items []string
}

// CodeBlock holds literal lines, rendered without inline formatting.
type CodeBlock struct {
	Code string
}

// Image references a picture by path or URL.
type Image struct {
	Path string
	Alt  string
}

// Link is a bare URL that doubles as its display text.
type Link struct {
	URL string
}

// LinkText is a URL with distinct display text.
type LinkText struct {
	URL  string
	Text string
}

// OpenSN navigates to another SN document.
type OpenSN struct {
	Location string
	Text     string
}

// EndNewSN points forward to the next document in a series.
type EndNewSN struct {
	Path string
}

// Signature carries a "SHA256-<HEX>" value from a sign: line.
type Signature struct {
	Value string
}

// Close is the seal marker.
type Close struct{}

// Unknown keeps an unrecognized line verbatim (lenient mode only).
type Unknown struct {
	Raw string
}

func (Meta) Kind() NodeKind        { return KindMeta }
func (Title) Kind() NodeKind       { return KindTitle }
func (SectionDef) Kind() NodeKind  { return KindSectionDef }
func (SectionLink) Kind() NodeKind { return KindSectionLink }
func (Paragraph) Kind() NodeKind   { return KindParagraph }
func (BreakLine) Kind() NodeKind   { return KindBreakLine }
func (List) Kind() NodeKind        { return KindList }
func (CodeBlock) Kind() NodeKind   { return KindCodeBlock }
func (Image) Kind() NodeKind       { return KindImage }
func (Link) Kind() NodeKind        { return KindLink }
func (LinkText) Kind() NodeKind    { return KindLinkText }
func (OpenSN) Kind() NodeKind      { return KindOpenSN }
func (EndNewSN) Kind() NodeKind    { return KindEndNewSN }
func (Signature) Kind() NodeKind   { return KindSignature }
func (Close) Kind() NodeKind       { return KindClose }
func (Unknown) Kind() NodeKind     { return KindUnknown }

func (Meta) node()        {}
func (Title) node()       {}
func (SectionDef) node()  {}
func (SectionLink) node() {}
func (Paragraph) node()   {}
func (BreakLine) node()   {}
func (List) node()        {}
func (CodeBlock) node()   {}
func (Image) node()       {}
func (Link) node()        {}
func (LinkText) node()    {}
func (OpenSN) node()      {}
func (EndNewSN) node()    {}
func (Signature) node()   {}
func (Close) node()       {}
func (Unknown) node()     {}
