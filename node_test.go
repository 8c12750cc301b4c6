package sn

import (
	"reflect"
	"testing"
)

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindMeta, "Meta"},
		{KindSectionLink, "SectionLink"},
		{KindOpenSN, "OpenSN"},
		{KindUnknown, "Unknown"},
		{NodeKind(-1), "NodeKind(?)"},
		{NodeKind(99), "NodeKind(?)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestNode_Kind(t *testing.T) {
	t.Parallel()

	nodes := map[NodeKind]Node{
		KindMeta:        Meta{},
		KindTitle:       Title{},
		KindSectionDef:  SectionDef{},
		KindSectionLink: SectionLink{},
		KindParagraph:   Paragraph{},
		KindBreakLine:   BreakLine{},
		KindList:        List{},
		KindCodeBlock:   CodeBlock{},
		KindImage:       Image{},
		KindLink:        Link{},
		KindLinkText:    LinkText{},
		KindOpenSN:      OpenSN{},
		KindEndNewSN:    EndNewSN{},
		KindSignature:   Signature{},
		KindClose:       Close{},
		KindUnknown:     Unknown{},
	}

	for want, n := range nodes {
		if got := n.Kind(); got != want {
			t.Errorf("%T.Kind() = %v, want %v", n, got, want)
		}
	}
}

func TestDocument_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes []Node
		want  string
	}{
		{name: "no title", nodes: []Node{Paragraph{Text: "x"}}, want: "Untitled Document"},
		{name: "first title wins", nodes: []Node{Paragraph{}, Title{Text: "A"}, Title{Text: "B"}}, want: "A"},
		{name: "empty document", want: "Untitled Document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := &Document{Nodes: tt.nodes}
			if got := doc.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocument_Sections(t *testing.T) {
	t.Parallel()

	doc := &Document{Nodes: []Node{
		SectionDef{ID: "intro"},
		SectionLink{ID: "intro", Text: "up"},
		SectionLink{ID: "outro"},
		SectionDef{ID: "body"},
		SectionLink{ID: "appendix"},
		SectionLink{ID: "outro"},
		SectionLink{ID: "body"},
	}}

	if got, want := doc.Sections(), []string{"intro", "body"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sections() = %v, want %v", got, want)
	}
	if got, want := doc.UndefinedSections(), []string{"outro", "appendix"}; !reflect.DeepEqual(got, want) {
		t.Errorf("UndefinedSections() = %v, want %v", got, want)
	}

	empty := &Document{}
	if got := empty.UndefinedSections(); len(got) != 0 {
		t.Errorf("UndefinedSections() on empty document = %v", got)
	}
}
