package sn

import "testing"

func TestTokenizer(t *testing.T) {
	t.Parallel()

	tok := newTokenizer("a\r\nb\n\nc")

	if line, ok := tok.Peek(); !ok || line != "a\r" {
		t.Fatalf("Peek() = %q, %v; want %q, true", line, ok, "a\r")
	}
	if tok.Line() != 1 {
		t.Errorf("Line() = %d, want 1", tok.Line())
	}

	var got []string
	for tok.More() {
		line, _ := tok.Next()
		got = append(got, line)
	}
	want := []string{"a\r", "b", "", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	if _, ok := tok.Next(); ok {
		t.Error("Next() past the end returned ok")
	}
	if _, ok := tok.Peek(); ok {
		t.Error("Peek() past the end returned ok")
	}
	if tok.Line() != 5 {
		t.Errorf("Line() = %d, want 5", tok.Line())
	}
}

func TestLineClassifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line        string
		wantComment bool
		wantBlank   bool
	}{
		{line: "", wantBlank: true},
		{line: " \t\r", wantBlank: true},
		{line: "# x", wantComment: true},
		{line: "\t  #x", wantComment: true},
		{line: "a # b"},
		{line: "para: #1"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := isComment(tt.line); got != tt.wantComment {
				t.Errorf("isComment(%q) = %v, want %v", tt.line, got, tt.wantComment)
			}
			if got := isBlank(tt.line); got != tt.wantBlank {
				t.Errorf("isBlank(%q) = %v, want %v", tt.line, got, tt.wantBlank)
			}
			if got := isSkippable(tt.line); got != (tt.wantComment || tt.wantBlank) {
				t.Errorf("isSkippable(%q) = %v", tt.line, got)
			}
		})
	}
}

func TestHasFoldPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s      string
		prefix string
		want   bool
	}{
		{"title: x", "title:", true},
		{"TITLE: x", "title:", true},
		{"TiTlE:", "title:", true},
		{"titl", "title:", false},
		{"subtitle:", "title:", false},
		{"", "sign:", false},
	}

	for _, tt := range tests {
		if got := hasFoldPrefix(tt.s, tt.prefix); got != tt.want {
			t.Errorf("hasFoldPrefix(%q, %q) = %v, want %v", tt.s, tt.prefix, got, tt.want)
		}
		if got := hasFoldPrefix([]byte(tt.s), tt.prefix); got != tt.want {
			t.Errorf("hasFoldPrefix([]byte(%q), %q) = %v, want %v", tt.s, tt.prefix, got, tt.want)
		}
	}

	if !equalFold("Close:", "close:") || equalFold("close: x", "close:") {
		t.Error("equalFold mismatch")
	}
}
