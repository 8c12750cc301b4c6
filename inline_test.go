package sn

import "testing"

func TestFormatInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello", want: "hello"},
		{name: "bold", in: "{b:X} and more", want: "<strong>X</strong> and more"},
		{name: "bold long form", in: "{BOLD:X}", want: "<strong>X</strong>"},
		{name: "italic", in: "{i:x}{italic:y}", want: "<em>x</em><em>y</em>"},
		{name: "underline", in: "{u:under}", want: "<u>under</u>"},
		{name: "color", in: "{color=red:warning}", want: `<span style="color: red">warning</span>`},
		{name: "color with hex value", in: "{color=#ff0000:x}", want: `<span style="color: #ff0000">x</span>`},
		{name: "escaped braces", in: "{{literal}}", want: "{literal}"},
		{name: "escaped braces next to span", in: "{b:X} and {{literal}}", want: "<strong>X</strong> and {literal}"},
		{name: "html is escaped", in: `<script>"a" & 'b'</script>`, want: "&lt;script&gt;&quot;a&quot; &amp; &#x27;b&#x27;&lt;/script&gt;"},
		{name: "html inside span is escaped", in: "{b:<x>}", want: "<strong>&lt;x&gt;</strong>"},
		{name: "spans are non-greedy", in: "{b:a} {b:b}", want: "<strong>a</strong> <strong>b</strong>"},
		{name: "unknown directive left alone", in: "{x:y}", want: "{x:y}"},
		{name: "unclosed directive left alone", in: "{b:open", want: "{b:open"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatInline(tt.in); got != tt.want {
				t.Errorf("FormatInline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	got := escapeHTML(`a&b<c>"d"'e'`)
	want := "a&amp;b&lt;c&gt;&quot;d&quot;&#x27;e&#x27;"
	if got != want {
		t.Errorf("escapeHTML() = %q, want %q", got, want)
	}
}
