package sn

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "unsigned content unchanged", raw: "<super-notation-v1>\npara: x\n", want: "<super-notation-v1>\npara: x\n"},
		{name: "BOM stripped", raw: "\xEF\xBB\xBFa\nb", want: "a\nb"},
		{name: "CRLF normalized", raw: "a\r\nb\r\n", want: "a\nb\n"},
		{name: "lone CR normalized", raw: "a\rb", want: "a\nb"},
		{name: "cut before sign line", raw: "a\nb\n\nsign: SHA256-X\nclose:\n", want: "a\nb\n"},
		{name: "indented sign line", raw: "a\n   SIGN: x", want: "a"},
		{name: "first sign line wins", raw: "a\nsign: 1\nb\nsign: 2", want: "a"},
		{name: "sign on first line", raw: "sign: x\na", want: ""},
		{name: "sign inside text is not a cut", raw: "para: sign: here", want: "para: sign: here"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := string(Canonicalize([]byte(tt.raw))); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()

	// SHA-256 of the empty string.
	const emptySum = "SHA256-E3B0C44298FC1C149AFBF4C8996FB92427AE41E4649B934CA495991B7852B855"
	if got := Digest(nil); got != emptySum {
		t.Errorf("Digest(nil) = %q, want %q", got, emptySum)
	}

	content := []byte("<super-notation-v1>\ntitle: T\n")
	sum := sha256.Sum256(content)
	want := SignaturePrefix + strings.ToUpper(hex.EncodeToString(sum[:]))
	got := Digest(content)
	if got != want {
		t.Errorf("Digest() = %q, want %q", got, want)
	}
	if len(got) != SignatureLength {
		t.Errorf("len(Digest()) = %d, want %d", len(got), SignatureLength)
	}
	if strings.ToUpper(got) != got {
		t.Errorf("Digest() %q is not upper case", got)
	}
}

func TestComputeSignature_LineEndingsAndBOMAgree(t *testing.T) {
	t.Parallel()

	unix := "<super-notation-v1>\ntitle: T\npara: x\n"
	variants := []string{
		strings.ReplaceAll(unix, "\n", "\r\n"),
		strings.ReplaceAll(unix, "\n", "\r"),
		"\xEF\xBB\xBF" + unix,
		unix + "sign: SHA256-OLD\nclose:\n",
	}

	want := ComputeSignature([]byte(unix))
	for _, v := range variants {
		if got := ComputeSignature([]byte(v)); got != want {
			t.Errorf("ComputeSignature(%q) = %s, want %s", v, got, want)
		}
	}
}
