package sn

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Signature format constants.
const (
	// SignaturePrefix names the digest algorithm in every signature value.
	SignaturePrefix = "SHA256-"

	// SignatureLength is the byte length of a signature value: the prefix
	// plus 64 upper-case hex characters.
	SignatureLength = len(SignaturePrefix) + 2*sha256.Size
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// asciiSpace is the whitespace set trimmed at the byte level.
const asciiSpace = " \t\n\v\f\r"

// normalize strips a leading UTF-8 BOM and converts CRLF and lone CR to LF.
func normalize(raw []byte) []byte {
	content := bytes.TrimPrefix(raw, utf8BOM)
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}

// Canonicalize returns the bytes covered by a document signature: the
// normalized content up to, but excluding, the first line whose content after
// leading whitespace starts with sign: (any case). Without such a line the
// whole normalized content is returned.
func Canonicalize(raw []byte) []byte {
	content := normalize(raw)
	lines := bytes.Split(content, []byte("\n"))
	for i, line := range lines {
		if hasFoldPrefix(bytes.TrimLeft(line, asciiSpace), kwSign) {
			return bytes.Join(lines[:i], []byte("\n"))
		}
	}
	return content
}

// Digest formats the SHA-256 of canonical as "SHA256-<HEX>".
func Digest(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return SignaturePrefix + strings.ToUpper(hex.EncodeToString(sum[:]))
}

// ComputeSignature returns the signature for raw document bytes.
func ComputeSignature(raw []byte) string {
	return Digest(Canonicalize(raw))
}
