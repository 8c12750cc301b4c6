package sn

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-supernotation/internal/fileutil"
)

// Verification is the outcome of checking a document signature.
// A missing or mismatched signature is reported here rather than as an error.
type Verification struct {
	Valid    bool
	Sealed   bool
	Expected string // recomputed signature
	Found    string // signature read from the sign: line
	Err      error  // ErrSignatureNotFound or ErrSignatureMismatch when !Valid
}

// Message returns a one-line (two lines on mismatch) human summary.
func (v Verification) Message() string {
	switch {
	case v.Valid && v.Sealed:
		return "✓ Signature valid and document is sealed: " + v.Expected
	case v.Valid:
		return "✓ Signature valid (but document not sealed - missing close:): " + v.Expected
	case errors.Is(v.Err, ErrSignatureNotFound):
		return "No signature found in file"
	default:
		return fmt.Sprintf("✗ Signature mismatch!\nExpected: %s\nFound:    %s", v.Expected, v.Found)
	}
}

// normalizeNewlines converts CRLF and lone CR to LF, keeping any BOM.
func normalizeNewlines(raw []byte) []byte {
	content := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}

// ExtractSignature returns the value after the first colon of the first line
// whose trimmed content starts with sign: (any case).
func ExtractSignature(raw []byte) (string, bool) {
	for _, line := range bytes.Split(normalize(raw), []byte("\n")) {
		stripped := bytes.Trim(line, asciiSpace)
		if !hasFoldPrefix(stripped, kwSign) {
			continue
		}
		_, value, _ := strings.Cut(string(stripped), ":")
		return strings.TrimSpace(value), true
	}
	return "", false
}

// HasSeal reports whether any line is exactly close: once trimmed.
func HasSeal(raw []byte) bool {
	for _, line := range bytes.Split(normalize(raw), []byte("\n")) {
		if isCloseLine(string(line)) {
			return true
		}
	}
	return false
}

func isCloseLine(line string) bool {
	return equalFold(strings.TrimSpace(line), kwClose)
}

// isSealLine reports whether line is a sign: line or a close: marker.
func isSealLine(line string) bool {
	stripped := strings.TrimSpace(line)
	return hasFoldPrefix(stripped, kwSign) || equalFold(stripped, kwClose)
}

// stripSealLines drops sign:/close: lines and trailing blank lines.
func stripSealLines(content []byte) (lines []string, removed bool) {
	for _, line := range strings.Split(string(normalizeNewlines(content)), "\n") {
		if isSealLine(line) {
			removed = true
			continue
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines, removed
}

// SignContent rewrites raw as a signed document: existing sign:/close: lines
// are removed, trailing blank lines trimmed, then a blank line, a fresh
// sign: line and a close: marker are appended. The signature covers exactly
// the canonical bytes of the returned content, so signing is idempotent and
// VerifyContent on the result always succeeds.
func SignContent(raw []byte) (signed []byte, signature string) {
	lines, _ := stripSealLines(raw)
	body := append(lines, "")
	signature = ComputeSignature([]byte(strings.Join(body, "\n")))

	out := append(body, "sign: "+signature, kwClose)
	return []byte(strings.Join(out, "\n")), signature
}

// UnsignContent removes every sign: line and close: marker. When nothing was
// removed, raw is returned unchanged and removed is false.
func UnsignContent(raw []byte) (out []byte, removed bool) {
	lines, removed := stripSealLines(raw)
	if !removed {
		return raw, false
	}
	return []byte(strings.Join(lines, "\n")), true
}

// VerifyContent checks the embedded signature against the canonical bytes.
func VerifyContent(raw []byte) Verification {
	found, ok := ExtractSignature(raw)
	if !ok {
		return Verification{Err: ErrSignatureNotFound}
	}

	v := Verification{
		Expected: ComputeSignature(raw),
		Found:    found,
	}
	if v.Expected != v.Found {
		v.Err = fmt.Errorf("%w: expected %s, found %s", ErrSignatureMismatch, v.Expected, v.Found)
		return v
	}

	v.Valid = true
	v.Sealed = HasSeal(raw)
	return v
}

// ComputeFileSignature returns the signature of the file's current content.
func ComputeFileSignature(path string) (string, error) {
	raw, err := readFile(path)
	if err != nil {
		return "", err
	}
	return ComputeSignature(raw), nil
}

// SignFile signs the file at path. With inPlace the file is rewritten with
// the sign:/close: suffix; otherwise it is left untouched and only the
// signature it would carry is returned.
//
// The signature covers the rewritten body, which always ends in exactly one
// newline before the sign: line. For a file without a trailing newline, or
// with trailing blank lines, it therefore differs from ComputeFileSignature
// on the unsigned file.
func SignFile(path string, inPlace bool) (string, error) {
	raw, err := readFile(path)
	if err != nil {
		return "", err
	}

	signed, signature := SignContent(raw)
	if inPlace {
		if err := writeFile(path, signed); err != nil {
			return "", err
		}
	}
	return signature, nil
}

// VerifyFile verifies the signature of the file at path.
// Only I/O failures are returned as errors.
func VerifyFile(path string) (Verification, error) {
	raw, err := readFile(path)
	if err != nil {
		return Verification{}, err
	}
	return VerifyContent(raw), nil
}

// UnsignFile strips the signature and seal from the file at path, rewriting
// it only when something was removed.
func UnsignFile(path string) (bool, error) {
	raw, err := readFile(path)
	if err != nil {
		return false, err
	}

	out, removed := UnsignContent(raw)
	if !removed {
		return false, nil
	}
	if err := writeFile(path, out); err != nil {
		return false, err
	}
	return true, nil
}

// FileHasSeal reports whether the file at path carries a close: marker.
func FileHasSeal(path string) (bool, error) {
	raw, err := readFile(path)
	if err != nil {
		return false, err
	}
	return HasSeal(raw), nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return raw, nil
}

func writeFile(path string, data []byte) error {
	if err := fileutil.ReplaceFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	return nil
}
