package sn

import (
	"errors"
	"fmt"

	"github.com/alnah/go-supernotation/internal/assets"
)

// Sentinel errors for parsing.
var (
	ErrMissingHeader   = errors.New("missing or invalid <super-notation-v1> header")
	ErrUnknownCommand  = errors.New("unknown command in strict mode")
	ErrInvalidListType = errors.New("invalid list type")
	ErrEmptyInput      = errors.New("document content cannot be empty")
)

// Sentinel errors for signing and verification.
var (
	ErrSignatureNotFound = errors.New("no signature found in file")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrReadFile          = errors.New("failed to read file")
	ErrWriteFile         = errors.New("failed to write file")
)

// Sentinel errors for conversion.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// ErrStyleNotFound matches a WithStyle name that is neither embedded nor
	// present under the asset path.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// ParseError describes a fatal parse failure and the line that caused it.
// Line is 1-based; it is 0 when the input ended before the failure point.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
