package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName is returned for names that are not plain
	// identifiers (separators, dots, control characters).
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid asset directory")

	// ErrAssetRead wraps I/O failures other than a missing file, including
	// reads that would leave the asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)
