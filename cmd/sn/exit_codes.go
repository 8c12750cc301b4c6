package main

import (
	"context"
	"errors"
	"os"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/assets"
	"github.com/alnah/go-supernotation/internal/config"
	"github.com/alnah/go-supernotation/internal/hints"
	"github.com/alnah/go-supernotation/internal/mdimport"
)

// Exit codes for the sn CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command succeeded
	ExitGeneral = 1 // General error or failed verification
	ExitUsage   = 2 // Invalid flags, config, or document syntax
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, sn.ErrBrowserConnect) ||
		errors.Is(err, sn.ErrPageCreate) ||
		errors.Is(err, sn.ErrPageLoad) ||
		errors.Is(err, sn.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, sn.ErrReadFile) ||
		errors.Is(err, sn.ErrWriteFile) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/syntax errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrOutputExists) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, sn.ErrMissingHeader) ||
		errors.Is(err, sn.ErrUnknownCommand) ||
		errors.Is(err, sn.ErrInvalidListType) ||
		errors.Is(err, sn.ErrEmptyInput) ||
		errors.Is(err, sn.ErrInvalidPageSize) ||
		errors.Is(err, sn.ErrInvalidOrientation) ||
		errors.Is(err, sn.ErrInvalidMargin) ||
		errors.Is(err, sn.ErrStyleNotFound) ||
		errors.Is(err, sn.ErrInvalidAssetPath) ||
		errors.Is(err, mdimport.ErrEmptyInput) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns the "hint:" suffix for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, sn.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths())
	case errors.Is(err, sn.ErrMissingHeader):
		return hints.ForMissingHeader()
	case errors.Is(err, sn.ErrUnknownCommand):
		return hints.ForUnknownCommand()
	case errors.Is(err, sn.ErrInvalidListType):
		return hints.ForInvalidListType()
	case errors.Is(err, sn.ErrSignatureMismatch):
		return hints.ForSignatureMismatch()
	case errors.Is(err, sn.ErrSignatureNotFound):
		return hints.ForSignatureNotFound()
	case errors.Is(err, sn.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
