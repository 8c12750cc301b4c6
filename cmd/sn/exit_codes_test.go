package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneral},
		{"signature mismatch", sn.ErrSignatureMismatch, ExitGeneral},
		{"signature not found", &verificationError{v: sn.Verification{Err: sn.ErrSignatureNotFound}}, ExitGeneral},
		{"browser connect", fmt.Errorf("pdf: %w", sn.ErrBrowserConnect), ExitBrowser},
		{"pdf generation", sn.ErrPDFGeneration, ExitBrowser},
		{"read file", fmt.Errorf("%w: %w", sn.ErrReadFile, os.ErrNotExist), ExitIO},
		{"write file", sn.ErrWriteFile, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"usage", ErrUsage, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"missing header", &sn.ParseError{Err: sn.ErrMissingHeader}, ExitUsage},
		{"unknown command", &sn.ParseError{Line: 3, Err: sn.ErrUnknownCommand}, ExitUsage},
		{"invalid list", sn.ErrInvalidListType, ExitUsage},
		{"page size", sn.ErrInvalidPageSize, ExitUsage},
		{"style not found", fmt.Errorf("loading style: %w", sn.ErrStyleNotFound), ExitUsage},
		{"invalid env", ErrInvalidEnv, ExitUsage},
		{"output exists", ErrOutputExists, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		wantContains string
	}{
		{"missing header", &sn.ParseError{Err: sn.ErrMissingHeader}, "<super-notation-v1>"},
		{"empty document", fmt.Errorf("%w: %w", sn.ErrMissingHeader, sn.ErrEmptyInput), "<super-notation-v1>"},
		{"unknown command", sn.ErrUnknownCommand, "--strict"},
		{"list type", sn.ErrInvalidListType, "olist:bullet"},
		{"mismatch", sn.ErrSignatureMismatch, "sn sign"},
		{"not found", sn.ErrSignatureNotFound, "sn sign"},
		{"timeout", context.DeadlineExceeded, "--timeout"},
		{"config", config.ErrConfigNotFound, "--config"},
		{"style", sn.ErrStyleNotFound, "default"},
		{"output", ErrWriteOutput, "writable"},
		{"plain", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.wantContains == "" {
				if got != "" {
					t.Errorf("hintFor(%v) = %q, want empty", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, "hint:") || !strings.Contains(got, tt.wantContains) {
				t.Errorf("hintFor(%v) = %q, want hint containing %q", tt.err, got, tt.wantContains)
			}
		})
	}
}
