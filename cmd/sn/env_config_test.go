package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-supernotation/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ []string
		want    envConfig
		wantErr error
	}{
		{
			name:    "empty environment",
			environ: nil,
			want:    envConfig{},
		},
		{
			name: "all variables",
			environ: []string{
				"SN_CONFIG=/etc/sn.yaml",
				"SN_STRICT=true",
				"SN_STYLE=print",
				"SN_TIMEOUT=2m",
				"SN_WORKERS=3",
				"SN_SERVE_ADDR=:9000",
				"HOME=/root",
			},
			want: envConfig{
				ConfigPath: "/etc/sn.yaml",
				Strict:     true,
				Style:      "print",
				Timeout:    2 * time.Minute,
				Workers:    3,
				ServeAddr:  ":9000",
			},
		},
		{
			name:    "unprefixed names are ignored",
			environ: []string{"STYLE=print", "CONFIG=x"},
			want:    envConfig{},
		},
		{
			name:    "malformed duration",
			environ: []string{"SN_TIMEOUT=soon"},
			wantErr: ErrInvalidEnv,
		},
		{
			name:    "malformed int",
			environ: []string{"SN_WORKERS=many"},
			wantErr: ErrInvalidEnv,
		},
		{
			name:    "negative workers",
			environ: []string{"SN_WORKERS=-2"},
			wantErr: ErrInvalidEnv,
		},
		{
			name:    "negative timeout",
			environ: []string{"SN_TIMEOUT=-5s"},
			wantErr: ErrInvalidEnv,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loadEnvConfig(tt.environ)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("loadEnvConfig() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{"SN_STYEL=print", "SN_STYLE=print", "PATH=/bin", "SNX=1"})

	out := buf.String()
	if !strings.Contains(out, "warning: unknown environment variable SN_STYEL (typo?)") {
		t.Errorf("missing warning for SN_STYEL: %q", out)
	}
	for _, notWant := range []string{"SN_STYLE ", "PATH", "SNX"} {
		if strings.Contains(out, notWant) {
			t.Errorf("unexpected warning mentioning %q: %q", notWant, out)
		}
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{Strict: true, Style: "print", Workers: 4, ServeAddr: ":9000"}, cfg)

		if !cfg.Parse.Strict {
			t.Error("Parse.Strict should be set")
		}
		if cfg.Render.Style != "print" {
			t.Errorf("Render.Style = %q, want print", cfg.Render.Style)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
		if cfg.Serve.Addr != ":9000" {
			t.Errorf("Serve.Addr = %q, want :9000", cfg.Serve.Addr)
		}
	})

	t.Run("keeps file values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Render.Style = "default"
		cfg.Workers = 2
		applyEnvConfig(&envConfig{Style: "print", Workers: 4}, cfg)

		if cfg.Render.Style != "default" {
			t.Errorf("Render.Style = %q, want default", cfg.Render.Style)
		}
		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2", cfg.Workers)
		}
	})
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sn.yaml")
	if err := os.WriteFile(path, []byte("render:\n  style: print\nworkers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("render:\n  colour: red\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		flag      string
		environ   []string
		wantStyle string
		wantErr   error
	}{
		{
			name:      "flag path",
			flag:      path,
			wantStyle: "print",
		},
		{
			name:      "SN_CONFIG path",
			environ:   []string{"SN_CONFIG=" + path},
			wantStyle: "print",
		},
		{
			name:      "flag wins over SN_CONFIG",
			flag:      path,
			environ:   []string{"SN_CONFIG=" + filepath.Join(dir, "missing.yaml")},
			wantStyle: "print",
		},
		{
			name:    "missing explicit file",
			flag:    filepath.Join(dir, "missing.yaml"),
			wantErr: config.ErrConfigNotFound,
		},
		{
			name:    "unknown field",
			flag:    bad,
			wantErr: config.ErrConfigParse,
		},
		{
			name:    "invalid environment",
			flag:    path,
			environ: []string{"SN_WORKERS=lots"},
			wantErr: ErrInvalidEnv,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := newTestEnv()
			env.Environ = func() []string { return tt.environ }

			cfg, _, err := loadSettings(tt.flag, env)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Render.Style != tt.wantStyle {
				t.Errorf("Render.Style = %q, want %q", cfg.Render.Style, tt.wantStyle)
			}
		})
	}
}
