package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleDoc = `<super-notation-v1>
meta: author: Ada

title: Hello
sec: intro
para: Some {b:bold} text
sec=missing: Jump
`

// newTestEnv returns an Environment writing to buffers with an empty
// process environment.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:     func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Environ: func() []string { return nil },
	}
	return env, &stdout, &stderr
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point exit codes and output
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeTestFile(t, dir, "doc.sn", sampleDoc)
	noHeader := writeTestFile(t, dir, "bad.sn", "title: Hello\n")
	unknown := writeTestFile(t, dir, "unknown.sn", "<super-notation-v1>\nfrobnicate: x\n")
	missing := filepath.Join(dir, "missing.sn")

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"sn"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: sn"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"sn", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"sn " + Version},
		},
		{
			name:         "help command exits 0",
			args:         []string{"sn", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: sn", "Commands:"},
		},
		{
			name:         "help render shows render help",
			args:         []string{"sn", "help", "render"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: sn render", "--pdf"},
		},
		{
			name:         "help for unknown command exits with ExitUsage",
			args:         []string{"sn", "help", "frob"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: frob"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"sn", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:     "command flag -h exits 0",
			args:     []string{"sn", "parse", "-h"},
			wantCode: ExitSuccess,
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"sn", "parse", "--bogus", doc},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name:         "missing file argument exits with ExitUsage",
			args:         []string{"sn", "verify"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"verify requires a FILE argument"},
		},
		{
			name:     "too many arguments exits with ExitUsage",
			args:     []string{"sn", "info", doc, doc},
			wantCode: ExitUsage,
		},
		{
			name:     "parse reports structure",
			args:     []string{"sn", "parse", doc},
			wantCode: ExitSuccess,
			wantInStdout: []string{
				"✓ Successfully parsed: " + doc,
				"  Version: v1",
				"  Metadata entries: 1",
				"  Content nodes: 4",
				"  Signed: false",
				"  Sealed: false",
			},
		},
		{
			name:         "parse verbose lists node kinds",
			args:         []string{"sn", "parse", "-v", doc},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"--- Document Structure ---", "1. Title", "2. SectionDef", "4. SectionLink"},
		},
		{
			name:         "parse dump writes YAML",
			args:         []string{"sn", "parse", "--dump", doc},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"version: v1", "title: Hello", "kind: Paragraph", "Some {b:bold} text"},
		},
		{
			name:         "parse without header exits with ExitUsage and hint",
			args:         []string{"sn", "parse", noHeader},
			wantCode:     ExitUsage,
			wantInStderr: []string{"✗ Parse error:", "hint:"},
		},
		{
			name:     "lenient parse keeps unknown lines",
			args:     []string{"sn", "parse", unknown},
			wantCode: ExitSuccess,
		},
		{
			name:         "strict parse rejects unknown lines",
			args:         []string{"sn", "parse", "--strict", unknown},
			wantCode:     ExitUsage,
			wantInStderr: []string{"drop --strict"},
		},
		{
			name:     "parse missing file exits with ExitIO",
			args:     []string{"sn", "parse", missing},
			wantCode: ExitIO,
		},
		{
			name:         "verify unsigned file exits with ExitGeneral",
			args:         []string{"sn", "verify", doc},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"No signature found in file", "sn sign"},
		},
		{
			name:     "info reports title and counts",
			args:     []string{"sn", "info", doc},
			wantCode: ExitSuccess,
			wantInStdout: []string{
				"File: " + doc,
				"Metadata entries: 1",
				"Signed: false",
				"Title: Hello",
			},
		},
		{
			name:         "info verbose lists metadata and dangling links",
			args:         []string{"sn", "info", "-v", doc},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Metadata:", "  author: Ada", "Sections: intro", "Undefined section links: missing"},
		},
		{
			name:     "render missing input exits with ExitIO",
			args:     []string{"sn", "render", missing},
			wantCode: ExitIO,
		},
		{
			name:     "render negative workers exits with ExitUsage",
			args:     []string{"sn", "render", "-w", "-1", doc},
			wantCode: ExitUsage,
		},
		{
			name:         "render unknown style exits with ExitUsage",
			args:         []string{"sn", "render", "--style", "nope", "-o", filepath.Join(dir, "nope.html"), doc},
			wantCode:     ExitUsage,
			wantInStderr: []string{"hint: available:"},
		},
		{
			name:     "render bad page size exits with ExitUsage",
			args:     []string{"sn", "render", "--pdf", "-p", "tabloid", doc},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_SignLifecycle - sign, verify, tamper, unsign on one file
// ---------------------------------------------------------------------------

func TestRunMain_SignLifecycle(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "doc.sn", sampleDoc)

	run := func(args ...string) (int, string, string) {
		env, stdout, stderr := newTestEnv()
		code := runMain(append([]string{"sn"}, args...), env)
		return code, stdout.String(), stderr.String()
	}

	code, out, _ := run("sign", "--dry-run", path)
	if code != ExitSuccess || !strings.HasPrefix(out, "SHA256-") {
		t.Fatalf("sign --dry-run = %d, %q", code, out)
	}
	if raw, _ := os.ReadFile(path); string(raw) != sampleDoc {
		t.Fatal("sign --dry-run modified the file")
	}

	code, out, _ = run("sign", path)
	if code != ExitSuccess || !strings.Contains(out, "✓ File signed: "+path) {
		t.Fatalf("sign = %d, %q", code, out)
	}

	code, out, _ = run("verify", path)
	if code != ExitSuccess || !strings.Contains(out, "✓ Signature valid and document is sealed") {
		t.Fatalf("verify after sign = %d, %q", code, out)
	}

	code, out, _ = run("info", path)
	if code != ExitSuccess || !strings.Contains(out, "Signature: ✓ VALID") {
		t.Fatalf("info after sign = %d, %q", code, out)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(raw), "Hello", "Goodbye", 1)
	if err := os.WriteFile(path, []byte(tampered), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, errOut := run("verify", path)
	if code != ExitGeneral || !strings.Contains(errOut, "✗ Signature mismatch!") {
		t.Fatalf("verify after tamper = %d, %q", code, errOut)
	}

	code, out, _ = run("unsign", path)
	if code != ExitSuccess || !strings.Contains(out, "✓ Signature removed from: "+path) {
		t.Fatalf("unsign = %d, %q", code, out)
	}

	code, out, _ = run("unsign", path)
	if code != ExitSuccess || !strings.Contains(out, "ℹ No signature found in: "+path) {
		t.Fatalf("second unsign = %d, %q", code, out)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_RenderHTML - HTML rendering needs no browser
// ---------------------------------------------------------------------------

func TestRunMain_RenderHTML(t *testing.T) {
	t.Parallel()

	t.Run("single file next to source", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, t.TempDir(), "doc.sn", sampleDoc)
		env, stdout, stderr := newTestEnv()

		if code := runMain([]string{"sn", "render", path}, env); code != ExitSuccess {
			t.Fatalf("render = %d, stderr: %s", code, stderr.String())
		}

		want := strings.TrimSuffix(path, ".sn") + ".html"
		if !strings.Contains(stdout.String(), "✓ Rendered to: "+want) {
			t.Errorf("stdout = %q", stdout.String())
		}
		html, err := os.ReadFile(want)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		for _, s := range []string{"<title>Hello</title>", "<strong>bold</strong>"} {
			if !strings.Contains(string(html), s) {
				t.Errorf("output should contain %q", s)
			}
		}
	})

	t.Run("explicit output file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeTestFile(t, dir, "doc.sn", sampleDoc)
		out := filepath.Join(dir, "out", "page.html")
		env, _, stderr := newTestEnv()

		if code := runMain([]string{"sn", "render", "-o", out, path}, env); code != ExitSuccess {
			t.Fatalf("render = %d, stderr: %s", code, stderr.String())
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("expected %s: %v", out, err)
		}
	})

	t.Run("directory with failures", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "a.sn", sampleDoc)
		writeTestFile(t, dir, "b.sn", "no header\n")
		writeTestFile(t, dir, "notes.txt", "ignored")
		outDir := filepath.Join(dir, "site")
		env, stdout, stderr := newTestEnv()

		code := runMain([]string{"sn", "render", "-o", outDir, "-w", "2", dir}, env)
		if code != ExitGeneral {
			t.Fatalf("render = %d, want %d", code, ExitGeneral)
		}
		if _, err := os.Stat(filepath.Join(outDir, "a.html")); err != nil {
			t.Errorf("a.html not written: %v", err)
		}
		if !strings.Contains(stderr.String(), "FAILED "+filepath.Join(dir, "b.sn")) {
			t.Errorf("stderr = %q", stderr.String())
		}
		if !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := newTestEnv()
		if code := runMain([]string{"sn", "render", t.TempDir()}, env); code != ExitIO {
			t.Errorf("render = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "no .sn files found") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Import - Markdown import
// ---------------------------------------------------------------------------

func TestRunMain_Import(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeTestFile(t, dir, "notes.md", "# Notes\n\nHello *world*.\n")
	out := filepath.Join(dir, "notes.sn")

	env, stdout, stderr := newTestEnv()
	if code := runMain([]string{"sn", "import", "--sign", md}, env); code != ExitSuccess {
		t.Fatalf("import = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "✓ Imported to: "+out) {
		t.Errorf("stdout = %q", stdout.String())
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<super-notation-v1>",
		"meta: source: notes.md",
		"meta: imported: 2026-03-14",
		"title: Notes",
		"para: Hello {i:world}.",
		"close:",
	} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("output should contain %q, got:\n%s", want, raw)
		}
	}

	env, _, _ = newTestEnv()
	if code := runMain([]string{"sn", "verify", out}, env); code != ExitSuccess {
		t.Errorf("verify imported file = %d", code)
	}

	env, _, stderr = newTestEnv()
	if code := runMain([]string{"sn", "import", md}, env); code != ExitUsage {
		t.Errorf("import over existing file = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "--force") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"render", "-v", "x.sn"}, true},
		{[]string{"render", "--verbose"}, true},
		{[]string{"render", "x.sn"}, false},
		{[]string{"render", "--", "-v"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
