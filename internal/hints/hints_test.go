package hints

// Notes:
// - ForBrowserConnect tests do not run in parallel: they use t.Setenv and
//   swap the package-level IsInContainer.

import (
	"strings"
	"testing"
)

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(key, "")
	}
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          bool
		container   bool
		noSandbox   string
		browserBin  string
		wantContain []string
		wantNot     []string
	}{
		{
			name:        "ci without sandbox flag",
			ci:          true,
			wantContain: []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
		},
		{
			name:        "docker",
			container:   true,
			browserBin:  "/usr/bin/chromium",
			wantContain: []string{"ROD_NO_SANDBOX"},
			wantNot:     []string{"ROD_BROWSER_BIN"},
		},
		{
			name:        "sandbox already disabled",
			container:   true,
			noSandbox:   "1",
			wantContain: []string{"ROD_BROWSER_BIN"},
			wantNot:     []string{"ROD_NO_SANDBOX"},
		},
		{
			name:        "desktop",
			wantContain: []string{"ROD_BROWSER_BIN"},
			wantNot:     []string{"ROD_NO_SANDBOX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := IsInContainer
			t.Cleanup(func() { IsInContainer = orig })
			IsInContainer = func() bool { return tt.container }

			clearCIEnv(t)
			if tt.ci {
				t.Setenv("CI", "true")
			}
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()
			for _, want := range tt.wantContain {
				if !strings.Contains(hint, want) {
					t.Errorf("hint = %q, want containing %q", hint, want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(hint, not) {
					t.Errorf("hint = %q, should not contain %q", hint, not)
				}
			}
		})
	}
}

func TestForBrowserConnect_AllConfigured(t *testing.T) {
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return true }

	clearCIEnv(t)
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	if hint := ForBrowserConnect(); hint != "" {
		t.Errorf("ForBrowserConnect() = %q, want empty", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"sn.yaml", "/home/u/.config/go-supernotation/sn.yaml"})
	if !strings.Contains(hint, "--config") {
		t.Errorf("hint = %q, want --config", hint)
	}
	if !strings.Contains(hint, "create /home/u/.config/go-supernotation/sn.yaml") {
		t.Errorf("hint = %q, want user config path", hint)
	}

	if hint := ForConfigNotFound(nil); strings.Contains(hint, "create") {
		t.Errorf("hint = %q, should not suggest a path", hint)
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", hint)
	}
	if hint := ForStyleNotFound([]string{"default", "print"}); !strings.Contains(hint, "default, print") {
		t.Errorf("ForStyleNotFound() = %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, h := range []string{
		ForTimeout(),
		ForMissingHeader(),
		ForUnknownCommand(),
		ForInvalidListType(),
		ForSignatureMismatch(),
		ForSignatureNotFound(),
		ForOutputDirectory(),
	} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
