// Package hints builds the "hint:" lines the CLI appends to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-supernotation/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod environment variables that usually fix
// a failed Chrome launch.
func ForBrowserConnect() string {
	var hints []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a specific Chrome")
	}
	return formatHints(hints)
}

func ForTimeout() string {
	return format("for large documents, raise --timeout or SN_TIMEOUT")
}

// ForConfigNotFound points at --config and the user config location.
func ForConfigNotFound(searched []string) string {
	hint := "use --config /path/to/sn.yaml"
	for _, p := range searched {
		if strings.Contains(p, "go-supernotation") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

func ForMissingHeader() string {
	return format("the first non-blank, non-comment line must be <super-notation-v1>")
}

// ForUnknownCommand mentions lenient mode, which keeps unrecognized lines.
func ForUnknownCommand() string {
	return format("fix the line or drop --strict to keep it as unknown text")
}

func ForInvalidListType() string {
	return format("list headers are olist:bullet or olist:numbers")
}

// ForSignatureMismatch tells the user how to reseal after an intended edit.
func ForSignatureMismatch() string {
	return format("the content changed after signing; run 'sn sign' again if the edit was intended")
}

func ForSignatureNotFound() string {
	return format("run 'sn sign FILE' to add a signature")
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the embedded styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
