// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-htmlsplice/internal/fileutil"
	"github.com/alnah/go-htmlsplice/internal/pipeline"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForMissingContainer returns hints for a document that offers no
// injection point. Lists the three accepted forms.
func ForMissingContainer(containerID, placeholder string) string {
	var hints []string
	hints = append(hints, "add "+pipeline.StartMarker(containerID)+" and "+pipeline.EndMarker(containerID))
	if placeholder != "" {
		hints = append(hints, "or "+placeholder)
	}
	hints = append(hints, `or an element with id="`+containerID+`"`)
	return format(strings.Join(hints, " "))
}

// ForSourceNotFound returns a hint for a missing data file.
func ForSourceNotFound(root string) string {
	if root == "" || root == "." {
		return format("paths are relative to the working directory; use --root to change it")
	}
	return format("paths are relative to " + root)
}

// ForWriteDocument returns hints for document write errors.
func ForWriteDocument() string {
	return format("check the document's directory is writable")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/htmlsplice/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == "htmlsplice" {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForUnsupportedLocale returns hints for locale errors.
func ForUnsupportedLocale(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForWatch returns hints for watch mode setup errors.
// File events often do not cross container bind mounts.
func ForWatch() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if inCI {
		hints = append(hints, "use build instead of watch in CI")
	} else if IsInContainer() {
		hints = append(hints, "file events may not reach a container through bind mounts; run build after edits")
	}

	if len(hints) == 0 {
		hints = append(hints, "check the inotify watch limit (fs.inotify.max_user_watches)")
	}

	return formatHints(hints)
}

// Plain strips the hint prefix, for use as a structured log field.
func Plain(hint string) string {
	return strings.TrimPrefix(hint, "\n  hint: ")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
