// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-blogmd/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "use --html to skip PDF output")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for long articles, use --timeout flag")
}

// ForConfigNotFound suggests --config, or creating the config under the
// go-blogmd user config directory when that path was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), "/go-blogmd/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the available themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForCustomTheme explains that the custom theme has no stylesheet of its own.
func ForCustomTheme() string {
	return format("theme \"custom\" needs --css /path/to/theme.css")
}

// ForStoreCorrupt points at the store file that failed to parse.
func ForStoreCorrupt(path string) string {
	return format("fix or move " + path + "; blogmd starts with an empty store when the file is absent")
}

// ForStoreWrite returns hints for store persistence errors.
func ForStoreWrite() string {
	return format("check the store directory is writable or pass --store")
}

// ForArticleNotFound suggests how to find article IDs.
func ForArticleNotFound() string {
	return format("run 'blogmd article list' to see article IDs")
}

// ForDraftNotFound suggests how to find draft IDs.
func ForDraftNotFound() string {
	return format("run 'blogmd draft list' to see draft IDs")
}

// ForCategoryNotFound lists the known categories, or explains how to
// create one when there are none.
func ForCategoryNotFound(available []string) string {
	if len(available) == 0 {
		return format("create one with 'blogmd category create NAME'")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForCategoryInUse explains why a category cannot be deleted.
func ForCategoryInUse() string {
	return format("edit or delete its articles first")
}

// ForUnknownEngine lists the Markdown engines.
func ForUnknownEngine(engines []string) string {
	return format("engines: " + strings.Join(engines, ", "))
}

// ForHighlightStyle suggests how to list highlight styles.
func ForHighlightStyle() string {
	return format("run 'blogmd themes --styles' to list highlight styles")
}

// ForInvalidColor lists palette names accepted as colours.
func ForInvalidColor(palette []string) string {
	return format("use #rrggbb or one of: " + strings.Join(palette, ", "))
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

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
