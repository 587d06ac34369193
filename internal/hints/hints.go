// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForInput returns a hint for rejected Markdown inputs.
func ForInput() string {
	return format("input must be an existing .md or .markdown file")
}

// ForOutputExists returns a hint for refusing to overwrite an output file.
func ForOutputExists() string {
	return format("use --force to overwrite, or -o to choose another path")
}

// ForAssetOverride returns a hint for unreadable or non-UTF-8 override files.
func ForAssetOverride(flag string) string {
	if flag == "" {
		return format("override files must be readable UTF-8 text")
	}
	return format("check the file given to --" + flag + " is readable UTF-8 text")
}

// BrowserEnv describes what the caller knows about the browser setup.
type BrowserEnv struct {
	SandboxRisk  bool // running in CI or a container
	NoSandbox    bool // ROD_NO_SANDBOX=1
	CustomBinary bool // ROD_BROWSER_BIN set
}

// ForBrowserConnect returns hints for a browser that failed to start or load
// the document. An empty string means nothing obvious is misconfigured.
func ForBrowserConnect(e BrowserEnv) string {
	var hints []string
	if e.SandboxRisk && !e.NoSandbox {
		hints = append(hints, "set ROD_NO_SANDBOX=1 inside containers and CI")
	}
	if !e.CustomBinary {
		hints = append(hints, "point ROD_BROWSER_BIN at a Chrome or Chromium binary")
	}
	hints = append(hints, "run md2html doctor")
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "/go-md2html/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForThemeNotFound lists the available highlight themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	const maxListed = 12
	if len(available) > maxListed {
		return format("available: " + strings.Join(available[:maxListed], ", ") + ", ...")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForEngine lists the supported Markdown engines.
func ForEngine(engines []string) string {
	if len(engines) == 0 {
		return ""
	}
	return format("engines: " + strings.Join(engines, ", "))
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
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
