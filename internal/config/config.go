package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxThemeLength  = 64   // chroma style names are short
	MaxEngineLength = 32
)

// DefaultTimeout bounds PDF export when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Config holds the settings a conversion can take from a file.
// Zero-valued YAML keys keep the defaults from DefaultConfig.
type Config struct {
	Engine      string          `yaml:"engine"`      // "goldmark" (default) or "gomarkdown"
	Safe        bool            `yaml:"safe"`        // Omit raw HTML (default: true)
	Sanitize    bool            `yaml:"sanitize"`    // Run the fragment through the sanitizer
	EmbedImages bool            `yaml:"embedImages"` // Inline relative images as data: URIs
	Highlight   HighlightConfig `yaml:"highlight"`
	Math        MathConfig      `yaml:"math"`
	Fonts       FontsConfig     `yaml:"fonts"`
	Assets      AssetsConfig    `yaml:"assets"`
	PDF         PDFConfig       `yaml:"pdf"`

	// dir is the directory of the loaded file; relative asset paths
	// resolve against it.
	dir string
}

// Highlight modes.
const (
	HighlightAuto   = "auto"   // render time when the engine supports it, else in the browser
	HighlightServer = "server" // render time with chroma; goldmark only
	HighlightClient = "client" // bundled in-browser highlighter
)

// HighlightConfig defines syntax highlighting options.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"` // Highlight when code is present (default: true)
	Mode    string `yaml:"mode"`    // auto, server or client (default: "auto")
	Theme   string `yaml:"theme"`   // chroma style name (default: "github")
}

// MathConfig defines math rendering options.
type MathConfig struct {
	Enabled bool `yaml:"enabled"` // Bundle MathJax when math is present (default: true)
}

// FontsConfig defines web font options.
type FontsConfig struct {
	CJK bool `yaml:"cjk"` // Bundle the CJK font stylesheets and loader (default: true)
}

// AssetsConfig names override files for the overridable asset slots.
// Empty = embedded default.
type AssetsConfig struct {
	CSS          string `yaml:"css"`
	HighlightJS  string `yaml:"highlightJS"`
	HighlightCSS string `yaml:"highlightCSS"`
	MathJaxJS    string `yaml:"mathjaxJS"`
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s" (default: 30s)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Engine:    "goldmark",
		Safe:      true,
		Highlight: HighlightConfig{Enabled: true, Mode: HighlightAuto, Theme: "github"},
		Math:      MathConfig{Enabled: true},
		Fonts:     FontsConfig{CJK: true},
	}
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("engine", c.Engine, MaxEngineLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Engine) {
	case "", "goldmark", "gomarkdown":
		// valid
	default:
		return fmt.Errorf("%w: engine %q (must be goldmark or gomarkdown)", ErrInvalidValue, c.Engine)
	}

	if err := validateFieldLength("highlight.theme", c.Highlight.Theme, MaxThemeLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Highlight.Mode) {
	case "", HighlightAuto, HighlightClient:
		// valid
	case HighlightServer:
		if strings.EqualFold(c.Engine, "gomarkdown") {
			return fmt.Errorf("%w: highlight.mode server requires the goldmark engine", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: highlight.mode %q (must be auto, server or client)", ErrInvalidValue, c.Highlight.Mode)
	}

	paths := []struct{ field, value string }{
		{"assets.css", c.Assets.CSS},
		{"assets.highlightJS", c.Assets.HighlightJS},
		{"assets.highlightCSS", c.Assets.HighlightCSS},
		{"assets.mathjaxJS", c.Assets.MathJaxJS},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	return nil
}

// Timeout returns the PDF export timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.PDF.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidValue, c.PDF.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// AssetPath resolves an override path from the config file. Relative paths
// are taken from the directory of the loaded file; absolute paths and
// configs built in memory are returned unchanged.
func (c *Config) AssetPath(p string) string {
	if p == "" || c.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(configPath); err == nil {
		cfg.dir = filepath.Dir(abs)
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
//
// Examples:
//   - "work" -> false (name)
//   - "./work.yaml" -> true
//   - "work.yaml" -> true (has an extension)
func isFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2html", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
