package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-blogmd/internal/blog"
	"github.com/alnah/go-blogmd/internal/yamlutil"
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
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxNameLength        = 100  // author name
	MaxThemeLength       = 50   // "high-contrast", "night-mode"
	MaxEngineLength      = 20   // "lite", "commonmark"
	MaxStyleLength       = 50   // chroma style name
	MaxFormatLength      = 10   // "html", "pdf", "both"
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxDateFormatLength  = 50   // "MMMM D, YYYY" or a preset
	MaxLangLength        = 35   // BCP 47 tag
	MaxSortLength        = 20   // "date-newest"
	MaxTimeoutLength     = 20   // "1m30s"
)

// Numeric limits.
const (
	MinWordsPerMinute = 50
	MaxWordsPerMinute = 1000
	MaxExcerptLength  = 1000
	MinMargin         = 0.25
	MaxMargin         = 3.0
)

// Output formats accepted by output.format.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatBoth = "both"
)

// configDirName is the directory searched under os.UserConfigDir.
const configDirName = "go-blogmd"

// Config holds all blogmd settings. Empty values mean "use the built-in
// default"; consumers resolve them.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Theme   ThemeConfig   `yaml:"theme"`
	Assets  AssetsConfig  `yaml:"assets"`
	Engine  EngineConfig  `yaml:"engine"`
	Output  OutputConfig  `yaml:"output"`
	Page    PageConfig    `yaml:"page"`
	Article ArticleConfig `yaml:"article"`
	Timeout string        `yaml:"timeout"` // duration, e.g. "30s"
}

// StoreConfig locates the article store.
type StoreConfig struct {
	Path string `yaml:"path"` // empty = DefaultStorePath()
}

// ThemeConfig selects the page theme.
type ThemeConfig struct {
	Name string `yaml:"name"` // embedded theme name, or "custom"
	CSS  string `yaml:"css"`  // path to extra CSS, required by "custom"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// EngineConfig selects the Markdown engine.
type EngineConfig struct {
	Name           string `yaml:"name"`           // "lite" or "commonmark"
	HighlightStyle string `yaml:"highlightStyle"` // chroma style for commonmark
}

// OutputConfig defines export destinations.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = current directory
	Format     string `yaml:"format"`     // "html", "pdf", "both"
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// ArticleConfig holds defaults applied to new articles and rendered pages.
type ArticleConfig struct {
	DefaultAuthor  string `yaml:"defaultAuthor"`
	WordsPerMinute int    `yaml:"wordsPerMinute"`
	ExcerptLength  int    `yaml:"excerptLength"`
	DateFormat     string `yaml:"dateFormat"` // preset or token format for page dates
	Lang           string `yaml:"lang"`
	Sort           string `yaml:"sort"` // default list order
}

// Validate checks field lengths and enumerated values. Called by LoadConfig,
// and by the CLI again after environment overrides are applied.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"store.path", c.Store.Path, MaxPathLength},
		{"theme.name", c.Theme.Name, MaxThemeLength},
		{"theme.css", c.Theme.CSS, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"engine.name", c.Engine.Name, MaxEngineLength},
		{"engine.highlightStyle", c.Engine.HighlightStyle, MaxStyleLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.format", c.Output.Format, MaxFormatLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"article.defaultAuthor", c.Article.DefaultAuthor, MaxNameLength},
		{"article.dateFormat", c.Article.DateFormat, MaxDateFormatLength},
		{"article.lang", c.Article.Lang, MaxLangLength},
		{"article.sort", c.Article.Sort, MaxSortLength},
		{"timeout", c.Timeout, MaxTimeoutLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Output.Format != "" {
		switch strings.ToLower(c.Output.Format) {
		case FormatHTML, FormatPDF, FormatBoth:
		default:
			return fmt.Errorf("%w: output.format %q (must be html, pdf, or both)", ErrInvalidValue, c.Output.Format)
		}
	}

	if _, err := blog.ParseSortOption(c.Article.Sort); err != nil {
		return fmt.Errorf("%w: article.sort: %v", ErrInvalidValue, err)
	}

	if wpm := c.Article.WordsPerMinute; wpm != 0 && (wpm < MinWordsPerMinute || wpm > MaxWordsPerMinute) {
		return fmt.Errorf("%w: article.wordsPerMinute must be between %d and %d, got %d",
			ErrInvalidValue, MinWordsPerMinute, MaxWordsPerMinute, wpm)
	}
	if n := c.Article.ExcerptLength; n < 0 || n > MaxExcerptLength {
		return fmt.Errorf("%w: article.excerptLength must be between 0 and %d, got %d",
			ErrInvalidValue, MaxExcerptLength, n)
	}

	if m := c.Page.Margin; m != 0 && (m < MinMargin || m > MaxMargin) {
		return fmt.Errorf("%w: page.margin must be between %.2f and %.1f inches, got %.2f",
			ErrInvalidValue, MinMargin, MaxMargin, m)
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
		}
	}

	return nil
}

// TimeoutDuration returns the parsed timeout, or zero when unset or invalid.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every setting falls back to
// its built-in default.
func DefaultConfig() *Config {
	return &Config{}
}

// DefaultStorePath returns $XDG_DATA_HOME/blogmd/store.yaml, else
// ~/.local/share/blogmd/store.yaml, else ./blogmd-store.yaml.
func DefaultStorePath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" && filepath.IsAbs(dataHome) {
		return filepath.Join(dataHome, "blogmd", "store.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "blogmd", "store.yaml")
	}
	return "blogmd-store.yaml"
}

// ExpandHome replaces a leading "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
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
		configPath = ExpandHome(nameOrPath)
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

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <UserConfigDir>/go-blogmd/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
