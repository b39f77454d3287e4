package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-blogmd/internal/config"
)

// envPrefix starts every environment variable blogmd reads.
const envPrefix = "BLOGMD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // BLOGMD_CONFIG: config file name or path
	StorePath  string        // BLOGMD_STORE: article store file
	Theme      string        // BLOGMD_THEME: theme name, CSS path or "custom"
	Timeout    time.Duration // BLOGMD_TIMEOUT: PDF generation timeout

	// Tier 2 - Output and identity
	OutputDir string // BLOGMD_OUTPUT_DIR: export directory
	Format    string // BLOGMD_FORMAT: html, pdf, both
	Author    string // BLOGMD_AUTHOR: default article author

	// Tier 3 - Extended
	Engine     string // BLOGMD_ENGINE: lite, commonmark
	AssetPath  string // BLOGMD_ASSET_PATH: custom styles/templates directory
	PageSize   string // BLOGMD_PAGE_SIZE: letter, a4, legal
	DateFormat string // BLOGMD_DATE_FORMAT: preset or token format
	Lang       string // BLOGMD_LANG: page language
	Workers    int    // BLOGMD_WORKERS: parallel export workers
}

// knownEnvVars lists valid BLOGMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"BLOGMD_CONFIG":  true,
	"BLOGMD_STORE":   true,
	"BLOGMD_THEME":   true,
	"BLOGMD_TIMEOUT": true,
	// Tier 2 - Output and identity
	"BLOGMD_OUTPUT_DIR": true,
	"BLOGMD_FORMAT":     true,
	"BLOGMD_AUTHOR":     true,
	// Tier 3 - Extended
	"BLOGMD_ENGINE":      true,
	"BLOGMD_ASSET_PATH":  true,
	"BLOGMD_PAGE_SIZE":   true,
	"BLOGMD_DATE_FORMAT": true,
	"BLOGMD_LANG":        true,
	"BLOGMD_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("BLOGMD_CONFIG"),
		StorePath:  os.Getenv("BLOGMD_STORE"),
		Theme:      os.Getenv("BLOGMD_THEME"),
		OutputDir:  os.Getenv("BLOGMD_OUTPUT_DIR"),
		Format:     os.Getenv("BLOGMD_FORMAT"),
		Author:     os.Getenv("BLOGMD_AUTHOR"),
		Engine:     os.Getenv("BLOGMD_ENGINE"),
		AssetPath:  os.Getenv("BLOGMD_ASSET_PATH"),
		PageSize:   os.Getenv("BLOGMD_PAGE_SIZE"),
		DateFormat: os.Getenv("BLOGMD_DATE_FORMAT"),
		Lang:       os.Getenv("BLOGMD_LANG"),
	}

	if timeout := os.Getenv("BLOGMD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("BLOGMD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized BLOGMD_* variables.
// Helps catch typos like BLOGMD_THEMES instead of BLOGMD_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfEmpty := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}

	setIfEmpty(&cfg.Store.Path, env.StorePath)
	setIfEmpty(&cfg.Theme.Name, env.Theme)
	if env.Timeout > 0 && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout.String()
	}

	setIfEmpty(&cfg.Output.DefaultDir, env.OutputDir)
	setIfEmpty(&cfg.Output.Format, env.Format)
	setIfEmpty(&cfg.Article.DefaultAuthor, env.Author)

	setIfEmpty(&cfg.Engine.Name, env.Engine)
	setIfEmpty(&cfg.Assets.BasePath, env.AssetPath)
	setIfEmpty(&cfg.Page.Size, env.PageSize)
	setIfEmpty(&cfg.Article.DateFormat, env.DateFormat)
	setIfEmpty(&cfg.Article.Lang, env.Lang)
}
