package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-blogmd"
	"github.com/alnah/go-blogmd/internal/config"
	"github.com/alnah/go-blogmd/internal/fileutil"
	"github.com/alnah/go-blogmd/internal/hints"
	"github.com/alnah/go-blogmd/internal/store"
)

// loadSettings builds the configuration of one command run: config file,
// then BLOGMD_* variables for fields the file left empty, then --store.
// Command-specific flags are applied by the caller.
func loadSettings(f commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	if !f.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			err = fmt.Errorf("loading config: %w", err)
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, withHint(err, hints.ForConfigNotFound(configCandidates(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if f.store != "" {
		cfg.Store.Path = f.store
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configCandidates lists where a config name is looked up, for hints.
func configCandidates(name string) []string {
	if strings.ContainsAny(name, "/\\") {
		return []string{name}
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-blogmd", name+".yaml"))
	}
	return paths
}

// applyConverterFlags overrides config values with explicitly set flags.
func applyConverterFlags(f converterFlags, cfg *config.Config) {
	override(&cfg.Theme.Name, f.theme)
	override(&cfg.Theme.CSS, f.css)
	override(&cfg.Engine.Name, f.engine)
	override(&cfg.Engine.HighlightStyle, f.highlight)
	override(&cfg.Assets.BasePath, f.assetPath)
	override(&cfg.Timeout, f.timeout)
}

// applyPageFlags overrides page config values with explicitly set flags.
func applyPageFlags(f pageFlags, cfg *config.Config) {
	override(&cfg.Page.Size, f.size)
	override(&cfg.Page.Orientation, f.orientation)
	if f.margin != 0 {
		cfg.Page.Margin = f.margin
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// converterOptions maps the configuration to converter options. Empty
// values keep the converter defaults.
func converterOptions(cfg *config.Config) []blogmd.Option {
	opts := []blogmd.Option{
		blogmd.WithTheme(config.ExpandHome(cfg.Theme.Name)),
		blogmd.WithAssetPath(config.ExpandHome(cfg.Assets.BasePath)),
		blogmd.WithDateFormat(cfg.Article.DateFormat),
		blogmd.WithLang(cfg.Article.Lang),
	}
	opts = append(opts, estimateOptions(cfg)...)
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, blogmd.WithTimeout(d))
	}
	return opts
}

// estimateOptions are the options that affect the rendered text, and so
// the derived read time and excerpt. Themes play no part.
func estimateOptions(cfg *config.Config) []blogmd.Option {
	opts := []blogmd.Option{
		blogmd.WithEngine(cfg.Engine.Name),
		blogmd.WithHighlightStyle(cfg.Engine.HighlightStyle),
		blogmd.WithWordsPerMinute(cfg.Article.WordsPerMinute),
	}
	if cfg.Article.ExcerptLength > 0 {
		opts = append(opts, blogmd.WithExcerptLength(cfg.Article.ExcerptLength))
	}
	return opts
}

// userCSS reads the extra stylesheet named by theme.css.
func userCSS(cfg *config.Config) (string, error) {
	if cfg.Theme.CSS == "" {
		return "", nil
	}
	path := config.ExpandHome(cfg.Theme.CSS)
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

// pageSettings fills unset page values with the defaults and validates.
func pageSettings(cfg *config.Config) (*blogmd.PageSettings, error) {
	page := blogmd.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// storePath resolves the configured store file.
func storePath(cfg *config.Config) string {
	if cfg.Store.Path == "" {
		return config.DefaultStorePath()
	}
	return config.ExpandHome(cfg.Store.Path)
}

// openRepository opens the article store. Unreadable keys are reported on
// stderr and read as empty.
func openRepository(cfg *config.Config, env *Environment) (*store.Repository, error) {
	path := storePath(cfg)
	s, err := store.Open(path)
	if err != nil {
		if errors.Is(err, store.ErrCorruptStore) {
			return nil, withHint(err, hints.ForStoreCorrupt(path))
		}
		return nil, err
	}
	return store.NewRepository(s, store.WithWarnings(env.Stderr), store.WithClock(env.Now)), nil
}

// estimate derives the read time and excerpt of Markdown content the way
// article pages do. Blank content yields empty values.
func estimate(ctx context.Context, env *Environment, cfg *config.Config, content string) (readTime, excerpt string, err error) {
	if strings.TrimSpace(content) == "" {
		return "", "", nil
	}
	res, err := convertOne(ctx, env, estimateOptions(cfg), blogmd.Input{Markdown: content, HTMLOnly: true})
	if err != nil {
		return "", "", fmt.Errorf("estimating read time: %w", err)
	}
	return res.ReadTime, res.Excerpt, nil
}

// ensureDir creates an output directory.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil {
		return withHint(fmt.Errorf("%w: %v", ErrWriteOutput, err), hints.ForOutputDirectory())
	}
	return nil
}
