package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-blogmd"
	"github.com/alnah/go-blogmd/internal/config"
)

// runThemes lists themes and engines, or prints theme and highlight CSS.
func runThemes(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var cssName, highlight, assetPath string
	var styles bool
	fs := newFlagSet("themes", env.Stdout, printThemesUsage)
	addCommonFlags(fs, &common)
	fs.StringVar(&cssName, "css", "", "print the CSS of a theme")
	fs.StringVar(&highlight, "highlight", "", "print the CSS of a highlight style")
	fs.BoolVar(&styles, "styles", false, "list highlight styles")
	fs.StringVar(&assetPath, "asset-path", "", "custom asset directory")

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 0, "no arguments"); err != nil {
		return err
	}

	switch {
	case cssName != "":
		if assetPath == "" {
			assetPath = loadEnvConfig().AssetPath
		}
		loader, err := blogmd.NewAssetLoader(config.ExpandHome(assetPath))
		if err != nil {
			return err
		}
		css, err := loader.LoadStyle(cssName)
		if err != nil {
			return err
		}
		fmt.Fprint(env.Stdout, css)
		return nil

	case highlight != "":
		css, err := blogmd.HighlightCSS(highlight)
		if err != nil {
			return err
		}
		fmt.Fprint(env.Stdout, css)
		return nil

	case styles:
		for _, s := range blogmd.HighlightStyles() {
			fmt.Fprintln(env.Stdout, s)
		}
		return nil
	}

	fmt.Fprintln(env.Stdout, "Themes:")
	for _, name := range blogmd.Themes() {
		marker := ""
		switch name {
		case blogmd.DefaultTheme:
			marker = " (default)"
		case blogmd.ThemeCustom:
			marker = " (requires --css)"
		}
		fmt.Fprintf(env.Stdout, "  %s%s\n", name, marker)
	}
	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, "Engines:")
	for _, name := range blogmd.Engines() {
		marker := ""
		if name == blogmd.EngineLite {
			marker = " (default)"
		}
		fmt.Fprintf(env.Stdout, "  %s%s\n", name, marker)
	}
	return nil
}
