package blogmd

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-blogmd/internal/assets"
)

func TestThemes(t *testing.T) {
	t.Parallel()

	themes := Themes()
	for _, want := range []string{"light", "dark", "sepia", "night-mode", ThemeCustom} {
		if !slices.Contains(themes, want) {
			t.Errorf("Themes() missing %q: %v", want, themes)
		}
	}
	if slices.Contains(themes, assets.LayoutStyleName) {
		t.Error("Themes() should not list the layout stylesheet")
	}
	if themes[len(themes)-1] != ThemeCustom {
		t.Errorf("Themes() should end with %q", ThemeCustom)
	}
}

func TestEnginesAndHighlightStyles(t *testing.T) {
	t.Parallel()

	if got := Engines(); !slices.Equal(got, []string{EngineLite, EngineCommonMark}) {
		t.Errorf("Engines() = %v", got)
	}
	if !slices.Contains(HighlightStyles(), "github") {
		t.Error("HighlightStyles() missing github")
	}

	css, err := HighlightCSS("github")
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Error("HighlightCSS() should target .chroma")
	}
}

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		css, err := loader.LoadStyle("dark")
		if err != nil || !strings.Contains(css, "/* dark theme */") {
			t.Errorf("LoadStyle(dark) = %.30q, %v", css, err)
		}
		tmpl, err := loader.LoadTemplate(assets.ArticleTemplateName)
		if err != nil || !strings.Contains(tmpl, "article-content") {
			t.Errorf("LoadTemplate(article) = %.30q, %v", tmpl, err)
		}
	})

	t.Run("custom dir with fallback", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "ocean.css"), []byte("/* ocean */"), 0o600); err != nil {
			t.Fatal(err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		if css, err := loader.LoadStyle("ocean"); err != nil || css != "/* ocean */" {
			t.Errorf("LoadStyle(ocean) = %q, %v", css, err)
		}
		if _, err := loader.LoadStyle("sepia"); err != nil {
			t.Errorf("LoadStyle(sepia) should fall back to embedded: %v", err)
		}
	})

	t.Run("invalid dir", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestAssetLoader_PublicErrors(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		load    func() error
		wantErr error
		hidden  error
	}{
		{
			name:    "unknown style",
			load:    func() error { _, err := loader.LoadStyle("neon"); return err },
			wantErr: ErrThemeNotFound,
			hidden:  assets.ErrStyleNotFound,
		},
		{
			name:    "invalid style name",
			load:    func() error { _, err := loader.LoadStyle("../etc"); return err },
			wantErr: ErrThemeNotFound,
			hidden:  assets.ErrInvalidAssetName,
		},
		{
			name:    "unknown template",
			load:    func() error { _, err := loader.LoadTemplate("cover"); return err },
			wantErr: ErrTemplateNotFound,
			hidden:  assets.ErrTemplateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if errors.Is(err, tt.hidden) {
				t.Errorf("internal error %v should not leak", tt.hidden)
			}
		})
	}
}

func TestConvertAssetError_Passthrough(t *testing.T) {
	t.Parallel()

	if convertAssetError(nil) != nil {
		t.Error("nil should stay nil")
	}
	other := errors.New("disk on fire")
	if got := convertAssetError(other); got != other {
		t.Errorf("convertAssetError(other) = %v, want it unchanged", got)
	}
}
