package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themerdev/themer/internal/config"
	"github.com/themerdev/themer/internal/types"
)

func TestResolvePath(t *testing.T) {
	cfg := &config.Config{Project: config.ResolvedProject{Type: config.Polytheme, Root: "/proj"}}
	theme := &types.Theme{Name: "forest", NameASCII: "forest", Dir: "/proj/themes/forest"}

	t.Run("markers substitute into the filename", func(t *testing.T) {
		got, err := resolvePath(theme, "THEME-SCHEME.conf.tmpl", "dark", cfg, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/proj/themes/forest/render", "forest-dark.conf"), got)
	})

	t.Run("parent dirs carry over", func(t *testing.T) {
		got, err := resolvePath(theme, "wezterm/colors/SCHEME.lua.tmpl", "dark", cfg, "")
		require.NoError(t, err)
		assert.Equal(t,
			filepath.Join("/proj/themes/forest/render", "wezterm", "colors", "dark.lua"), got)
	})

	t.Run("markers in parent dirs are left alone", func(t *testing.T) {
		got, err := resolvePath(theme, "SCHEME/out.conf.tmpl", "dark", cfg, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/proj/themes/forest/render", "SCHEME", "out.conf"), got)
	})

	t.Run("swatch marker only substitutes when fanning out", func(t *testing.T) {
		got, err := resolvePath(theme, "SWATCH.css.tmpl", "dark", cfg, "accent")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/proj/themes/forest/render", "accent.css"), got)

		got, err = resolvePath(theme, "SWATCH.css.tmpl", "dark", cfg, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/proj/themes/forest/render", "SWATCH.css"), got)
	})
}

func TestRenderDir(t *testing.T) {
	t.Run("theme config wins", func(t *testing.T) {
		theme := &types.Theme{
			Dir:    "/proj/themes/forest",
			Config: &types.ThemeConfig{Dirs: types.ThemeDirs{Render: "/custom/render"}},
		}
		cfg := &config.Config{Project: config.ResolvedProject{
			Type: config.Monotheme, RenderAllInto: "/shared",
		}}

		assert.Equal(t, "/custom/render", renderDir(theme, cfg))
	})

	t.Run("monotheme uses shared render target", func(t *testing.T) {
		theme := &types.Theme{Dir: "/proj"}
		cfg := &config.Config{Project: config.ResolvedProject{
			Type: config.Monotheme, RenderAllInto: "/shared",
		}}

		assert.Equal(t, "/shared", renderDir(theme, cfg))
	})

	t.Run("falls back to theme-local render dir", func(t *testing.T) {
		theme := &types.Theme{Dir: "/proj/themes/forest"}
		cfg := &config.Config{Project: config.ResolvedProject{Type: config.Polytheme}}

		assert.Equal(t, filepath.Join("/proj/themes/forest", "render"), renderDir(theme, cfg))
	})
}
