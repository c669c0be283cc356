package render

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/themerdev/themer/internal/config"
	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/templates"
	"github.com/themerdev/themer/internal/types"
)

// Filename markers substituted when resolving a template's output path.
const (
	ThemeMarker  = "THEME"
	SchemeMarker = "SCHEME"
	SwatchMarker = "SWATCH"
)

// resolvePath computes the absolute output path for one render: the template
// suffix is stripped, markers in the filename are substituted, and the
// result is placed under the theme's render directory.
func resolvePath(theme *types.Theme, templateName, schemeName string, cfg *config.Config, swatchName string) (string, error) {
	relative := strings.TrimSuffix(templateName, templates.Suffix)

	filename := path.Base(relative)
	if filename == "." || filename == "/" || filename == "" {
		return "", errors.InternalBug("render", "attempted to render to corrupted path "+relative)
	}

	parentDirs := path.Dir(relative)
	if parentDirs == "." {
		parentDirs = ""
	}

	filename = strings.ReplaceAll(filename, ThemeMarker, theme.Name.String())
	filename = strings.ReplaceAll(filename, SchemeMarker, schemeName)
	if swatchName != "" {
		filename = strings.ReplaceAll(filename, SwatchMarker, swatchName)
	}

	return filepath.Join(renderDir(theme, cfg), filepath.FromSlash(parentDirs), filename), nil
}

// renderDir picks the base output directory for a theme. A theme-level
// config always wins; without one, monotheme projects use the shared render
// target when configured, and everything else falls back to a theme-local
// "render" directory.
func renderDir(theme *types.Theme, cfg *config.Config) string {
	if theme.Config != nil {
		return theme.Config.Dirs.Render
	}
	if cfg.Project.Type == config.Monotheme && cfg.Project.RenderAllInto != "" {
		return cfg.Project.RenderAllInto
	}

	return filepath.Join(theme.Dir, "render")
}
