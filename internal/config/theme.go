package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/types"
)

type rawThemeConfig struct {
	Inherit bool         `toml:"inherit"`
	Dirs    rawThemeDirs `toml:"dirs"`
}

type rawThemeDirs struct {
	Schemes   string `toml:"schemes"`
	Templates string `toml:"templates"`
	Render    string `toml:"render"`
}

// LoadThemeConfig loads the per-theme themer.toml from themeDir. A missing
// file is not an error: the theme simply has no override configuration and
// the caller falls back to project-level defaults.
//
// When inherit is set and the project declares a shared render target, the
// theme renders into <render_all_into>/<theme name>; otherwise rendering is
// theme-local.
func LoadThemeConfig(themeDir string, name types.Name, project *Config) (*types.ThemeConfig, error) {
	path := filepath.Join(themeDir, Filename)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrapf(errors.KindConfig, err, "failed to read theme config").WithPath(path)
	}

	raw := rawThemeConfig{
		Dirs: rawThemeDirs{Schemes: "schemes", Templates: "templates", Render: "render"},
	}
	if len(content) > 0 {
		if err := toml.Unmarshal(content, &raw); err != nil {
			return nil, errors.Wrapf(errors.KindConfig, err, "failed to parse theme config").WithPath(path)
		}
	}

	schemes, err := ExpandAndResolve(raw.Dirs.Schemes, themeDir)
	if err != nil {
		return nil, err
	}
	templates, err := ExpandAndResolve(raw.Dirs.Templates, themeDir)
	if err != nil {
		return nil, err
	}

	var render string
	if raw.Inherit && project.Project.RenderAllInto != "" {
		render = filepath.Join(project.Project.RenderAllInto, name.String())
	} else {
		render, err = ExpandAndResolve(raw.Dirs.Render, themeDir)
		if err != nil {
			return nil, err
		}
	}

	return &types.ThemeConfig{
		Inherit: raw.Inherit,
		Dirs: types.ThemeDirs{
			Schemes:   schemes,
			Templates: templates,
			Render:    render,
		},
	}, nil
}
