// Package themes discovers and loads themes and their schemes from the
// project tree. A theme is either the project itself (monotheme) or one
// subdirectory of the themes dir (polytheme); each theme contributes one or
// more resolved schemes, with an optional theme.toml base record merged
// underneath every per-scheme file.
package themes

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/themerdev/themer/internal/config"
	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/types"
)

// BaseFilename is the theme-level base record file.
const BaseFilename = "theme.toml"

// LoadAll discovers every theme for the project and loads it, in a stable
// order.
func LoadAll(cfg *config.Config) ([]*types.Theme, error) {
	discovered, err := discover(cfg)
	if err != nil {
		return nil, err
	}

	themes := make([]*types.Theme, 0, len(discovered))
	for _, d := range discovered {
		theme, err := Load(d.name, d.dir, cfg)
		if err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}

	return themes, nil
}

type discoveredTheme struct {
	name types.Name
	dir  string
}

func discover(cfg *config.Config) ([]discoveredTheme, error) {
	switch cfg.Project.Type {
	case config.Polytheme:
		entries, err := os.ReadDir(cfg.Dirs.Themes)
		if err != nil {
			return nil, errors.Wrap(errors.KindTheme, err, "failed to read themes directory").WithPath(cfg.Dirs.Themes)
		}

		var discovered []discoveredTheme
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name, err := types.ParseName("theme", entry.Name())
			if err != nil {
				return nil, errors.Wrap(errors.KindTheme, err, "invalid theme directory name").
					WithPath(filepath.Join(cfg.Dirs.Themes, entry.Name()))
			}
			discovered = append(discovered, discoveredTheme{
				name: name,
				dir:  filepath.Join(cfg.Dirs.Themes, entry.Name()),
			})
		}
		sort.Slice(discovered, func(i, j int) bool { return discovered[i].name < discovered[j].name })

		return discovered, nil

	default: // Monotheme: the project root is the single theme.
		name, err := types.ParseName("theme", filepath.Base(cfg.Project.Root))
		if err != nil {
			return nil, errors.Wrap(errors.KindTheme, err, "project root directory is not a valid theme name").
				WithPath(cfg.Project.Root)
		}

		return []discoveredTheme{{name: name, dir: cfg.Project.Root}}, nil
	}
}

// Load loads one theme from dir.
func Load(name types.Name, dir string, cfg *config.Config) (*types.Theme, error) {
	themeConfig, err := config.LoadThemeConfig(dir, name, cfg)
	if err != nil {
		return nil, err
	}

	schemesDir := cfg.Dirs.Schemes
	if themeConfig != nil {
		schemesDir = themeConfig.Dirs.Schemes
	}

	basePath := filepath.Join(dir, BaseFilename)
	base, baseASCII, err := loadBase(basePath)
	if err != nil {
		return nil, err
	}

	nameASCII := name.ASCII()
	if baseASCII != "" {
		nameASCII = baseASCII
	}

	var schemes []*types.Scheme
	if info, statErr := os.Stat(schemesDir); statErr == nil && info.IsDir() {
		schemes, err = loadSchemes(schemesDir, base)
	} else if base != nil {
		var scheme *types.Scheme
		scheme, err = base.IntoScheme(name.String())
		if scheme != nil {
			schemes = []*types.Scheme{scheme}
		}
	} else {
		return nil, errors.Newf(errors.KindTheme,
			"theme %q has neither a %s nor a schemes directory (%s)", name, BaseFilename, schemesDir)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.KindScheme, err, "loading schemes for theme %q", name)
	}

	return &types.Theme{
		Name:      name,
		NameASCII: nameASCII,
		Dir:       dir,
		Schemes:   schemes,
		Config:    themeConfig,
	}, nil
}

// loadBase reads the theme base record. A missing file is fine: multi-scheme
// themes without shared defaults simply have no base.
func loadBase(path string) (*types.RawScheme, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", nil
		}

		return nil, "", errors.Wrap(errors.KindTheme, err, "failed to read theme file").WithPath(path)
	}

	var raw types.RawScheme
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, "", errors.Wrap(errors.KindTheme, err, "failed to parse theme file").WithPath(path)
	}

	// name_ascii sits outside the scheme record, so it gets its own pass.
	var extra struct {
		NameASCII string `toml:"name_ascii"`
	}
	if err := toml.Unmarshal(content, &extra); err != nil {
		return nil, "", errors.Wrap(errors.KindTheme, err, "failed to parse theme file").WithPath(path)
	}

	return &raw, extra.NameASCII, nil
}

// loadSchemes loads every top-level .toml file in dir as a scheme, merging
// the theme base record (when present) underneath each.
func loadSchemes(dir string, base *types.RawScheme) ([]*types.Scheme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.KindScheme, err, "failed to read schemes directory").WithPath(dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	schemes := make([]*types.Scheme, 0, len(names))
	for _, fileName := range names {
		path := filepath.Join(dir, fileName)

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.KindScheme, err, "failed to read scheme file").WithPath(path)
		}

		var raw types.RawScheme
		if err := toml.Unmarshal(content, &raw); err != nil {
			return nil, errors.Wrap(errors.KindScheme, err, "failed to parse scheme file").WithPath(path)
		}

		if base != nil {
			raw = raw.Merge(*base)
		}

		stem := strings.TrimSuffix(fileName, ".toml")
		scheme, err := raw.IntoScheme(stem)
		if err != nil {
			return nil, errors.Wrap(errors.KindScheme, err, "invalid scheme").WithPath(path)
		}

		schemes = append(schemes, scheme)
	}

	return schemes, nil
}
