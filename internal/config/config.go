// Package config loads and resolves themer's layered configuration: the
// project-level themer.toml discovered by ancestor search, and per-theme
// override files of the same name.
//
// The project file is read through viper so values can be overridden with
// THEMER_-prefixed environment variables. All path-valued fields support
// shell-style expansion ($VAR, ${VAR}, leading ~) and are resolved to
// absolute paths against the project root before anything else sees them;
// the process working directory is never changed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/themerdev/themer/internal/errors"
)

// Filename is the fixed name of both the project and per-theme config files.
const Filename = "themer.toml"

// ProjectType distinguishes single-theme from multi-theme project layouts.
type ProjectType int

const (
	// Monotheme projects are themselves one theme, named after the root dir.
	Monotheme ProjectType = iota
	// Polytheme projects hold one theme per subdirectory of the themes dir.
	Polytheme
)

// String returns the string representation of the project type.
func (t ProjectType) String() string {
	if t == Polytheme {
		return "polytheme"
	}

	return "monotheme"
}

// Config is the fully resolved project configuration.
type Config struct {
	// StripDirectives is an ordered list of directive marker token lists.
	// Each entry is [prefix] or [prefix, suffix] and doubles as the comment
	// syntax for generated-file headers.
	StripDirectives [][]string

	Project   ResolvedProject
	Dirs      ResolvedDirs
	Providers []Provider

	// FormatCommand is an optional shell command run on each file after it
	// is written (e.g. a formatter). The file path is appended as the last
	// argument.
	FormatCommand []string
}

// ResolvedProject describes project topology with absolute paths.
type ResolvedProject struct {
	Type ProjectType
	// RenderAllInto is the shared render target for inheriting themes.
	// Empty when unset.
	RenderAllInto string
	Root          string
}

// ResolvedDirs holds the absolute project-level directory layout.
type ResolvedDirs struct {
	Themes    string
	Schemes   string
	Templates string
}

type rawConfig struct {
	StripDirectives [][]string  `mapstructure:"strip_directives"`
	Project         *rawProject `mapstructure:"project"`
	Dirs            rawDirs     `mapstructure:"dirs"`
	Providers       []Provider  `mapstructure:"provider"`
	FormatCommand   []string    `mapstructure:"format_command"`
}

type rawProject struct {
	Polytheme     bool   `mapstructure:"polytheme"`
	RenderAllInto string `mapstructure:"render_all_into"`
}

type rawDirs struct {
	Themes    string `mapstructure:"themes"`
	Schemes   string `mapstructure:"schemes"`
	Templates string `mapstructure:"templates"`
}

// Load discovers the project root starting from startDir and loads the
// resolved project configuration.
func Load(startDir string) (*Config, error) {
	root, err := FindProjectRoot(startDir)
	if err != nil {
		return nil, err
	}

	return LoadAt(root)
}

// LoadAt loads the project configuration from an already known project root.
func LoadAt(root string) (*Config, error) {
	path := filepath.Join(root, Filename)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("THEMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(errors.KindConfig, err, "failed to read %s", Filename).WithPath(path)
	}

	raw := rawConfig{
		StripDirectives: [][]string{{"#:"}},
		Dirs:            rawDirs{Themes: "themes", Schemes: "schemes", Templates: "templates"},
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, errors.Wrapf(errors.KindConfig, err, "failed to parse %s", Filename).WithPath(path)
	}

	for i, markers := range raw.StripDirectives {
		if len(markers) == 0 || markers[0] == "" {
			return nil, errors.Newf(errors.KindConfig,
				"strip_directives entry %d must have a non-empty prefix marker", i).WithPath(path)
		}
	}

	projectType := Monotheme
	if raw.Project != nil && raw.Project.Polytheme {
		projectType = Polytheme
	}

	renderAllInto := ""
	if raw.Project != nil && raw.Project.RenderAllInto != "" {
		resolved, err := ExpandAndResolve(raw.Project.RenderAllInto, root)
		if err != nil {
			return nil, err
		}
		renderAllInto = resolved
	}

	themes, err := ExpandAndResolve(raw.Dirs.Themes, root)
	if err != nil {
		return nil, err
	}
	schemes, err := ExpandAndResolve(raw.Dirs.Schemes, root)
	if err != nil {
		return nil, err
	}
	templates, err := ExpandAndResolve(raw.Dirs.Templates, root)
	if err != nil {
		return nil, err
	}

	return &Config{
		StripDirectives: raw.StripDirectives,
		Project: ResolvedProject{
			Type:          projectType,
			RenderAllInto: renderAllInto,
			Root:          root,
		},
		Dirs: ResolvedDirs{
			Themes:    themes,
			Schemes:   schemes,
			Templates: templates,
		},
		Providers:     MergeProvidersWithDefaults(raw.Providers),
		FormatCommand: raw.FormatCommand,
	}, nil
}

// FindProjectRoot walks from startDir toward the filesystem root and returns
// the first directory containing a themer.toml.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrapf(errors.KindConfig, err, "failed to resolve start directory %q", startDir)
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, Filename)); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf(errors.KindConfig,
				"failed to find %s in %s or any parent directory", Filename, startDir)
		}
		dir = parent
	}
}

// ExpandAndResolve applies shell-style expansion to path and, when the
// result is relative, resolves it against root.
func ExpandAndResolve(path, root string) (string, error) {
	expanded, err := expand(path)
	if err != nil {
		return "", errors.Wrapf(errors.KindConfig, err, "failed to expand path %q", path)
	}

	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}

	return filepath.Join(root, expanded), nil
}

// expand substitutes environment variables and a leading tilde.
func expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		path = home + path[1:]
	}

	return os.ExpandEnv(path), nil
}
