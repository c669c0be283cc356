package types

// Theme is a named collection of schemes plus optional theme-level
// configuration. Only the names participate in JSON serialization: the theme
// hash recorded in the manifest covers identity, not the schemes (each scheme
// is hashed separately).
type Theme struct {
	Name      Name   `json:"theme"`
	NameASCII string `json:"theme_ascii"`

	// Dir is the theme's directory: the project root for monotheme
	// projects, a subdirectory of the themes dir otherwise.
	Dir string `json:"-"`

	Schemes []*Scheme    `json:"-"`
	Config  *ThemeConfig `json:"-"`
}

// ThemeConfig is the resolved per-theme override configuration. Paths are
// absolute by the time this struct exists.
type ThemeConfig struct {
	// Inherit places the theme's render output under the project-wide render
	// target instead of a theme-local directory.
	Inherit bool
	Dirs    ThemeDirs
}

// ThemeDirs holds the resolved per-theme directory layout.
type ThemeDirs struct {
	Schemes   string
	Templates string
	Render    string
}
