package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/upstream"
)

func newDirectives(t *testing.T) *Directives {
	t.Helper()
	d, err := NewDirectives([][]string{{"#:"}})
	require.NoError(t, err)

	return d
}

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, source := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	}

	return dir
}

func TestEligible(t *testing.T) {
	assert.True(t, Eligible("app.conf.tmpl"))
	assert.True(t, Eligible("wezterm/colors/SCHEME.lua.tmpl"))
	assert.False(t, Eligible("_draft.conf.tmpl"))
	assert.False(t, Eligible("_partials/x.tmpl"))
	assert.False(t, Eligible("nested/_hidden/x.tmpl"))
}

func TestUsesSwatchIteration(t *testing.T) {
	assert.True(t, (&Template{Name: "SWATCH.css.tmpl"}).UsesSwatchIteration())
	assert.True(t, (&Template{Name: "colors/SWATCH-dark.css.tmpl"}).UsesSwatchIteration())
	assert.False(t, (&Template{Name: "SWATCH/app.conf.tmpl"}).UsesSwatchIteration(),
		"marker in a parent dir does not fan out")
	assert.False(t, (&Template{Name: "app.conf.tmpl"}).UsesSwatchIteration())
}

func TestLoad(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"b.conf.tmpl":        "b={{ .scheme }}\n",
		"a.conf.tmpl":        "a={{ .scheme }}\n",
		"_skipped.conf.tmpl": "ineligible but still loaded\n",
		"notes.txt":          "not a template\n",
		"sub/c.conf.tmpl":    "c\n",
	})

	loader, err := Load(dir, newDirectives(t))
	require.NoError(t, err)
	assert.Equal(t, dir, loader.Dir())

	names := make([]string, 0)
	for _, tmpl := range loader.Templates() {
		names = append(names, tmpl.Name)
	}
	assert.Equal(t, []string{"_skipped.conf.tmpl", "a.conf.tmpl", "b.conf.tmpl", "sub/c.conf.tmpl"}, names)
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"broken.conf.tmpl": "{{ .scheme\n",
	})

	_, err := Load(dir, newDirectives(t))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindTemplate))
}

func TestRender(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"app.conf.tmpl": "scheme={{ .scheme }}\n",
	})
	loader, err := Load(dir, newDirectives(t))
	require.NoError(t, err)
	tmpl := loader.Templates()[0]

	t.Run("renders with context", func(t *testing.T) {
		out, err := tmpl.Render(map[string]any{"scheme": "dark"})
		require.NoError(t, err)
		assert.Equal(t, "scheme=dark\n", out)
	})

	t.Run("missing key is an error", func(t *testing.T) {
		_, err := tmpl.Render(map[string]any{})
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindTemplate))
	})
}

func TestStrip(t *testing.T) {
	d := newDirectives(t)

	t.Run("directive lines removed, style collected", func(t *testing.T) {
		body, style := d.Strip("#: mode compact\nline one\n  #: flag\nline two\n")

		assert.Equal(t, "line one\nline two\n", body)
		assert.Equal(t, map[string]string{"mode": "compact", "flag": ""}, style)
	})

	t.Run("source kept as hash input", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"app.conf.tmpl": "#: mode compact\nbody\n",
		})
		loader, err := Load(dir, d)
		require.NoError(t, err)

		tmpl := loader.Templates()[0]
		assert.Equal(t, "#: mode compact\nbody\n", tmpl.Source)
		assert.Equal(t, "compact", tmpl.Style["mode"])
	})

	t.Run("suffix markers", func(t *testing.T) {
		d, err := NewDirectives([][]string{{"<!--", "-->"}})
		require.NoError(t, err)

		body, style := d.Strip("<!-- mode wide -->\n<p>kept</p>\n")
		assert.Equal(t, "<p>kept</p>\n", body)
		assert.Equal(t, map[string]string{"mode": "wide"}, style)
	})
}

func TestNewDirectivesValidation(t *testing.T) {
	_, err := NewDirectives(nil)
	assert.True(t, errors.IsKind(err, errors.KindConfig))

	_, err = NewDirectives([][]string{{""}})
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}

func TestMakeHeader(t *testing.T) {
	d := newDirectives(t)

	t.Run("without upstream", func(t *testing.T) {
		header := d.MakeHeader("/out/app.conf", &upstream.Special{})
		assert.Equal(t, "#: generated by themer; do not edit by hand\n", header)
	})

	t.Run("with upstream", func(t *testing.T) {
		url := "gitlab.com/acme/theme/-/blob/main/out/x.conf"
		header := d.MakeHeader("/out/x.conf", &upstream.Special{UpstreamFile: &url})
		assert.Equal(t,
			"#: generated by themer; do not edit by hand\n#: upstream: gitlab.com/acme/theme/-/blob/main/out/x.conf\n",
			header)
	})

	t.Run("suffix comment syntax", func(t *testing.T) {
		d, err := NewDirectives([][]string{{"/*", "*/"}})
		require.NoError(t, err)

		header := d.MakeHeader("/out/app.css", nil)
		assert.Equal(t, "/* generated by themer; do not edit by hand */\n", header)
	})
}
