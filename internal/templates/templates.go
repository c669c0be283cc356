// Package templates loads the user's template tree and prepares each file
// for rendering: parsing the template body, stripping directive lines, and
// building the generated-file header from the configured directive markers.
package templates

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/themerdev/themer/internal/errors"
)

const (
	// Suffix distinguishes template files; it is stripped to produce the
	// output filename.
	Suffix = ".tmpl"
	// SkipPrefix excludes a template when any path segment starts with it.
	SkipPrefix = "_"
)

// Template is one loaded template file.
type Template struct {
	// Name is the templates-dir-relative path, forward-slashed, with the
	// suffix still attached.
	Name string
	// Source is the raw file content; it is the template hash input.
	Source string
	// Style holds per-template options set by directive lines.
	Style map[string]string

	compiled *template.Template
}

// Render executes the template against the given context. Missing context
// keys are errors, not silent blanks.
func (t *Template) Render(context map[string]any) (string, error) {
	var b strings.Builder
	if err := t.compiled.Execute(&b, context); err != nil {
		return "", errors.Wrapf(errors.KindTemplate, err, "rendering template %q", t.Name)
	}

	return b.String(), nil
}

// UsesSwatchIteration reports whether the template fans out per swatch,
// signaled by the SWATCH marker in its filename.
func (t *Template) UsesSwatchIteration() bool {
	return strings.Contains(filepath.Base(t.Name), "SWATCH")
}

// Eligible reports whether a template name takes part in rendering: names
// with any path segment starting with the skip prefix are excluded entirely.
func Eligible(name string) bool {
	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, SkipPrefix) {
			return false
		}
	}

	return true
}

// Loader holds the template tree for one directory.
type Loader struct {
	dir       string
	templates []*Template
}

// Load walks dir and parses every file carrying the template suffix,
// including ineligible ones (eligibility is a render-time decision so a
// skipped template can still be inspected). Templates are ordered by name so
// runs are deterministic regardless of directory iteration order.
func Load(dir string, directives *Directives) (*Loader, error) {
	loader := &Loader{dir: dir}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(errors.KindIO, err, "failed to walk templates directory").WithPath(path)
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Suffix) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return errors.InternalBug("templates", "template path escapes templates directory: "+path)
		}

		tmpl, err := load(filepath.ToSlash(rel), path, directives)
		if err != nil {
			return err
		}
		loader.templates = append(loader.templates, tmpl)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(loader.templates, func(i, j int) bool {
		return loader.templates[i].Name < loader.templates[j].Name
	})

	return loader, nil
}

// Dir returns the directory this loader was built from.
func (l *Loader) Dir() string {
	return l.dir
}

// Templates returns all loaded templates in name order.
func (l *Loader) Templates() []*Template {
	return l.templates
}

func load(name, path string, directives *Directives) (*Template, error) {
	source, err := readFile(path)
	if err != nil {
		return nil, err
	}

	body, style := directives.Strip(source)

	compiled, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, errors.Wrapf(errors.KindTemplate, err, "failed to parse template %q", name).WithPath(path)
	}

	return &Template{
		Name:     name,
		Source:   source,
		Style:    style,
		compiled: compiled,
	}, nil
}
