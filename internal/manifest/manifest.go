// Package manifest persists the record of what themer generated from what.
// Each output path maps to an Entry holding four content hashes: the written
// bytes and the three inputs (theme, scheme, template source) they were
// produced from. Comparing live hashes against a stored entry classifies an
// output as not tracked, unchanged, stale, or modified by hand.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/types"
)

const (
	// Filename is the manifest file name under StateDir.
	Filename = "index.json"
	// StateDir is the project-root-relative directory holding themer state.
	StateDir = ".themer"
	// Version is the manifest format version. A persisted manifest with any
	// other version fails to load; there is no silent migration.
	Version = 1
)

// FileStatus classifies a candidate output file against the manifest. It is
// recomputed every run and never persisted.
type FileStatus int

const (
	// NotTracked means the manifest has no entry for the path.
	NotTracked FileStatus = iota
	// Unchanged means the on-disk file and all inputs match the entry.
	Unchanged
	// Stale means the on-disk file matches what was last written but at
	// least one input changed, so regeneration is safe.
	Stale
	// Modified means the on-disk file no longer matches what was last
	// written: someone edited it outside themer.
	Modified
)

// String returns the string representation of the status.
func (s FileStatus) String() string {
	switch s {
	case NotTracked:
		return "not tracked"
	case Unchanged:
		return "unchanged"
	case Stale:
		return "stale"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Entry records one generated file and the hashes that produced it.
// RenderHash matches the on-disk bytes at the moment the entry was written;
// it legitimately drifts if a human edits the file afterward.
type Entry struct {
	Path         string `json:"path"`
	Theme        string `json:"theme"`
	Scheme       string `json:"scheme"`
	Template     string `json:"template"`
	RenderHash   string `json:"render_hash"`
	ThemeHash    string `json:"theme_hash"`
	SchemeHash   string `json:"scheme_hash"`
	TemplateHash string `json:"template_hash"`
}

// Manifest is the in-memory index, keyed by output path. One entry per path;
// inserting an existing path replaces the entry in place.
type Manifest struct {
	path    string
	entries map[string]int
	order   []Entry
}

type envelope struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Load reads the manifest for the given project root. A missing file yields
// an empty manifest; a version mismatch or unparsable file is a hard error.
func Load(projectRoot string) (*Manifest, error) {
	path := filepath.Join(projectRoot, StateDir, Filename)

	m := &Manifest{
		path:    path,
		entries: make(map[string]int),
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}

		return nil, errors.Wrap(errors.KindManifest, err, "failed to read manifest").WithPath(path)
	}

	var env envelope
	if err := json.Unmarshal(content, &env); err != nil {
		return nil, errors.Wrap(errors.KindManifest, err, "failed to parse manifest").WithPath(path)
	}
	if env.Version != Version {
		return nil, errors.Newf(errors.KindManifest,
			"manifest version %d does not match supported version %d", env.Version, Version).WithPath(path)
	}

	for _, entry := range env.Entries {
		m.Insert(entry)
	}

	return m, nil
}

// Save writes the manifest atomically: the new content lands in a temporary
// file in the same directory and replaces the old manifest with a rename, so
// a crash mid-save leaves the previous version readable.
func (m *Manifest) Save() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.KindManifest, err, "failed to create state directory").WithPath(dir)
	}

	data, err := json.MarshalIndent(envelope{Version: Version, Entries: m.order}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.KindManifest, err, "failed to serialize manifest")
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, Filename+".tmp-*")
	if err != nil {
		return errors.Wrap(errors.KindManifest, err, "failed to create temporary manifest").WithPath(dir)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return errors.Wrap(errors.KindManifest, err, "failed to write manifest").WithPath(tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return errors.Wrap(errors.KindManifest, err, "failed to close manifest").WithPath(tmp.Name())
	}

	if err := os.Rename(tmp.Name(), m.path); err != nil {
		os.Remove(tmp.Name())

		return errors.Wrap(errors.KindManifest, err, "failed to replace manifest").WithPath(m.path)
	}

	return nil
}

// Path returns the on-disk location of the manifest file.
func (m *Manifest) Path() string {
	return m.path
}

// Get returns the entry for an output path.
func (m *Manifest) Get(path string) (Entry, bool) {
	i, ok := m.entries[path]
	if !ok {
		return Entry{}, false
	}

	return m.order[i], true
}

// Insert adds or replaces the entry for entry.Path.
func (m *Manifest) Insert(entry Entry) {
	if i, ok := m.entries[entry.Path]; ok {
		m.order[i] = entry

		return
	}

	m.entries[entry.Path] = len(m.order)
	m.order = append(m.order, entry)
}

// Len returns the number of tracked output paths.
func (m *Manifest) Len() int {
	return len(m.order)
}

// Check classifies the output at path against the manifest given the
// currently resolved theme, scheme, and template source.
func (m *Manifest) Check(path string, theme *types.Theme, scheme *types.Scheme, templateSource string) (FileStatus, error) {
	entry, ok := m.Get(path)
	if !ok {
		return NotTracked, nil
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// A tracked file that vanished counts the same as one whose
			// bytes no longer match: something happened outside themer.
			return Modified, nil
		}

		return 0, errors.Wrap(errors.KindIO, err, "failed to read tracked file").WithPath(path)
	}

	if Hash(onDisk) != entry.RenderHash {
		return Modified, nil
	}

	themeHash, err := HashTheme(theme)
	if err != nil {
		return 0, err
	}
	schemeHash, err := HashScheme(scheme)
	if err != nil {
		return 0, err
	}

	if themeHash != entry.ThemeHash ||
		schemeHash != entry.SchemeHash ||
		HashString(templateSource) != entry.TemplateHash {
		return Stale, nil
	}

	return Unchanged, nil
}

// CreateEntry builds a fresh entry from the four live hashes. content must be
// the post-write file bytes (after any formatting step) so RenderHash always
// reflects exactly what is on disk.
func CreateEntry(path string, theme *types.Theme, scheme *types.Scheme, templateName, templateSource string, content []byte) (Entry, error) {
	themeHash, err := HashTheme(theme)
	if err != nil {
		return Entry{}, err
	}
	schemeHash, err := HashScheme(scheme)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Path:         path,
		Theme:        theme.Name.String(),
		Scheme:       scheme.Name.String(),
		Template:     templateName,
		RenderHash:   Hash(content),
		ThemeHash:    themeHash,
		SchemeHash:   schemeHash,
		TemplateHash: HashString(templateSource),
	}, nil
}
