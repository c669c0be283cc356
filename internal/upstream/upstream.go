// Package upstream detects the repository enclosing a generated file and
// turns that into provider-specific web links for the file's header. All of
// this is best-effort decoration: every failure collapses to "no annotation"
// and is logged, never propagated.
package upstream

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/themerdev/themer/internal/logging"
)

// Upstream describes the repository enclosing a path: its working-directory
// root, the origin remote URL, and the currently checked-out branch.
// Immutable once detected for a given root.
type Upstream struct {
	Root   string
	URL    string
	Branch string
}

// Special is the per-file upstream annotation exposed to templates. Both
// fields are nil when detection fails.
type Special struct {
	UpstreamFile *string `json:"upstream_file"`
	UpstreamRepo *string `json:"upstream_repo"`
}

// detector resolves remote URL and branch for a repository root. Swappable
// in tests so no real git repository is needed.
type detector func(ctx context.Context, root string) (*Upstream, error)

// Cache memoizes upstream detection per repository root. Detection shells
// out to git and repository metadata is stable for a run, so dozens of
// output files sharing one root cost one detection.
type Cache struct {
	logger logging.Logger
	roots  map[string]*Upstream
	detect detector
}

// NewCache creates an empty upstream cache.
func NewCache(logger logging.Logger) *Cache {
	return &Cache{
		logger: logger.WithComponent("upstream"),
		roots:  make(map[string]*Upstream),
		detect: detectRepo,
	}
}

// GetOrDetect returns the upstream for the repository enclosing path, or nil
// when the path does not exist, is not under any repository, or detection
// fails. The result is a copy; callers cannot mutate the cache.
func (c *Cache) GetOrDetect(ctx context.Context, path string) *Upstream {
	abs, err := filepath.Abs(path)
	if err != nil {
		c.logger.Warn(ctx, err, "failed to resolve path for upstream detection", "path", path)

		return nil
	}

	if _, err := os.Stat(abs); err != nil {
		c.logger.Warn(ctx, err, "failed to canonicalize render path; file may not exist yet", "path", abs)

		return nil
	}

	root, ok := findRepoRoot(abs)
	if !ok {
		c.logger.Debug(ctx, "path not under any repository", "path", abs)

		return nil
	}

	if cached, ok := c.roots[root]; ok {
		if cached == nil {
			return nil
		}
		clone := *cached

		return &clone
	}

	info, err := c.detect(ctx, root)
	if err != nil {
		c.logger.Warn(ctx, err, "failed to detect repository metadata", "root", root)
		c.roots[root] = nil

		return nil
	}

	c.roots[root] = info
	clone := *info

	return &clone
}

// RelPath relates path to the detected repository root, returning the
// forward-slashed repository-relative path. Failure degrades to absent.
func (c *Cache) RelPath(ctx context.Context, info *Upstream, path string) (string, bool) {
	rel, err := filepath.Rel(info.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		c.logger.Warn(ctx, err, "path not under repository root", "path", path, "root", info.Root)

		return "", false
	}

	return filepath.ToSlash(rel), true
}

// findRepoRoot walks from path toward the filesystem root looking for the
// nearest directory containing .git. Worktrees keep .git as a file, so any
// entry named .git counts.
func findRepoRoot(path string) (string, bool) {
	dir := path
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		dir = filepath.Dir(path)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
