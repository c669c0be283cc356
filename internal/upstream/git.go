package upstream

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// detectRepo reads remote URL and current branch for root via the git CLI.
// All commands target the repository with -C so the process working
// directory never matters.
func detectRepo(ctx context.Context, root string) (*Upstream, error) {
	url, err := runGit(ctx, root, "remote", "get-url", "origin")
	if err != nil {
		return nil, fmt.Errorf("reading origin remote: %w", err)
	}

	branch, err := runGit(ctx, root, "branch", "--show-current")
	if err != nil {
		return nil, fmt.Errorf("reading current branch: %w", err)
	}
	if branch == "" {
		// Detached HEAD: fall back to the commit hash so links still pin
		// the content that was rendered.
		branch, err = runGit(ctx, root, "rev-parse", "--short", "HEAD")
		if err != nil {
			return nil, fmt.Errorf("resolving detached HEAD: %w", err)
		}
	}

	return &Upstream{Root: root, URL: url, Branch: branch}, nil
}

// runGit executes a git command targeting root and returns trimmed stdout.
// Stderr is captured separately and included in error messages on failure.
func runGit(ctx context.Context, root string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", root}, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), root, err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
