package upstream

import (
	"fmt"
	"strings"

	"github.com/themerdev/themer/internal/config"
)

// Remote is a parsed git remote URL.
type Remote struct {
	Host  string
	Owner string
	Repo  string
}

// ParseRemote parses the common remote URL shapes: https://, ssh://,
// git://, and the scp-like git@host:owner/repo form. A trailing .git is
// stripped from the repository name.
func ParseRemote(raw string) (Remote, error) {
	rest := raw

	switch {
	case strings.HasPrefix(rest, "https://"):
		rest = strings.TrimPrefix(rest, "https://")
	case strings.HasPrefix(rest, "http://"):
		rest = strings.TrimPrefix(rest, "http://")
	case strings.HasPrefix(rest, "ssh://"):
		rest = strings.TrimPrefix(rest, "ssh://")
	case strings.HasPrefix(rest, "git://"):
		rest = strings.TrimPrefix(rest, "git://")
	case strings.Contains(rest, "@") && strings.Contains(rest, ":") && !strings.Contains(rest, "/:"):
		// scp-like: git@host:owner/repo.git
		rest = strings.Replace(rest, ":", "/", 1)
	}

	if at := strings.Index(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) < 3 {
		return Remote{}, fmt.Errorf("remote URL %q does not have host/owner/repo form", raw)
	}

	host := parts[0]
	if colon := strings.Index(host, ":"); colon >= 0 {
		host = host[:colon]
	}
	if host == "" {
		return Remote{}, fmt.Errorf("remote URL %q has no host", raw)
	}

	repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
	owner := strings.Join(parts[1:len(parts)-1], "/")

	if owner == "" || repo == "" {
		return Remote{}, fmt.Errorf("remote URL %q has no owner/repo", raw)
	}

	return Remote{Host: host, Owner: owner, Repo: repo}, nil
}

// Links are the rendered per-file URLs for a provider.
type Links struct {
	// File is the browsable blob URL for the generated file.
	File string
	// Repo is the canonical repository URL; nil when the provider defines
	// no raw path template.
	Repo *string
}

// BuildLinks resolves the provider matching the remote's host and
// substitutes the {host} {owner} {repo} {ref} {file} placeholders. branch is
// the detected branch; a provider-level branch pin overrides it.
func BuildLinks(remote Remote, filePath, branch string, providers []config.Provider) (Links, error) {
	provider, ok := config.FindProvider(providers, remote.Host)
	if !ok {
		return Links{}, fmt.Errorf("no provider configured for host %q", remote.Host)
	}
	if provider.BlobPath == nil {
		return Links{}, fmt.Errorf("provider %q has no blob path template", remote.Host)
	}

	ref := branch
	if provider.Branch != nil && *provider.Branch != "" {
		ref = *provider.Branch
	}

	replacer := strings.NewReplacer(
		"{host}", remote.Host,
		"{owner}", remote.Owner,
		"{repo}", remote.Repo,
		"{ref}", ref,
		"{file}", filePath,
	)

	links := Links{File: replacer.Replace(*provider.BlobPath)}

	if provider.RawPath != nil {
		repo := fmt.Sprintf("%s/%s/%s", remote.Host, remote.Owner, remote.Repo)
		links.Repo = &repo
	}

	return links, nil
}
