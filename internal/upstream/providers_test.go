package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themerdev/themer/internal/config"
)

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Remote
	}{
		{"https", "https://github.com/acme/theme.git",
			Remote{Host: "github.com", Owner: "acme", Repo: "theme"}},
		{"https without .git", "https://gitlab.com/acme/theme",
			Remote{Host: "gitlab.com", Owner: "acme", Repo: "theme"}},
		{"scp-like", "git@github.com:acme/theme.git",
			Remote{Host: "github.com", Owner: "acme", Repo: "theme"}},
		{"ssh with user", "ssh://git@codeberg.org/acme/theme.git",
			Remote{Host: "codeberg.org", Owner: "acme", Repo: "theme"}},
		{"ssh with port", "ssh://git@git.example.org:2222/acme/theme.git",
			Remote{Host: "git.example.org", Owner: "acme", Repo: "theme"}},
		{"nested group", "https://gitlab.com/acme/infra/theme.git",
			Remote{Host: "gitlab.com", Owner: "acme/infra", Repo: "theme"}},
		{"git protocol", "git://github.com/acme/theme.git",
			Remote{Host: "github.com", Owner: "acme", Repo: "theme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRemote(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects url without owner/repo", func(t *testing.T) {
		_, err := ParseRemote("https://github.com/just-owner")
		assert.Error(t, err)
	})
}

func TestBuildLinks(t *testing.T) {
	providers := config.MergeProvidersWithDefaults(nil)

	t.Run("gitlab blob url", func(t *testing.T) {
		remote := Remote{Host: "gitlab.com", Owner: "acme", Repo: "theme"}

		links, err := BuildLinks(remote, "out/x.conf", "main", providers)
		require.NoError(t, err)
		assert.Equal(t, "gitlab.com/acme/theme/-/blob/main/out/x.conf", links.File)
		require.NotNil(t, links.Repo)
		assert.Equal(t, "gitlab.com/acme/theme", *links.Repo)
	})

	t.Run("github raw host differs from blob host", func(t *testing.T) {
		remote := Remote{Host: "github.com", Owner: "acme", Repo: "theme"}

		links, err := BuildLinks(remote, "render/app.conf", "trunk", providers)
		require.NoError(t, err)
		assert.Equal(t, "github.com/acme/theme/blob/trunk/render/app.conf", links.File)
	})

	t.Run("provider branch pin overrides detected branch", func(t *testing.T) {
		pinned := config.MergeProvidersWithDefaults([]config.Provider{
			{Host: "github.com", Branch: strptr("stable")},
		})
		remote := Remote{Host: "github.com", Owner: "acme", Repo: "theme"}

		links, err := BuildLinks(remote, "x.conf", "feature-branch", pinned)
		require.NoError(t, err)
		assert.Equal(t, "github.com/acme/theme/blob/stable/x.conf", links.File)
	})

	t.Run("unknown host is an error", func(t *testing.T) {
		_, err := BuildLinks(Remote{Host: "forge.example.org", Owner: "a", Repo: "b"}, "x", "main", providers)
		assert.ErrorContains(t, err, "no provider configured")
	})

	t.Run("no raw path means no repo link", func(t *testing.T) {
		custom := []config.Provider{{
			Host:     "forge.example.org",
			BlobPath: strptr("{host}/{owner}/{repo}/tree/{ref}/{file}"),
		}}
		remote := Remote{Host: "forge.example.org", Owner: "acme", Repo: "theme"}

		links, err := BuildLinks(remote, "x.conf", "main", custom)
		require.NoError(t, err)
		assert.Equal(t, "forge.example.org/acme/theme/tree/main/x.conf", links.File)
		assert.Nil(t, links.Repo)
	})
}

func strptr(s string) *string {
	return &s
}
