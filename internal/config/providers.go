package config

import "github.com/themerdev/themer/internal/merge"

// Provider describes a source-hosting service: its host name plus URL path
// templates with {host}, {owner}, {repo}, {ref}, {file} placeholders. Host is
// the identity key; a user-supplied provider with a known host overrides only
// the fields it sets.
type Provider struct {
	Host     string  `mapstructure:"host"`
	BlobPath *string `mapstructure:"blob_path"`
	RawPath  *string `mapstructure:"raw_path"`
	Branch   *string `mapstructure:"branch"`
}

// Merge combines p over base field-wise. Host is never merged: p's host is
// authoritative since it is the lookup key.
func (p Provider) Merge(base Provider) Provider {
	return Provider{
		Host:     p.Host,
		BlobPath: merge.Optional(p.BlobPath, base.BlobPath),
		RawPath:  merge.Optional(p.RawPath, base.RawPath),
		Branch:   merge.Optional(p.Branch, base.Branch),
	}
}

func strptr(s string) *string {
	return &s
}

// DefaultProviders returns the four built-in providers in their canonical
// order.
func DefaultProviders() []Provider {
	return []Provider{
		{
			Host:     "github.com",
			BlobPath: strptr("{host}/{owner}/{repo}/blob/{ref}/{file}"),
			RawPath:  strptr("raw.githubusercontent.com/{owner}/{repo}/{ref}/{file}"),
		},
		{
			Host:     "gitlab.com",
			BlobPath: strptr("{host}/{owner}/{repo}/-/blob/{ref}/{file}"),
			RawPath:  strptr("{host}/{owner}/{repo}/-/raw/{ref}/{file}"),
		},
		{
			Host:     "codeberg.org",
			BlobPath: strptr("{host}/{owner}/{repo}/src/branch/{ref}/{file}"),
			RawPath:  strptr("{host}/{owner}/{repo}/raw/branch/{ref}/{file}"),
		},
		{
			Host:     "bitbucket.org",
			BlobPath: strptr("{host}/{owner}/{repo}/src/{ref}/{file}"),
			RawPath:  strptr("{host}/{owner}/{repo}/raw/{ref}/{file}"),
		},
	}
}

// MergeProvidersWithDefaults merges user-supplied providers over the built-in
// table. Built-ins keep their order; user providers with a known host merge
// into the built-in entry in place, unknown hosts append in user order.
func MergeProvidersWithDefaults(userProviders []Provider) []Provider {
	providers := DefaultProviders()
	index := make(map[string]int, len(providers))
	for i, p := range providers {
		index[p.Host] = i
	}

	for _, user := range userProviders {
		if i, ok := index[user.Host]; ok {
			providers[i] = user.Merge(providers[i])
			continue
		}
		index[user.Host] = len(providers)
		providers = append(providers, user)
	}

	return providers
}

// FindProvider returns the provider entry matching host.
func FindProvider(providers []Provider, host string) (Provider, bool) {
	for _, p := range providers {
		if p.Host == host {
			return p, true
		}
	}

	return Provider{}, false
}
