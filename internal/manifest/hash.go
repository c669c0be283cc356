package manifest

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"

	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/types"
)

// Hash returns the lowercase hex BLAKE3-256 digest of data. The algorithm is
// not semantically load-bearing but must stay stable across runs and
// platforms: changing it invalidates every persisted manifest entry.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// HashString hashes the UTF-8 bytes of s.
func HashString(s string) string {
	return Hash([]byte(s))
}

// HashTheme hashes the stable JSON serialization of a theme's identity.
func HashTheme(theme *types.Theme) (string, error) {
	data, err := json.Marshal(theme)
	if err != nil {
		return "", errors.Wrap(errors.KindManifest, err, "failed to serialize theme for hashing")
	}

	return Hash(data), nil
}

// HashScheme hashes the stable JSON serialization of a resolved scheme.
func HashScheme(scheme *types.Scheme) (string, error) {
	data, err := json.Marshal(scheme)
	if err != nil {
		return "", errors.Wrap(errors.KindManifest, err, "failed to serialize scheme for hashing")
	}

	return Hash(data), nil
}
