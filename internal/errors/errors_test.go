package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		err := New(KindConfig, "missing required field")
		assert.Equal(t, "config error: missing required field", err.Error())
	})

	t.Run("with path", func(t *testing.T) {
		err := Newf(KindScheme, "unknown swatch %q", "accent").WithPath("/p/dark.toml")
		assert.Equal(t, `scheme error: unknown swatch "accent" (/p/dark.toml)`, err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		err := Wrap(KindManifest, fs.ErrPermission, "failed to read manifest")
		assert.Equal(t, "manifest error: failed to read manifest: permission denied", err.Error())
	})

	t.Run("internal bug", func(t *testing.T) {
		err := InternalBug("render", "context missing scheme variable")
		assert.Equal(t, "internal error in render: context missing scheme variable! this is a bug", err.Error())
	})
}

func TestUnwrap(t *testing.T) {
	cause := fs.ErrNotExist
	err := Wrapf(KindIO, cause, "failed to read %s", "x.toml")

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIsKind(t *testing.T) {
	err := New(KindTemplate, "bad syntax")

	assert.True(t, IsKind(err, KindTemplate))
	assert.False(t, IsKind(err, KindConfig))
	assert.False(t, IsKind(fs.ErrNotExist, KindTemplate))

	t.Run("through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("loading schemes: %w", err)
		assert.True(t, IsKind(wrapped, KindTemplate))
	})

	t.Run("outer kind wins over the cause's", func(t *testing.T) {
		wrapped := Wrap(KindScheme, err, "invalid scheme")
		require.True(t, IsKind(wrapped, KindScheme))
		assert.False(t, IsKind(wrapped, KindTemplate))
	})
}
