package cmd

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themerdev/themer/internal/render"
)

func lookupFlag(t *testing.T, flags *pflag.FlagSet, name string) *pflag.Flag {
	t.Helper()
	f := flags.Lookup(name)
	require.NotNil(t, f, "flag %q not defined", name)

	return f
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"render", "status", "watch", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestRenderFlags(t *testing.T) {
	force := lookupFlag(t, renderCmd.Flags(), "force")
	assert.Equal(t, "false", force.DefValue)
	assert.Equal(t, "f", force.Shorthand)

	dryRun := lookupFlag(t, renderCmd.Flags(), "dry-run")
	assert.Equal(t, "false", dryRun.DefValue)
	assert.Equal(t, "n", dryRun.Shorthand)
}

func TestStatusOutputFlag(t *testing.T) {
	output := lookupFlag(t, statusCmd.Flags(), "output")
	assert.Equal(t, "table", output.DefValue)
}

func TestWatchDebounceFlag(t *testing.T) {
	debounce := lookupFlag(t, watchCmd.Flags(), "debounce")
	assert.Equal(t, "300ms", debounce.DefValue)
}

func TestRootConfigFlag(t *testing.T) {
	flag := lookupFlag(t, rootCmd.PersistentFlags(), "config")
	assert.Equal(t, "", flag.DefValue)
	assert.Equal(t, "c", flag.Shorthand)
}

func TestRootLoggingFlags(t *testing.T) {
	level := lookupFlag(t, rootCmd.PersistentFlags(), "log-level")
	assert.Equal(t, "info", level.DefValue)

	format := lookupFlag(t, rootCmd.PersistentFlags(), "log-format")
	assert.Equal(t, "text", format.DefValue)
}

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	require.NoError(t, fn())
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestPrintReport(t *testing.T) {
	report := &render.Report{
		DryRun: true,
		Actions: []render.Action{
			{Path: "/p/render/app.conf", Theme: "forest", Scheme: "dark", Status: "stale", Decision: "write"},
		},
	}

	t.Run("table", func(t *testing.T) {
		out := captureStdout(t, func() error { return printReport(report, "table") })
		assert.Contains(t, out, "PATH")
		assert.Contains(t, out, "/p/render/app.conf")
		assert.Contains(t, out, "stale")
	})

	t.Run("json round-trips", func(t *testing.T) {
		out := captureStdout(t, func() error { return printReport(report, "json") })

		var decoded render.Report
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.True(t, decoded.DryRun)
		require.Len(t, decoded.Actions, 1)
		assert.Equal(t, "forest", decoded.Actions[0].Theme)
	})

	t.Run("yaml", func(t *testing.T) {
		out := captureStdout(t, func() error { return printReport(report, "yaml") })
		assert.Contains(t, out, "dry_run: true")
		assert.Contains(t, out, "scheme: dark")
	})
}
