package xmlscene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func TestLoadConfig_DefaultPathMissing(t *testing.T) {
	withHome(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_DefaultPathInHome(t *testing.T) {
	home := withHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".xmlimport.yaml"), []byte("debug: true\n"), 0644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "xmlimport", cfg.LogPrefix, "unset keys keep their defaults")
}

func TestLoadConfig_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.yaml")
	data := `
log_prefix: scene
lenient_transforms: true
keep_existing: true
snapshot_out: /tmp/out.json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogPrefix:         "scene",
		LenientTransforms: true,
		KeepExisting:      true,
		SnapshotOut:       "/tmp/out.json",
	}, cfg)
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: [unterminated\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{LenientTransforms: true, KeepExisting: true}
	logger := NewNopLogger()

	var o Options
	for _, fn := range cfg.Options(logger) {
		fn(&o)
	}
	assert.True(t, o.LenientTransforms)
	assert.True(t, o.KeepExisting)
	assert.Same(t, logger, o.Logger)
}
