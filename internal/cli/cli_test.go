package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModeDefaultsToStrict(t *testing.T) {
	saved := os.Args
	defer func() { os.Args = saved }()
	os.Args = []string{"lidrup-check", "proof.lidrup"}
	assert.Equal(t, "strict", resolveMode(""))
}

func TestResolveModeFallsBackToConfig(t *testing.T) {
	saved := os.Args
	defer func() { os.Args = saved }()
	os.Args = []string{"lidrup-check", "proof.lidrup"}
	assert.Equal(t, "pedantic", resolveMode("pedantic"))
}

func TestResolveModeLastFlagWins(t *testing.T) {
	saved := os.Args
	defer func() { os.Args = saved }()
	os.Args = []string{"lidrup-check", "--relaxed", "--strict", "--relaxed", "proof.lidrup"}
	assert.Equal(t, "relaxed", resolveMode("pedantic"))
}

func TestLoadConfigMissingDefaultIsNotAnError(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfigMissingExplicitIsAnError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"), true)
	require.Error(t, err)
}

func TestLoadConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lidrup-check.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: relaxed\nno-reuse: true\nverbose: 2\n"), 0o644))

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "relaxed", cfg.Mode)
	assert.True(t, cfg.NoReuse)
	assert.Equal(t, 2, cfg.Verbose)
}
