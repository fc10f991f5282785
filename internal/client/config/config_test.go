package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"gymtrack"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:7979", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "gymtrack.db", cfg.LocalDBPath)
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_url": "http://gym.example.com",
		"request_timeout": "30s"
	}`), 0o600))
	withArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "http://gym.example.com", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "gymtrack.db", cfg.LocalDBPath)
}

func TestLoadConfig_FlagsWinOverJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url": "http://from-json"}`), 0o600))
	withArgs(t, "-c", path, "-a", "http://from-flag", "-t", "5", "-d", "other.db")

	cfg := LoadConfig()
	assert.Equal(t, "http://from-flag", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "other.db", cfg.LocalDBPath)
}
