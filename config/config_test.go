package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BUNKEN_DB", "BUNKEN_LISTEN", "BUNKEN_LOOKUP_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DBPath, ".bunken")
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 15*time.Second, cfg.LookupTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BUNKEN_DB", "/tmp/test.db")
	t.Setenv("BUNKEN_LISTEN", ":9999")
	t.Setenv("CINII_APP_ID", "my-app")
	t.Setenv("BUNKEN_LOOKUP_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, "my-app", cfg.CiNiiAppID)
	assert.Equal(t, 30*time.Second, cfg.LookupTimeout)
}
