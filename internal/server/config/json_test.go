package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_grpc":     "www.example:9000",
		"credential_backend":     "sqlite",
		"database_dsn":           "dash.db",
		"registry_backend":       "fs",
		"apps_dir":               "/srv/apps",
		"icons_root":             "/srv/icons",
		"mock_apps":              []map[string]string{{"id": "calc", "display_name": "Calc", "launch_target": "c"}},
		"bootstrap_only":         false,
		"single_session":         true,
		"session_ttl":            "1h",
		"session_sweep_interval": 60000000000,
		"password_hasher":        "bcrypt",
		"store_timeout":          "3s",
		"registry_timeout":       "500ms",
		"log_backend":            "zerolog",
		"log_level":              "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, BackendSQLite, cfg.CredentialBackend)
		assert.Equal(t, "dash.db", cfg.DatabaseDSN)
		assert.Equal(t, BackendFS, cfg.RegistryBackend)
		assert.Equal(t, "/srv/apps", cfg.AppsDir)
		assert.Equal(t, "/srv/icons", cfg.IconsRoot)
		assert.Equal(t, []models.AppEntry{{ID: "calc", DisplayName: "Calc", LaunchTarget: "c"}}, cfg.MockApps)
		assert.False(t, cfg.BootstrapOnly)
		assert.True(t, cfg.SingleSession)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
		assert.Equal(t, "bcrypt", cfg.PasswordHasher)
		assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
		assert.Equal(t, 500*time.Millisecond, cfg.RegistryTimeout)
		assert.Equal(t, "zerolog", cfg.LogBackend)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"credential_backend": "postgres",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		var want Config
		want.LoadDefaults()
		want.CredentialBackend = BackendPostgres
		assert.Equal(t, &want, cfg)
	})

	t.Run("no config flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", ":1"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("bad duration panics", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "bad.json", map[string]any{"session_ttl": "forever"})
		os.Args = []string{"testbin", "-c", bad}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}
