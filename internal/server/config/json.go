package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/selfhostdash/internal/flagx"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"github.com/dmitrijs2005/selfhostdash/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations use timex.Duration so
// both "1m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC     string            `json:"endpoint_addr_grpc"`
	CredentialBackend    string            `json:"credential_backend"`
	DatabaseDSN          string            `json:"database_dsn"`
	RegistryBackend      string            `json:"registry_backend"`
	AppsDir              string            `json:"apps_dir"`
	IconsRoot            string            `json:"icons_root"`
	MockApps             []models.AppEntry `json:"mock_apps"`
	BootstrapOnly        bool              `json:"bootstrap_only"`
	SingleSession        bool              `json:"single_session"`
	SessionTTL           timex.Duration    `json:"session_ttl"`
	SessionSweepInterval timex.Duration    `json:"session_sweep_interval"`
	PasswordHasher       string            `json:"password_hasher"`
	StoreTimeout         timex.Duration    `json:"store_timeout"`
	RegistryTimeout      timex.Duration    `json:"registry_timeout"`
	LogBackend           string            `json:"log_backend"`
	LogLevel             string            `json:"log_level"`
}

// toJson seeds the DTO with the current values. MockApps is left nil so a
// file without mock_apps does not replace the list.
func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrGRPC:     c.EndpointAddrGRPC,
		CredentialBackend:    c.CredentialBackend,
		DatabaseDSN:          c.DatabaseDSN,
		RegistryBackend:      c.RegistryBackend,
		AppsDir:              c.AppsDir,
		IconsRoot:            c.IconsRoot,
		BootstrapOnly:        c.BootstrapOnly,
		SingleSession:        c.SingleSession,
		SessionTTL:           timex.Duration{Duration: c.SessionTTL},
		SessionSweepInterval: timex.Duration{Duration: c.SessionSweepInterval},
		PasswordHasher:       c.PasswordHasher,
		StoreTimeout:         timex.Duration{Duration: c.StoreTimeout},
		RegistryTimeout:      timex.Duration{Duration: c.RegistryTimeout},
		LogBackend:           c.LogBackend,
		LogLevel:             c.LogLevel,
	}
}

// parseJson overlays the JSON file named by -c/-config onto config. Keys
// missing from the file keep their current values. An unreadable or
// malformed file panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.ConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	// start from the current values so absent keys are left alone
	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.CredentialBackend = c.CredentialBackend
	config.DatabaseDSN = c.DatabaseDSN
	config.RegistryBackend = c.RegistryBackend
	config.AppsDir = c.AppsDir
	config.IconsRoot = c.IconsRoot
	if c.MockApps != nil {
		config.MockApps = c.MockApps
	}
	config.BootstrapOnly = c.BootstrapOnly
	config.SingleSession = c.SingleSession
	config.SessionTTL = c.SessionTTL.Duration
	config.SessionSweepInterval = c.SessionSweepInterval.Duration
	config.PasswordHasher = c.PasswordHasher
	config.StoreTimeout = c.StoreTimeout.Duration
	config.RegistryTimeout = c.RegistryTimeout.Duration
	config.LogBackend = c.LogBackend
	config.LogLevel = c.LogLevel
}
