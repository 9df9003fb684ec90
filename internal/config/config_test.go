package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, ".swapd", cfg.Home)
	require.Equal(t, "127.0.0.1:5005", cfg.Server.ListenAddr)
	require.Equal(t, 256, cfg.Server.SnapshotInterval)
	require.Equal(t, "pebble", cfg.Storage.Backend)
	require.Equal(t, 4096, cfg.Storage.CacheSize)
	require.Empty(t, cfg.Genesis.Admin)
	require.NoError(t, Validate(cfg))
}

func TestLoadFromFile(t *testing.T) {
	alice := strings.Repeat("aa", 20)
	content := `
home = "/var/lib/swapd"

[server]
listen_addr = "0.0.0.0:9090"

[storage]
backend = "leveldb"
path = "data"

[genesis]
admin = "` + alice + `"

[[genesis.allocations]]
token = 5
account = "` + alice + `"
amount = 10000
`
	path := filepath.Join(t.TempDir(), "swapd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9090", cfg.Server.ListenAddr)
	require.Equal(t, "leveldb", cfg.Storage.Backend)
	require.Equal(t, alice, cfg.Genesis.Admin)
	require.Len(t, cfg.Genesis.Allocations, 1)
	require.Equal(t, uint64(10000), cfg.Genesis.Allocations[0].Amount)

	// Paths resolve against home.
	require.Equal(t, filepath.Join("/var/lib/swapd", "data"), cfg.StorePath())
	require.Equal(t, filepath.Join("/var/lib/swapd", "history.db"), cfg.HistoryPath())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SWAPD_SERVER_LISTEN_ADDR", "127.0.0.1:7777")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7777", cfg.Server.ListenAddr)
}

func TestValidateRejectsBadValues(t *testing.T) {
	mutate := func(fn func(*Config)) *Config {
		cfg := Default()
		fn(cfg)
		return cfg
	}

	cases := []struct {
		name string
		cfg  *Config
	}{
		{"empty home", mutate(func(c *Config) { c.Home = "" })},
		{"bad listen addr", mutate(func(c *Config) { c.Server.ListenAddr = "nope" })},
		{"negative snapshot interval", mutate(func(c *Config) { c.Server.SnapshotInterval = -1 })},
		{"unknown backend", mutate(func(c *Config) { c.Storage.Backend = "flatfile" })},
		{"missing store path", mutate(func(c *Config) { c.Storage.Path = "" })},
		{"bad admin", mutate(func(c *Config) { c.Genesis.Admin = "zz" })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, Validate(tc.cfg))
		})
	}
}

func TestHistoryDisabled(t *testing.T) {
	cfg := Default()
	cfg.Storage.HistoryPath = ""
	require.Empty(t, cfg.HistoryPath())
}
