// Package config loads the node configuration from defaults, an optional
// swapd.toml, and SWAPD_-prefixed environment variables, in that priority
// order.
package config

import (
	"path/filepath"

	"github.com/provedex/goswapd/internal/core/ledger"
)

// Config is the complete swapd configuration.
type Config struct {
	// Home is the node's data directory. Storage paths below resolve
	// relative to it.
	Home string `toml:"home" mapstructure:"home"`

	Server  ServerConfig  `toml:"server" mapstructure:"server"`
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`
	Genesis GenesisConfig `toml:"genesis" mapstructure:"genesis"`
}

// ServerConfig controls the JSON-RPC / websocket listener.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr" mapstructure:"listen_addr"`

	// SnapshotInterval is how many applied transactions pass between
	// automatic state flushes. Zero flushes only on shutdown.
	SnapshotInterval int `toml:"snapshot_interval" mapstructure:"snapshot_interval"`
}

// StorageConfig selects the kv backend and history database.
type StorageConfig struct {
	// Backend is one of the registered kvstore backends
	// ("pebble", "leveldb", "memory").
	Backend string `toml:"backend" mapstructure:"backend"`

	// Path of the kv store, relative to Home unless absolute.
	Path string `toml:"path" mapstructure:"path"`

	// CacheSize is the kv read cache capacity in entries.
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`

	// HistoryPath of the sqlite transaction index, relative to Home
	// unless absolute. Empty disables history.
	HistoryPath string `toml:"history_path" mapstructure:"history_path"`
}

// GenesisConfig is the operator-defined initial state, applied once when the
// node first boots with an empty store.
type GenesisConfig struct {
	Admin       string              `toml:"admin" mapstructure:"admin"`
	Allocations []ledger.Allocation `toml:"allocations" mapstructure:"allocations"`
}

// ToGenesis converts the config section into the ledger's genesis form.
func (g GenesisConfig) ToGenesis() ledger.Genesis {
	return ledger.Genesis{Admin: g.Admin, Allocations: g.Allocations}
}

// StorePath returns the kv store path resolved against Home.
func (c *Config) StorePath() string {
	return c.resolve(c.Storage.Path)
}

// HistoryPath returns the history database path resolved against Home,
// or "" when history is disabled.
func (c *Config) HistoryPath() string {
	if c.Storage.HistoryPath == "" {
		return ""
	}
	return c.resolve(c.Storage.HistoryPath)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Home, path)
}
