package config

import (
	"encoding/hex"
	"fmt"
	"net"

	"github.com/provedex/goswapd/internal/storage/kvstore"
)

// Validate checks the configuration for values the node cannot start with.
func Validate(cfg *Config) error {
	if cfg.Home == "" {
		return fmt.Errorf("home directory must be set")
	}

	if _, _, err := net.SplitHostPort(cfg.Server.ListenAddr); err != nil {
		return fmt.Errorf("server.listen_addr %q: %w", cfg.Server.ListenAddr, err)
	}
	if cfg.Server.SnapshotInterval < 0 {
		return fmt.Errorf("server.snapshot_interval must not be negative")
	}

	backends := kvstore.AvailableBackends()
	if !contains(backends, cfg.Storage.Backend) {
		return fmt.Errorf("storage.backend %q: must be one of %v", cfg.Storage.Backend, backends)
	}
	if cfg.Storage.Backend != "memory" && cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set for backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.CacheSize < 0 {
		return fmt.Errorf("storage.cache_size must not be negative")
	}

	if cfg.Genesis.Admin != "" {
		if err := validAccountHex(cfg.Genesis.Admin); err != nil {
			return fmt.Errorf("genesis.admin: %w", err)
		}
	}
	for i, alloc := range cfg.Genesis.Allocations {
		if alloc.Token == 0 {
			return fmt.Errorf("genesis.allocations[%d]: token id 0 is reserved", i)
		}
		if alloc.Amount == 0 {
			return fmt.Errorf("genesis.allocations[%d]: zero amount", i)
		}
		if err := validAccountHex(alloc.Account); err != nil {
			return fmt.Errorf("genesis.allocations[%d]: %w", i, err)
		}
	}
	return nil
}

func validAccountHex(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("account %q is not hex", s)
	}
	if len(raw) != 20 {
		return fmt.Errorf("account %q must be 20 bytes, got %d", s, len(raw))
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
