package config

import "github.com/spf13/viper"

func setDefaults(v *viper.Viper) {
	v.SetDefault("home", ".swapd")

	// Server defaults
	v.SetDefault("server.listen_addr", "127.0.0.1:5005")
	v.SetDefault("server.snapshot_interval", 256)

	// Storage defaults
	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "state")
	v.SetDefault("storage.cache_size", 4096)
	v.SetDefault("storage.history_path", "history.db")

	// Genesis defaults: empty ledger, no admin
	v.SetDefault("genesis.admin", "")
	v.SetDefault("genesis.allocations", []map[string]any{})
}
