// Package cli defines the swapd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	homeDir    string
)

var rootCmd = &cobra.Command{
	Use:   "swapd",
	Short: "swapd - token ledger with a constant-product AMM",
	Long: `swapd is a single-node daemon maintaining a multi-token balance ledger
with admin-gated minting and constant-product liquidity pools. Transactions
are submitted over JSON-RPC and applied atomically, one at a time.`,
	Version: "0.1.0",
}

// Execute runs the command tree. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file path (swapd.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "data directory (overrides config)")
}
