package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/provedex/goswapd/internal/config"
	"github.com/provedex/goswapd/internal/node"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the swapd daemon",
	Long: `Start the daemon: restore the ledger from the state store (or seed it
from the genesis section on first boot), then serve the JSON-RPC API and the
websocket event stream until interrupted.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().String("listen", "", "listen address (overrides config)")
}

func runStart(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.ListenAddr = listen
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	n, err := node.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return n.Run(ctx)
}
