package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/layer-3/walletgate/config"
	"github.com/layer-3/walletgate/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	appConfig config.Config
	logger    *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "walletgate",
	Short: "Wallet connect gate and token-feed proxy",
	Long: `walletgate keeps content behind a browser wallet connection.

It serves the gate handle and the token-feed proxy over HTTP, runs an
interactive terminal demo of the gate, and inspects the stored session.

Configuration comes from an optional TOML file (--config or WALLETGATE_CONFIG)
and WALLETGATE_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			appConfig, err = config.LoadFile(configPath)
		} else {
			appConfig, err = config.Load()
		}
		if err != nil {
			return err
		}

		level := appConfig.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, appConfig.LogJSON)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file (default: $WALLETGATE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(sessionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
