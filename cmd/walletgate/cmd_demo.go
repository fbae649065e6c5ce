package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/layer-3/walletgate/adapters/events"
	"github.com/layer-3/walletgate/adapters/provider"
	"github.com/layer-3/walletgate/adapters/store"
	"github.com/layer-3/walletgate/adapters/surface/tui"
	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/service"
)

var (
	demoSolflareAfter time.Duration
	demoExtended      bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the gate in the terminal with simulated wallets",
	Long: `Runs the gate against simulated wallets: Phantom approves every prompt,
Solflare appears late and rejects every other prompt, and MetaMask is only
present when eth_rpc_url points at a JSON-RPC node.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().DurationVar(&demoSolflareAfter, "solflare-after", 3*time.Second, "Delay before the simulated Solflare wallet is injected")
	demoCmd.Flags().BoolVar(&demoExtended, "extended", false, "Use the long-loading variant without silent resume")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := appConfig.Gate()
	if demoExtended {
		cfg = service.ExtendedConfig()
	}

	registry := provider.NewRegistry()
	registry.SetPhantom(&demoPhantom{key: "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"})
	if appConfig.EthRPCURL != "" {
		eth, err := provider.DialEthereum(ctx, appConfig.EthRPCURL)
		if err != nil {
			return err
		}
		defer eth.Close()
		registry.SetEthereum(eth)
	}

	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	view := tui.NewSurface()
	gate := service.NewGate(
		cfg,
		registry,
		store.NewMemoryStore(),
		events.NewWatermillPublisher(bus),
		view,
		service.WithLogger(logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))),
	)
	defer gate.Stop()

	p := tea.NewProgram(tui.NewModel(ctx, gate, core.WalletTypes))
	go view.Pump(ctx, p)

	go func() {
		select {
		case <-time.After(demoSolflareAfter):
			registry.SetSolflare(&demoSolflare{key: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"})
		case <-ctx.Done():
		}
	}()

	gate.Start(ctx)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	if conn, ok := gate.Connection(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "connected with %s %s\n", conn.Type.DisplayName(), conn.Address)
	}
	return nil
}
