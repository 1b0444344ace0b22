package cmd

import (
	"context"
	"github.com/egaotan/solana-swap-offer/app"
	"github.com/egaotan/solana-swap-offer/config"
	"github.com/spf13/cobra"
)

var configFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "swapoffer",
		Short:         "Make, list and take token swap offers on Solana",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (json)")
	root.AddCommand(newListCmd(), newMakeCmd(), newTakeCmd(), newServeCmd(), newWatchCmd())
	return root
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return app.NewApp(cmd.Context(), cfg)
}
