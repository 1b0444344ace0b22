package cmd

import (
	"fmt"
	"github.com/egaotan/solana-swap-offer/config"
	"github.com/egaotan/solana-swap-offer/statelisten"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"time"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration
	c := &cobra.Command{
		Use:   "watch",
		Short: "Print offers as they open and close",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return errors.Errorf("invalid interval %s, must be positive", interval)
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			out := cmd.OutOrStdout()
			notify := func(event *statelisten.Event) {
				offered := a.Tokens.Resolve(cmd.Context(), event.Offer.MintOffered)
				wanted := a.Tokens.Resolve(cmd.Context(), event.Offer.MintWanted)
				fmt.Fprintf(out, "%s %s  id %d  offers %s %s  wants %s %s\n", event.Kind, event.Offer.Address, event.Offer.Id,
					offered.AmountUi(event.Offer.AmountOffered), offered.Symbol,
					wanted.AmountUi(event.Offer.AmountWanted), wanted.Symbol)
			}
			log := utils.NewLog(a.Config().LogPath, config.WatchLog)
			sl := statelisten.NewStateListen(cmd.Context(), a.Program, interval, notify, log)
			sl.Start()
			sl.Wait()
			return nil
		},
	}
	c.Flags().DurationVar(&interval, "interval", statelisten.DefaultInterval, "rescan interval")
	return c
}
