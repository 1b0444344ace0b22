package cmd

import (
	"fmt"
	"github.com/egaotan/solana-swap-offer/metadata"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"io"
)

func newListCmd() *cobra.Command {
	var maker string
	c := &cobra.Command{
		Use:   "list",
		Short: "List open offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			var offers []*swap.Offer
			if maker != "" {
				key, err := solana.PublicKeyFromBase58(maker)
				if err != nil {
					return errors.Wrapf(err, "invalid maker %s", maker)
				}
				offers, err = a.Program.ListOffersByMaker(cmd.Context(), key)
				if err != nil {
					return err
				}
			} else {
				offers, err = a.Program.ListOpenOffers(cmd.Context())
				if err != nil {
					return err
				}
			}
			resolve := func(mint solana.PublicKey) *metadata.Token {
				return a.Tokens.Resolve(cmd.Context(), mint)
			}
			printOffers(cmd.OutOrStdout(), offers, resolve)
			return nil
		},
	}
	c.Flags().StringVar(&maker, "maker", "", "only offers made by this wallet")
	return c
}

func printOffers(w io.Writer, offers []*swap.Offer, resolve func(mint solana.PublicKey) *metadata.Token) {
	if len(offers) == 0 {
		fmt.Fprintln(w, "no open offers")
		return
	}
	for _, offer := range offers {
		offered := resolve(offer.MintOffered)
		wanted := resolve(offer.MintWanted)
		fmt.Fprintf(w, "%s  id %d  maker %s  offers %s %s  wants %s %s\n",
			offer.Address, offer.Id, offer.Maker,
			offered.AmountUi(offer.AmountOffered), offered.Symbol,
			wanted.AmountUi(offer.AmountWanted), wanted.Symbol)
	}
}
