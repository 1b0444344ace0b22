package cmd

import (
	"fmt"
	"github.com/egaotan/solana-swap-offer/orchestrator"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"io"
)

func newMakeCmd() *cobra.Command {
	var (
		offered       string
		wanted        string
		amountOffered uint64
		amountWanted  uint64
	)
	c := &cobra.Command{
		Use:   "make",
		Short: "Lock tokens in a new offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mintOffered, err := solana.PublicKeyFromBase58(offered)
			if err != nil {
				return errors.Wrapf(err, "invalid offered mint %s", offered)
			}
			mintWanted, err := solana.PublicKeyFromBase58(wanted)
			if err != nil {
				return errors.Wrapf(err, "invalid wanted mint %s", wanted)
			}
			id, err := requestedId(cmd)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			o, err := a.Orchestrator()
			if err != nil {
				return err
			}
			req := &orchestrator.MakeOfferRequest{
				MintOffered:   mintOffered,
				MintWanted:    mintWanted,
				AmountOffered: amountOffered,
				AmountWanted:  amountWanted,
				Id:            id,
			}
			receipt, err := o.MakeOffer(cmd.Context(), req)
			return printReceipt(cmd.OutOrStdout(), receipt, err)
		},
	}
	c.Flags().StringVar(&offered, "offered", "", "mint of the token offered")
	c.Flags().StringVar(&wanted, "wanted", "", "mint of the token wanted")
	c.Flags().Uint64Var(&amountOffered, "amount-offered", 0, "amount offered in base units")
	c.Flags().Uint64Var(&amountWanted, "amount-wanted", 0, "amount wanted in base units")
	c.Flags().Uint64("id", 0, "offer id, next session id when not set")
	_ = c.MarkFlagRequired("offered")
	_ = c.MarkFlagRequired("wanted")
	_ = c.MarkFlagRequired("amount-offered")
	_ = c.MarkFlagRequired("amount-wanted")
	return c
}

// requestedId is the --id flag when it was given, nil otherwise.
func requestedId(cmd *cobra.Command) (*uint64, error) {
	if !cmd.Flags().Changed("id") {
		return nil, nil
	}
	id, err := cmd.Flags().GetUint64("id")
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func newTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <offer>",
		Short: "Settle an open offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid offer %s", args[0])
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			offer, err := a.Offer(cmd.Context(), address)
			if err != nil {
				return err
			}
			o, err := a.Orchestrator()
			if err != nil {
				return err
			}
			receipt, err := o.TakeOffer(cmd.Context(), offer)
			return printReceipt(cmd.OutOrStdout(), receipt, err)
		},
	}
}

func printReceipt(w io.Writer, receipt *orchestrator.Receipt, err error) error {
	if receipt == nil {
		return err
	}
	fmt.Fprintf(w, "%s offer %s (id %d): %s\n", receipt.Action, receipt.Offer, receipt.Id, receipt.State)
	for i, signature := range receipt.Signatures {
		line := signature.String()
		if i < len(receipt.Explorer) {
			line = receipt.Explorer[i]
		}
		fmt.Fprintf(w, "  transaction: %s\n", line)
	}
	if errors.Is(err, orchestrator.ErrUnconfirmed) {
		fmt.Fprintln(w, "status unknown, check explorer")
		return nil
	}
	if err == nil && receipt.NextId != 0 {
		fmt.Fprintf(w, "next offer id: %d\n", receipt.NextId)
	}
	return err
}
