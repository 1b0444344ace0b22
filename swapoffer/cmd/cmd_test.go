package cmd

import (
	"bytes"
	"context"
	"github.com/egaotan/solana-swap-offer/metadata"
	"github.com/egaotan/solana-swap-offer/orchestrator"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPrintReceipt(t *testing.T) {
	var out bytes.Buffer
	receipt := &orchestrator.Receipt{
		Action:     swap.ActionMake,
		Offer:      solana.NewWallet().PublicKey(),
		Id:         42,
		Signatures: []solana.Signature{{1}},
		Explorer:   []string{"https://explorer.solana.com/tx/abc?cluster=devnet"},
		State:      orchestrator.Settled,
		NextId:     43,
	}
	require.NoError(t, printReceipt(&out, receipt, nil))
	assert.Contains(t, out.String(), "settled")
	assert.Contains(t, out.String(), "https://explorer.solana.com/tx/abc?cluster=devnet")
	assert.Contains(t, out.String(), "next offer id: 43")
}

func TestPrintReceipt_Unconfirmed(t *testing.T) {
	var out bytes.Buffer
	receipt := &orchestrator.Receipt{
		Action:     swap.ActionTake,
		Signatures: []solana.Signature{{1}},
		State:      orchestrator.Unconfirmed,
	}
	err := printReceipt(&out, receipt, errors.Wrap(orchestrator.ErrUnconfirmed, "block height exceeded"))
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "status unknown, check explorer")
	assert.Contains(t, out.String(), solana.Signature{1}.String())
}

func TestPrintReceipt_Failed(t *testing.T) {
	var out bytes.Buffer
	receipt := &orchestrator.Receipt{Action: swap.ActionTake, State: orchestrator.Failed}
	err := printReceipt(&out, receipt, swap.ErrOfferAlreadyClosed)
	assert.ErrorIs(t, err, swap.ErrOfferAlreadyClosed)
	assert.NotContains(t, out.String(), "next offer id")
}

func TestPrintOffers(t *testing.T) {
	var out bytes.Buffer
	printOffers(&out, nil, nil)
	assert.Equal(t, "no open offers\n", out.String())

	out.Reset()
	offer := &swap.Offer{
		Address: solana.NewWallet().PublicKey(),
		OfferLayout: swap.OfferLayout{
			Id:            7,
			Maker:         solana.NewWallet().PublicKey(),
			MintOffered:   solana.NewWallet().PublicKey(),
			MintWanted:    solana.NewWallet().PublicKey(),
			AmountOffered: 2_500_000,
			AmountWanted:  3,
		},
	}
	resolve := func(mint solana.PublicKey) *metadata.Token {
		if mint == offer.MintOffered {
			return &metadata.Token{Symbol: "USDC", Decimals: 6}
		}
		return &metadata.Token{Symbol: "RAW", Decimals: 0}
	}
	printOffers(&out, []*swap.Offer{offer}, resolve)
	assert.Contains(t, out.String(), "offers 2.5 USDC")
	assert.Contains(t, out.String(), "wants 3 RAW")
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "make", "take", "serve", "watch"}, names)
}

func TestWatch_RejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []string{"--interval=0", "--interval=-5s"} {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{"watch", interval, "--conf", "does-not-exist.json"})
		err := root.ExecuteContext(context.Background())
		require.Error(t, err, interval)
		assert.Contains(t, err.Error(), "invalid interval")
	}
}

func TestMake_RequestedId(t *testing.T) {
	c := newMakeCmd()
	require.NoError(t, c.ParseFlags([]string{}))
	id, err := requestedId(c)
	require.NoError(t, err)
	assert.Nil(t, id)

	c = newMakeCmd()
	require.NoError(t, c.ParseFlags([]string{"--id", "18446744073709551615"}))
	id, err = requestedId(c)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, uint64(18446744073709551615), *id)

	c = newMakeCmd()
	require.NoError(t, c.ParseFlags([]string{"--id", "0"}))
	id, err = requestedId(c)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, uint64(0), *id)

	c = newMakeCmd()
	assert.Error(t, c.ParseFlags([]string{"--id=-1"}))
}
