package swap

import (
	"context"
	"github.com/egaotan/solana-swap-offer/backend"
	"github.com/egaotan/solana-swap-offer/program"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"sync"
)

var (
	mintUsdc = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	mintUsdt = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
)

type fakeLedger struct {
	lock     sync.Mutex
	accounts map[solana.PublicKey]*backend.Account
	err      error
	calls    int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{accounts: make(map[solana.PublicKey]*backend.Account)}
}

func (l *fakeLedger) put(account *backend.Account) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.accounts[account.PubKey] = account
}

func (l *fakeLedger) putOffer(offer *Offer) {
	l.put(&backend.Account{PubKey: offer.Address, Owner: program.Swap, Data: offer.Encode()})
}

func (l *fakeLedger) ProgramAccountsBySize(ctx context.Context, programId solana.PublicKey, size uint64) ([]*backend.Account, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	accounts := make([]*backend.Account, 0)
	// map iteration order stands in for the node's unspecified order
	for _, account := range l.accounts {
		if uint64(len(account.Data)) == size {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (l *fakeLedger) AccountExists(ctx context.Context, address solana.PublicKey) (bool, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.err != nil {
		return false, l.err
	}
	_, ok := l.accounts[address]
	return ok, nil
}

var errTransport = errors.Wrap(backend.ErrGatewayUnavailable, "connection refused")

func mustOffer(maker solana.PublicKey, id uint64, offered, wanted solana.PublicKey, amountOffered, amountWanted uint64) *Offer {
	address, bump, err := DeriveOfferAddress(program.Swap, maker, id)
	if err != nil {
		panic(err)
	}
	return &Offer{
		Address: address,
		OfferLayout: OfferLayout{
			Id:            id,
			Maker:         maker,
			MintOffered:   offered,
			MintWanted:    wanted,
			AmountOffered: amountOffered,
			AmountWanted:  amountWanted,
			Bump:          bump,
		},
	}
}
