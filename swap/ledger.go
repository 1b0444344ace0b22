package swap

import (
	"context"
	"github.com/egaotan/solana-swap-offer/backend"
	"github.com/gagliardetto/solana-go"
)

// Ledger is the part of the gateway the program client reads through.
type Ledger interface {
	ProgramAccountsBySize(ctx context.Context, programId solana.PublicKey, size uint64) ([]*backend.Account, error)
	AccountExists(ctx context.Context, address solana.PublicKey) (bool, error)
}
