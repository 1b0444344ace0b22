package program

import (
	"context"
	"github.com/gagliardetto/solana-go"
)

var (
	Swap            = solana.MustPublicKeyFromBase58("GSYCrqvf4xw2mP4DdYbPwKsNiKfnhhTSyv8p7h1SX28R")
	Token           = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedToken = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	System          = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
)

// Signer is the wallet boundary. Implementations sign in place and never hand
// key material to the caller.
type Signer interface {
	PublicKey() solana.PublicKey
	SignTransaction(ctx context.Context, tx *solana.Transaction) error
}
