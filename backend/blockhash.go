package backend

import (
	"context"
	"github.com/gagliardetto/solana-go"
)

// TxContext is the block reference a transaction is built against. The
// transaction is dead once the chain passes LastValidBlockHeight.
type TxContext struct {
	Blockhash            solana.Hash
	LastValidBlockHeight uint64
	Slot                 uint64
}

func (backend *Backend) RecentContext(ctx context.Context) (*TxContext, error) {
	result, err := backend.rpcClient.GetLatestBlockhash(ctx, backend.blockHashCommitment)
	if err != nil {
		return nil, unavailable(ctx, err, "get latest block hash")
	}
	txCtx := &TxContext{
		Blockhash:            result.Value.Blockhash,
		LastValidBlockHeight: result.Value.LastValidBlockHeight,
		Slot:                 result.Context.Slot,
	}
	backend.logger.Debugf("get recent block hash. (%s, %d, %d)", txCtx.Blockhash, txCtx.LastValidBlockHeight, txCtx.Slot)
	return txCtx, nil
}
