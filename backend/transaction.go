package backend

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/pkg/errors"
	"strings"
)

// BuildTransaction lays out ins against txCtx with payer as fee payer. The
// result is unsigned.
func BuildTransaction(ins []solana.Instruction, payer solana.PublicKey, txCtx *TxContext) (*solana.Transaction, error) {
	return solana.NewTransaction(ins, txCtx.Blockhash, solana.TransactionPayer(payer))
}

// SubmitSigned sends raw signed transaction bytes. A returned signature only
// means the node accepted the bytes, not that the transaction landed.
func (backend *Backend) SubmitSigned(ctx context.Context, raw []byte) (solana.Signature, error) {
	signature, err := backend.rpcClient.SendRawTransactionWithOpts(ctx, raw, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: backend.commitment,
	})
	if err != nil {
		return solana.Signature{}, backend.classifySubmitError(ctx, err)
	}
	backend.logger.Infof("sent transaction: %s", signature)
	return signature, nil
}

func (backend *Backend) classifySubmitError(ctx context.Context, err error) error {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		backend.logger.Warnf("send transaction err: %d, %s", rpcErr.Code, rpcErr.Message)
		if strings.Contains(strings.ToLower(rpcErr.Message), "blockhash not found") {
			return errors.Wrap(ErrExpiredContext, rpcErr.Message)
		}
		return errors.Wrap(ErrRejected, rpcErr.Message)
	}
	backend.logger.Warnf("send transaction err: %s", err)
	return unavailable(ctx, err, "send transaction")
}
