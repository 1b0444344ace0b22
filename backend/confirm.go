package backend

import (
	"context"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"time"
)

type ConfirmationStatus int

const (
	Confirmed ConfirmationStatus = iota
	TimedOut
	Rejected
)

func (s ConfirmationStatus) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case TimedOut:
		return "timed_out"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Confirmation is what could be observed about a signature. TimedOut says
// nothing about whether the transaction executed.
type Confirmation struct {
	Status ConfirmationStatus
	Slot   uint64
	Reason string
}

func (backend *Backend) reached(status rpc.ConfirmationStatusType) bool {
	switch backend.commitment {
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	case rpc.CommitmentProcessed:
		return status != ""
	}
	return status == rpc.ConfirmationStatusConfirmed || status == rpc.ConfirmationStatusFinalized
}

// AwaitConfirmation polls the signature until it reaches the configured
// commitment, fails, or txCtx expires. Cancelling ctx only stops the wait.
func (backend *Backend) AwaitConfirmation(ctx context.Context, signature solana.Signature, txCtx *TxContext) *Confirmation {
	ticker := time.NewTicker(backend.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(backend.confirmTimeout)
	defer deadline.Stop()
	for {
		statuses, err := backend.rpcClient.GetSignatureStatuses(ctx, false, signature)
		if err != nil {
			backend.logger.Warnf("get signature status %s err: %s", signature, err)
		} else if len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.Err != nil {
				backend.logger.Infof("transaction %s failed: %v", signature, status.Err)
				return &Confirmation{Status: Rejected, Slot: status.Slot, Reason: fmt.Sprintf("%v", status.Err)}
			}
			if backend.reached(status.ConfirmationStatus) {
				backend.logger.Infof("transaction %s %s at slot %d", signature, status.ConfirmationStatus, status.Slot)
				return &Confirmation{Status: Confirmed, Slot: status.Slot}
			}
		}
		height, err := backend.rpcClient.GetBlockHeight(ctx, backend.commitment)
		if err != nil {
			backend.logger.Warnf("get block height err: %s", err)
		} else if height > txCtx.LastValidBlockHeight {
			backend.logger.Warnf("transaction %s expired, block height %d > %d", signature, height, txCtx.LastValidBlockHeight)
			return &Confirmation{Status: TimedOut, Reason: "block height exceeded"}
		}
		select {
		case <-ctx.Done():
			return &Confirmation{Status: TimedOut, Reason: ctx.Err().Error()}
		case <-deadline.C:
			return &Confirmation{Status: TimedOut, Reason: "confirmation wait timed out"}
		case <-ticker.C:
		}
	}
}
