package store

import (
	"context"
	"github.com/egaotan/solana-swap-offer/orchestrator"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryRepository struct {
	lock    sync.Mutex
	actions []*SwapAction
	err     error
}

func (r *memoryRepository) SaveSwapAction(action *SwapAction) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return r.err
	}
	action.Id = uint64(len(r.actions) + 1)
	r.actions = append(r.actions, action)
	return nil
}

func (r *memoryRepository) SelectSwapActions(offer string) ([]*SwapAction, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	actions := make([]*SwapAction, 0)
	for _, action := range r.actions {
		if action.Offer == offer {
			actions = append(actions, action)
		}
	}
	return actions, nil
}

func (r *memoryRepository) count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.actions)
}

func outcome(offer solana.PublicKey, state orchestrator.State, signatures ...solana.Signature) *orchestrator.Outcome {
	return &orchestrator.Outcome{
		Action:     swap.ActionTake,
		Offer:      offer,
		Id:         42,
		Signer:     solana.NewWallet().PublicKey(),
		Signatures: signatures,
		State:      state,
		Reason:     "",
	}
}

func TestStoreRecord(t *testing.T) {
	repo := &memoryRepository{}
	s := NewStore(context.Background(), repo, WithExplorer(func(signature string) string {
		return "https://explorer/" + signature
	}))
	s.Start()
	defer s.Stop()

	offer := solana.NewWallet().PublicKey()
	s.Record(outcome(offer, orchestrator.Settled, solana.Signature{1}, solana.Signature{2}))
	assert.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 5*time.Millisecond)

	actions, err := s.GetSwapActions(offer.String())
	require.NoError(t, err)
	require.Len(t, actions, 1)
	action := actions[0]
	assert.Equal(t, "take", action.Action)
	assert.Equal(t, uint64(42), action.OfferId)
	assert.Equal(t, "settled", action.State)
	require.Len(t, action.SwapSignatures, 2)
	assert.Equal(t, 0, action.SwapSignatures[0].Step)
	assert.Equal(t, solana.Signature{2}.String(), action.SwapSignatures[1].Signature)
	assert.Equal(t, "https://explorer/"+solana.Signature{1}.String(), action.SwapSignatures[0].Explorer)
}

func TestStoreStopFlushes(t *testing.T) {
	repo := &memoryRepository{}
	s := NewStore(context.Background(), repo)
	for i := 0; i < 10; i++ {
		s.Record(outcome(solana.NewWallet().PublicKey(), orchestrator.Failed))
	}
	s.Start()
	s.Stop()
	assert.Equal(t, 10, repo.count())
}

func TestStoreSaveErrorKeepsWriter(t *testing.T) {
	repo := &memoryRepository{err: errors.New("connection lost")}
	s := NewStore(context.Background(), repo)
	s.Start()
	s.Record(outcome(solana.NewWallet().PublicKey(), orchestrator.Unconfirmed))
	s.Stop()
	assert.Equal(t, 0, repo.count())
}

func TestNewSwapActionTruncatesReason(t *testing.T) {
	s := NewStore(context.Background(), &memoryRepository{})
	o := outcome(solana.NewWallet().PublicKey(), orchestrator.Failed)
	o.Reason = strings.Repeat("x", 600)
	action := s.newSwapAction(o)
	assert.Len(t, action.Reason, 512)
	assert.Empty(t, action.SwapSignatures)
}
