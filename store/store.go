package store

import (
	"context"
	"github.com/egaotan/solana-swap-offer/orchestrator"
	"github.com/egaotan/solana-swap-offer/utils"
	"go.uber.org/zap"
	"sync"
	"time"
)

// Store journals orchestrator outcomes through one background writer.
type Store struct {
	ctx        context.Context
	cancel     context.CancelFunc
	log        *zap.SugaredLogger
	actionChan chan *SwapAction
	repo       Repository
	explorer   func(signature string) string
	wg         sync.WaitGroup
}

type Option func(s *Store)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func WithExplorer(explorer func(signature string) string) Option {
	return func(s *Store) {
		s.explorer = explorer
	}
}

func NewStore(ctx context.Context, repo Repository, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(ctx)
	s := &Store{
		ctx:        ctx,
		cancel:     cancel,
		log:        utils.NopLog(),
		actionChan: make(chan *SwapAction, 32),
		repo:       repo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewMysqlStore(ctx context.Context, url, scheme, user, passwd string, opts ...Option) (*Store, error) {
	dao, err := NewDao(url, scheme, user, passwd)
	if err != nil {
		return nil, err
	}
	return NewStore(ctx, dao, opts...), nil
}

func (s *Store) Start() {
	s.wg.Add(1)
	go s.store()
}

// Stop writes what is already queued and waits for the writer to exit.
func (s *Store) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Store) store() {
	defer s.wg.Done()
	for {
		select {
		case action := <-s.actionChan:
			s.save(action)
		case <-s.ctx.Done():
			for {
				select {
				case action := <-s.actionChan:
					s.save(action)
				default:
					return
				}
			}
		}
	}
}

func (s *Store) save(action *SwapAction) {
	if err := s.repo.SaveSwapAction(action); err != nil {
		s.log.Warnf("save %s %s err: %s", action.Action, action.Offer, err)
		return
	}
	s.log.Debugf("saved %s %s: %s", action.Action, action.Offer, action.State)
}

// Record implements orchestrator.Journal. Outcomes recorded after Stop may be
// dropped.
func (s *Store) Record(outcome *orchestrator.Outcome) {
	action := s.newSwapAction(outcome)
	select {
	case s.actionChan <- action:
	case <-s.ctx.Done():
		s.log.Warnf("store stopped, drop %s %s", action.Action, action.Offer)
	}
}

func (s *Store) newSwapAction(outcome *orchestrator.Outcome) *SwapAction {
	action := &SwapAction{
		Action:         string(outcome.Action),
		Offer:          outcome.Offer.String(),
		OfferId:        outcome.Id,
		Signer:         outcome.Signer.String(),
		State:          outcome.State.String(),
		Reason:         outcome.Reason,
		FinishTime:     time.Now().UnixMilli(),
		SwapSignatures: make([]*SwapSignature, 0, len(outcome.Signatures)),
	}
	if len(action.Reason) > 512 {
		action.Reason = action.Reason[:512]
	}
	for i, signature := range outcome.Signatures {
		item := &SwapSignature{
			Signature: signature.String(),
			Step:      i,
		}
		if s.explorer != nil {
			item.Explorer = s.explorer(item.Signature)
		}
		action.SwapSignatures = append(action.SwapSignatures, item)
	}
	return action
}

func (s *Store) GetSwapActions(offer string) ([]*SwapAction, error) {
	return s.repo.SelectSwapActions(offer)
}
