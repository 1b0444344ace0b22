package orchestrator

import (
	"context"
	"fmt"
	"github.com/egaotan/solana-swap-offer/backend"
	"github.com/egaotan/solana-swap-offer/program"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"math/rand"
	"sync"
)

var (
	ErrUserRejected = errors.New("user rejected")
	ErrUnconfirmed  = errors.New("status unknown, check explorer")
)

// unconfirmedError reports a transaction that may or may not have landed.
// It matches ErrUnconfirmed and unwraps to whatever left the outcome unknown.
type unconfirmedError struct {
	signature solana.Signature
	reason    string
	cause     error
}

func (e *unconfirmedError) Error() string {
	return fmt.Sprintf("%s: signature %s: %s", ErrUnconfirmed, e.signature, e.reason)
}

func (e *unconfirmedError) Is(target error) bool {
	return target == ErrUnconfirmed
}

func (e *unconfirmedError) Unwrap() error {
	return e.cause
}

const (
	MinRandomId = 10
	MaxRandomId = 999999
)

// Gateway is the part of the backend the orchestrator submits through.
type Gateway interface {
	RecentContext(ctx context.Context) (*backend.TxContext, error)
	SubmitSigned(ctx context.Context, raw []byte) (solana.Signature, error)
	AwaitConfirmation(ctx context.Context, signature solana.Signature, txCtx *backend.TxContext) *backend.Confirmation
	AccountExists(ctx context.Context, address solana.PublicKey) (bool, error)
}

type Option func(o *Orchestrator)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

func WithJournal(journal Journal) Option {
	return func(o *Orchestrator) {
		o.journal = journal
	}
}

func WithObserver(observer Observer) Option {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

func WithExplorer(explorer func(signature string) string) Option {
	return func(o *Orchestrator) {
		o.explorer = explorer
	}
}

// RandomOfferId picks a starting id the way a fresh session does.
func RandomOfferId(r *rand.Rand) uint64 {
	return uint64(r.Int63n(MaxRandomId-MinRandomId+1)) + MinRandomId
}

// Orchestrator drives one user action at a time through derive, build, sign,
// submit and confirm. It owns the next offer id; two orchestrators for the
// same maker can hand out the same id.
type Orchestrator struct {
	log      *zap.SugaredLogger
	program  *swap.Program
	gateway  Gateway
	signer   program.Signer
	journal  Journal
	observer Observer
	explorer func(signature string) string
	makeLock sync.Mutex
	nextId   uint64
}

func NewOrchestrator(p *swap.Program, gateway Gateway, signer program.Signer, firstId uint64, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		log:     utils.NopLog(),
		program: p,
		gateway: gateway,
		signer:  signer,
		nextId:  firstId,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) NextId() uint64 {
	o.makeLock.Lock()
	defer o.makeLock.Unlock()
	return o.nextId
}

type MakeOfferRequest struct {
	// Id overrides the local counter when set.
	Id            *uint64
	MintOffered   solana.PublicKey
	MintWanted    solana.PublicKey
	AmountOffered uint64
	AmountWanted  uint64
}

type action struct {
	o       *Orchestrator
	receipt *Receipt
	reason  string
}

func (o *Orchestrator) newAction(kind swap.Action) *action {
	return &action{
		o: o,
		receipt: &Receipt{
			Action: kind,
			State:  Idle,
		},
	}
}

func (a *action) to(state State) {
	from := a.receipt.State
	a.receipt.State = state
	a.o.log.Debugf("%s %s: %s -> %s", a.receipt.Action, a.receipt.Offer, from, state)
	if a.o.observer != nil {
		a.o.observer(a.receipt.Action, a.receipt.Offer, from, state)
	}
}

func (a *action) fail(err error) (*Receipt, error) {
	a.to(Failed)
	a.reason = err.Error()
	a.o.log.Warnf("%s %s failed: %s", a.receipt.Action, a.receipt.Offer, err)
	a.record()
	return a.receipt, err
}

func (a *action) record() {
	if a.o.journal == nil {
		return
	}
	a.o.journal.Record(&Outcome{
		Action:     a.receipt.Action,
		Offer:      a.receipt.Offer,
		Id:         a.receipt.Id,
		Signer:     a.o.signer.PublicKey(),
		Signatures: a.receipt.Signatures,
		State:      a.receipt.State,
		Reason:     a.reason,
	})
}

// MakeOffer creates an offer with the next local id (or req.Id). Makes on one
// orchestrator are serialized so that they never share an id.
func (o *Orchestrator) MakeOffer(ctx context.Context, req *MakeOfferRequest) (*Receipt, error) {
	o.makeLock.Lock()
	defer o.makeLock.Unlock()

	a := o.newAction(swap.ActionMake)
	id := o.nextId
	if req.Id != nil {
		id = *req.Id
	}
	a.receipt.Id = id
	a.receipt.NextId = o.nextId

	a.to(Validating)
	params := &swap.MakeOfferParams{
		Maker:         o.signer.PublicKey(),
		Id:            id,
		MintOffered:   req.MintOffered,
		MintWanted:    req.MintWanted,
		AmountOffered: req.AmountOffered,
		AmountWanted:  req.AmountWanted,
	}
	if err := params.Validate(); err != nil {
		return a.fail(err)
	}

	a.to(Deriving)
	offer, _, err := o.program.DeriveOfferAddress(params.Maker, id)
	if err != nil {
		return a.fail(err)
	}
	a.receipt.Offer = offer

	a.to(Building)
	plan, err := o.program.BuildMakeOffer(params)
	if err != nil {
		return a.fail(err)
	}
	receipt, err := a.execute(ctx, plan)
	if receipt.State == Settled || receipt.State == Unconfirmed {
		// an unconfirmed make may have landed; never hand its id out again
		if id >= o.nextId {
			o.nextId = id + 1
		}
		receipt.NextId = o.nextId
	}
	return receipt, err
}

// TakeOffer settles offer for the signer. Losing a race to another taker is
// reported as swap.ErrOfferAlreadyClosed.
func (o *Orchestrator) TakeOffer(ctx context.Context, offer *swap.Offer) (*Receipt, error) {
	a := o.newAction(swap.ActionTake)
	if offer != nil {
		a.receipt.Offer = offer.Address
		a.receipt.Id = offer.Id
	}

	a.to(Validating)
	taker := o.signer.PublicKey()
	if err := o.program.ValidateTake(taker, offer); err != nil {
		return a.fail(err)
	}

	a.to(Deriving)
	accounts, err := o.program.DeriveTakeAccounts(taker, offer)
	if err != nil {
		return a.fail(err)
	}

	a.to(Building)
	plan, err := o.program.BuildTakePlan(ctx, offer, accounts)
	if err != nil {
		return a.fail(err)
	}
	return a.execute(ctx, plan)
}

func (a *action) execute(ctx context.Context, plan *swap.Plan) (*Receipt, error) {
	o := a.o
	for i, step := range plan.Steps {
		if i > 0 {
			a.to(Building)
		}
		txCtx, err := o.gateway.RecentContext(ctx)
		if err != nil {
			return a.fail(err)
		}
		tx, err := backend.BuildTransaction(step.Instructions, plan.Payer, txCtx)
		if err != nil {
			return a.fail(errors.Wrapf(err, "build %s transaction", step.Name))
		}

		a.to(AwaitingSignature)
		if err := o.signer.SignTransaction(ctx, tx); err != nil {
			return a.fail(errors.Wrapf(ErrUserRejected, "%s", err))
		}
		raw, err := tx.MarshalBinary()
		if err != nil {
			return a.fail(errors.Wrapf(err, "marshal %s transaction", step.Name))
		}
		if len(tx.Signatures) > 0 {
			a.receipt.Signatures = append(a.receipt.Signatures, tx.Signatures[0])
			if o.explorer != nil {
				a.receipt.Explorer = append(a.receipt.Explorer, o.explorer(tx.Signatures[0].String()))
			}
		}

		a.to(Submitting)
		signature, err := o.gateway.SubmitSigned(ctx, raw)
		if err != nil {
			if errors.Is(err, backend.ErrRejected) || errors.Is(err, backend.ErrExpiredContext) {
				return a.fail(a.explainRejection(ctx, plan, err))
			}
			// the node may have forwarded it before the connection dropped
			if len(tx.Signatures) > 0 {
				signature = tx.Signatures[0]
			}
			return a.unconfirmed(plan, step, signature, err.Error(), err)
		}

		a.to(Confirming)
		confirmation := o.gateway.AwaitConfirmation(ctx, signature, txCtx)
		switch confirmation.Status {
		case backend.Confirmed:
			o.log.Infof("%s %s step %s confirmed: %s", plan.Action, plan.Offer, step.Name, signature)
		case backend.Rejected:
			return a.fail(a.explainRejection(ctx, plan, errors.Wrapf(backend.ErrRejected, "%s", confirmation.Reason)))
		default:
			return a.unconfirmed(plan, step, signature, confirmation.Reason, nil)
		}
	}
	a.to(Settled)
	a.record()
	return a.receipt, nil
}

func (a *action) unconfirmed(plan *swap.Plan, step *program.Step, signature solana.Signature, reason string, cause error) (*Receipt, error) {
	a.to(Unconfirmed)
	a.reason = reason
	a.o.log.Warnf("%s %s step %s unconfirmed: %s, %s", plan.Action, plan.Offer, step.Name, signature, reason)
	a.record()
	return a.receipt, &unconfirmedError{signature: signature, reason: reason, cause: cause}
}

// explainRejection turns a ledger rejection into the race it most likely
// was: a take whose offer is gone, or a make whose id is already used.
func (a *action) explainRejection(ctx context.Context, plan *swap.Plan, err error) error {
	if !errors.Is(err, backend.ErrRejected) {
		return err
	}
	exists, checkErr := a.o.gateway.AccountExists(ctx, plan.Offer)
	if checkErr != nil {
		return err
	}
	switch {
	case plan.Action == swap.ActionTake && !exists:
		return errors.Wrapf(swap.ErrOfferAlreadyClosed, "offer %s: %s", plan.Offer, err)
	case plan.Action == swap.ActionMake && exists:
		return errors.Wrapf(swap.ErrOfferIdTaken, "offer %s id %d: %s", plan.Offer, plan.Id, err)
	}
	return err
}
