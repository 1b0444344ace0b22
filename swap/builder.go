package swap

import (
	"context"
	"github.com/egaotan/solana-swap-offer/program"
	"github.com/egaotan/solana-swap-offer/spltoken"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

type Action string

const (
	ActionMake Action = "make"
	ActionTake Action = "take"
)

// Plan is the ordered list of transactions one user action needs. Most plans
// have a single step.
type Plan struct {
	Action Action
	Offer  solana.PublicKey
	Id     uint64
	Payer  solana.PublicKey
	Steps  []*program.Step
}

func (plan *Plan) Instructions() []solana.Instruction {
	ins := make([]solana.Instruction, 0)
	for _, step := range plan.Steps {
		ins = append(ins, step.Instructions...)
	}
	return ins
}

type MakeOfferParams struct {
	Maker         solana.PublicKey
	Id            uint64
	MintOffered   solana.PublicKey
	MintWanted    solana.PublicKey
	AmountOffered uint64
	AmountWanted  uint64
}

// Validate checks the parameters locally; it never touches the network.
func (params *MakeOfferParams) Validate() error {
	if params.Maker.IsZero() {
		return errors.Wrap(ErrInvalidOfferParameters, "maker is missing")
	}
	if params.MintOffered == params.MintWanted {
		return errors.Wrapf(ErrInvalidOfferParameters, "offered and wanted mint are the same: %s", params.MintOffered)
	}
	if params.AmountOffered == 0 || params.AmountWanted == 0 {
		return errors.Wrap(ErrInvalidOfferParameters, "token amounts must be greater than zero")
	}
	if !program.IsOnCurve(params.MintOffered) {
		return errors.Wrapf(ErrInvalidOfferParameters, "invalid mint address: %s", params.MintOffered)
	}
	if !program.IsOnCurve(params.MintWanted) {
		return errors.Wrapf(ErrInvalidOfferParameters, "invalid mint address: %s", params.MintWanted)
	}
	return nil
}

// BuildMakeOffer assembles the single make_offer instruction. Creating the
// offer and funding the vault happen inside one program instruction, so the
// plan always has exactly one step.
func (p *Program) BuildMakeOffer(params *MakeOfferParams) (*Plan, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	offer, _, err := p.DeriveOfferAddress(params.Maker, params.Id)
	if err != nil {
		return nil, err
	}
	in := p.InstructionMakeOffer(&MakeOfferInstructionAccounts{
		Maker:               params.Maker,
		MintOffered:         params.MintOffered,
		MintWanted:          params.MintWanted,
		MakerAccountOffered: spltoken.DeriveAssociatedAddress(params.Maker, params.MintOffered),
		Offer:               offer,
		Vault:               DeriveVaultAddress(offer, params.MintOffered),
	}, &MakeOfferInstructionArgs{
		Id:            params.Id,
		AmountOffered: params.AmountOffered,
		AmountWanted:  params.AmountWanted,
	})
	p.log.Infof("build make offer: %s, id: %d, offered: %d of %s, wanted: %d of %s",
		offer, params.Id, params.AmountOffered, params.MintOffered, params.AmountWanted, params.MintWanted)
	return &Plan{
		Action: ActionMake,
		Offer:  offer,
		Id:     params.Id,
		Payer:  params.Maker,
		Steps: []*program.Step{
			{Name: "make_offer", Instructions: []solana.Instruction{in}},
		},
	}, nil
}

// ValidateTake checks that taker and offer are present.
func (p *Program) ValidateTake(taker solana.PublicKey, offer *Offer) error {
	if taker.IsZero() {
		return errors.Wrap(ErrInvalidOfferParameters, "taker is missing")
	}
	if offer == nil {
		return errors.Wrap(ErrInvalidOfferParameters, "offer is missing")
	}
	return nil
}

// DeriveTakeAccounts checks offer against its maker and id and derives every
// account the settlement touches.
func (p *Program) DeriveTakeAccounts(taker solana.PublicKey, offer *Offer) (*TakeOfferInstructionAccounts, error) {
	if err := p.ValidateTake(taker, offer); err != nil {
		return nil, err
	}
	address, _, err := p.DeriveOfferAddress(offer.Maker, offer.Id)
	if err != nil {
		return nil, err
	}
	if address != offer.Address {
		return nil, errors.Wrapf(ErrInvalidOfferParameters, "offer %s does not match maker %s and id %d", offer.Address, offer.Maker, offer.Id)
	}
	return &TakeOfferInstructionAccounts{
		Taker:               taker,
		Maker:               offer.Maker,
		MintOffered:         offer.MintOffered,
		MintWanted:          offer.MintWanted,
		TakerAccountOffered: spltoken.DeriveAssociatedAddress(taker, offer.MintOffered),
		TakerAccountWanted:  spltoken.DeriveAssociatedAddress(taker, offer.MintWanted),
		MakerAccountWanted:  spltoken.DeriveAssociatedAddress(offer.Maker, offer.MintWanted),
		Offer:               offer.Address,
		Vault:               DeriveVaultAddress(offer.Address, offer.MintOffered),
	}, nil
}

// BuildTakeOffer assembles the settlement of offer by taker, creating the
// taker's account for the offered mint first when it does not exist yet.
func (p *Program) BuildTakeOffer(ctx context.Context, taker solana.PublicKey, offer *Offer) (*Plan, error) {
	accounts, err := p.DeriveTakeAccounts(taker, offer)
	if err != nil {
		return nil, err
	}
	return p.BuildTakePlan(ctx, offer, accounts)
}

// BuildTakePlan assembles the settlement of offer from accounts derived by
// DeriveTakeAccounts. The existence check on the offer is best effort; the
// ledger decides.
func (p *Program) BuildTakePlan(ctx context.Context, offer *Offer, accounts *TakeOfferInstructionAccounts) (*Plan, error) {
	if offer == nil || accounts == nil {
		return nil, errors.Wrap(ErrInvalidOfferParameters, "offer is missing")
	}
	exists, err := p.ledger.AccountExists(ctx, accounts.Offer)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Wrapf(ErrOfferAlreadyClosed, "offer %s", accounts.Offer)
	}
	hasAccount, err := p.ledger.AccountExists(ctx, accounts.TakerAccountOffered)
	if err != nil {
		return nil, err
	}
	settle := p.InstructionTakeOffer(accounts)
	taker := accounts.Taker
	takerAccountOffered := accounts.TakerAccountOffered
	plan := &Plan{
		Action: ActionTake,
		Offer:  offer.Address,
		Id:     offer.Id,
		Payer:  taker,
		Steps:  make([]*program.Step, 0, 2),
	}
	ins := make([]solana.Instruction, 0, 2)
	if !hasAccount {
		p.log.Infof("taker %s has no account for %s, create %s first", taker, offer.MintOffered, takerAccountOffered)
		create := spltoken.InstructionCreateAssociatedAccount(taker, taker, offer.MintOffered)
		if p.separateAccountCreation {
			plan.Steps = append(plan.Steps, &program.Step{Name: "create_associated_account", Instructions: []solana.Instruction{create}})
		} else {
			ins = append(ins, create)
		}
	}
	ins = append(ins, settle)
	plan.Steps = append(plan.Steps, &program.Step{Name: "take_offer", Instructions: ins})
	p.log.Infof("build take offer: %s, taker: %s, steps: %d", offer.Address, taker, len(plan.Steps))
	return plan, nil
}
