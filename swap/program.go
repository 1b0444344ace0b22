package swap

import (
	"crypto/sha256"
	"github.com/egaotan/solana-swap-offer/program"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrInvalidOfferParameters = errors.New("invalid offer parameters")
	ErrMalformedRecord        = errors.New("malformed offer record")
	ErrOfferAlreadyClosed     = errors.New("offer already closed")
	ErrOfferIdTaken           = errors.New("offer id already in use")
	ErrAddressSpaceExhausted  = program.ErrAddressSpaceExhausted
)

var (
	OfferSeed = []byte("offer")

	OfferAccountDiscriminator         = discriminator("account:Offer")
	MakeOfferInstructionDiscriminator = discriminator("global:make_offer")
	TakeOfferInstructionDiscriminator = discriminator("global:take_offer")
)

func discriminator(preimage string) [8]byte {
	var d [8]byte
	sum := sha256.Sum256([]byte(preimage))
	copy(d[:], sum[:8])
	return d
}

type Option func(p *Program)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Program) {
		p.log = log
	}
}

// WithSeparateAccountCreation sends associated account creation in its own
// transaction ahead of settlement, for ledgers that refuse the combination.
func WithSeparateAccountCreation(separate bool) Option {
	return func(p *Program) {
		p.separateAccountCreation = separate
	}
}

// Program is the client side of the on-chain swap program. It is safe for
// concurrent use; it holds no state beyond its ledger handle.
type Program struct {
	ledger                  Ledger
	log                     *zap.SugaredLogger
	id                      solana.PublicKey
	separateAccountCreation bool
}

func NewProgram(programId solana.PublicKey, ledger Ledger, opts ...Option) *Program {
	p := &Program{
		ledger: ledger,
		log:    utils.NopLog(),
		id:     programId,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Program) Name() string {
	return "swap"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}
