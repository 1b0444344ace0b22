package swap

import (
	"context"
	"github.com/gagliardetto/solana-go"
)

// ListOpenOffers rescans the program for offer-sized accounts. Accounts that
// do not decode are logged and skipped. The order is whatever the node
// returns.
func (p *Program) ListOpenOffers(ctx context.Context) ([]*Offer, error) {
	accounts, err := p.ledger.ProgramAccountsBySize(ctx, p.id, OfferAccountSize)
	if err != nil {
		return nil, err
	}
	offers := make([]*Offer, 0, len(accounts))
	for i := 0; i < len(accounts); i++ {
		account := accounts[i]
		if account.Owner != p.id {
			p.log.Warnf("account(%s) is not owned by %s, skip", account.PubKey, p.id)
			continue
		}
		offer, err := DecodeOffer(account.PubKey, account.Data)
		if err != nil {
			p.log.Warnf("skip invalid offer account: %s", err)
			continue
		}
		offers = append(offers, offer)
	}
	p.log.Infof("list offers, accounts: %d, offers: %d", len(accounts), len(offers))
	return offers, nil
}

func (p *Program) ListOffersByMaker(ctx context.Context, maker solana.PublicKey) ([]*Offer, error) {
	offers, err := p.ListOpenOffers(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]*Offer, 0)
	for _, offer := range offers {
		if offer.Maker == maker {
			mine = append(mine, offer)
		}
	}
	return mine, nil
}
