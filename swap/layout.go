package swap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	OfferAccountSize = (8 + // discriminator
		8 + // id
		32 + // maker
		32 + // mint offered
		32 + // mint wanted
		8 + // amount offered
		8 + // amount wanted
		1) // bump
)

type OfferLayout struct {
	Id            uint64
	Maker         solana.PublicKey
	MintOffered   solana.PublicKey
	MintWanted    solana.PublicKey
	AmountOffered uint64
	AmountWanted  uint64
	Bump          uint8
}

// Offer is a decoded offer account. Amounts are in the mint's base units.
type Offer struct {
	Address solana.PublicKey
	OfferLayout
}

// DecodeOffer parses raw account data. It either returns a fully populated
// offer or an error wrapping ErrMalformedRecord.
func DecodeOffer(address solana.PublicKey, data []byte) (*Offer, error) {
	if len(data) != OfferAccountSize {
		return nil, errors.Wrapf(ErrMalformedRecord, "account(%s) data size is not valid, expected: %d, actual: %d", address, OfferAccountSize, len(data))
	}
	if !bytes.Equal(data[:8], OfferAccountDiscriminator[:]) {
		return nil, errors.Wrapf(ErrMalformedRecord, "account(%s) discriminator mismatch", address)
	}
	layout := OfferLayout{}
	err := binary.Read(bytes.NewReader(data[8:]), binary.LittleEndian, &layout)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "account(%s) data is not valid, err: %s", address, err)
	}
	return &Offer{
		Address:     address,
		OfferLayout: layout,
	}, nil
}

// Encode returns the account bytes the program would store for this offer.
func (o *Offer) Encode() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, OfferAccountSize))
	buf.Write(OfferAccountDiscriminator[:])
	// writes into a bytes.Buffer cannot fail for fixed-size fields
	_ = binary.Write(buf, binary.LittleEndian, &o.OfferLayout)
	return buf.Bytes()
}

func (o *Offer) String() string {
	return fmt.Sprintf(
		"Offer{address=%s,id=%d,maker=%s,mint_offered=%s,mint_wanted=%s,amount_offered=%d,amount_wanted=%d,bump=%d}",
		o.Address,
		o.Id,
		o.Maker,
		o.MintOffered,
		o.MintWanted,
		o.AmountOffered,
		o.AmountWanted,
		o.Bump,
	)
}
