package swap

import (
	"encoding/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestOfferAccountSize(t *testing.T) {
	assert.Equal(t, 129, OfferAccountSize)
}

func TestDecodeOffer_HandBuilt(t *testing.T) {
	maker := solana.NewWallet().PublicKey()
	address := solana.NewWallet().PublicKey()
	data := make([]byte, 0, OfferAccountSize)
	data = append(data, OfferAccountDiscriminator[:]...)
	data = binary.LittleEndian.AppendUint64(data, 42)
	data = append(data, maker[:]...)
	data = append(data, mintUsdc[:]...)
	data = append(data, mintUsdt[:]...)
	data = binary.LittleEndian.AppendUint64(data, 1_000_000)
	data = binary.LittleEndian.AppendUint64(data, 2_000_000)
	data = append(data, 254)
	require.Len(t, data, OfferAccountSize)

	offer, err := DecodeOffer(address, data)
	require.NoError(t, err)
	assert.Equal(t, address, offer.Address)
	assert.Equal(t, uint64(42), offer.Id)
	assert.Equal(t, maker, offer.Maker)
	assert.Equal(t, mintUsdc, offer.MintOffered)
	assert.Equal(t, mintUsdt, offer.MintWanted)
	assert.Equal(t, uint64(1_000_000), offer.AmountOffered)
	assert.Equal(t, uint64(2_000_000), offer.AmountWanted)
	assert.Equal(t, uint8(254), offer.Bump)
	assert.Equal(t, data, offer.Encode())
}

func TestDecodeOffer_RoundTrip(t *testing.T) {
	offers := []*Offer{
		mustOffer(solana.NewWallet().PublicKey(), 0, mintUsdc, mintUsdt, 1, 1),
		mustOffer(solana.NewWallet().PublicKey(), 999999, mintUsdt, mintUsdc, 5, 7),
		mustOffer(solana.NewWallet().PublicKey(), ^uint64(0), mintUsdc, mintUsdt, ^uint64(0), ^uint64(0)),
	}
	for _, offer := range offers {
		decoded, err := DecodeOffer(offer.Address, offer.Encode())
		require.NoError(t, err)
		assert.Equal(t, offer, decoded)
	}
}

func TestDecodeOffer_Malformed(t *testing.T) {
	offer := mustOffer(solana.NewWallet().PublicKey(), 1, mintUsdc, mintUsdt, 1, 2)
	good := offer.Encode()

	corrupted := append([]byte{}, good...)
	corrupted[0] ^= 0xff

	cases := map[string][]byte{
		"empty":       {},
		"short":       good[:OfferAccountSize-1],
		"long":        append(append([]byte{}, good...), 0),
		"tag":         corrupted,
		"only header": OfferAccountDiscriminator[:],
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			decoded, err := DecodeOffer(offer.Address, data)
			assert.Nil(t, decoded)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
		})
	}
}

func TestDiscriminators(t *testing.T) {
	assert.NotEqual(t, MakeOfferInstructionDiscriminator, TakeOfferInstructionDiscriminator)
	assert.NotEqual(t, OfferAccountDiscriminator, MakeOfferInstructionDiscriminator)
	assert.Equal(t, discriminator("account:Offer"), OfferAccountDiscriminator)
}
