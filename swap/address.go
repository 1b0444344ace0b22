package swap

import (
	"encoding/binary"
	"github.com/egaotan/solana-swap-offer/program"
	"github.com/egaotan/solana-swap-offer/spltoken"
	"github.com/gagliardetto/solana-go"
)

// DeriveOfferAddress returns the account an offer with this maker and id is
// stored under, plus the bump the program expects.
func DeriveOfferAddress(programId solana.PublicKey, maker solana.PublicKey, id uint64) (solana.PublicKey, uint8, error) {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, id)
	return program.FindProgramAddress([][]byte{OfferSeed, maker[:], idBytes}, programId)
}

// DeriveVaultAddress is the offer's associated account for the offered mint.
func DeriveVaultAddress(offer solana.PublicKey, mintOffered solana.PublicKey) solana.PublicKey {
	return spltoken.DeriveAssociatedAddress(offer, mintOffered)
}

func (p *Program) DeriveOfferAddress(maker solana.PublicKey, id uint64) (solana.PublicKey, uint8, error) {
	return DeriveOfferAddress(p.id, maker, id)
}
