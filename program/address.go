package program

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	MaxSeeds        = 16
	MaxSeedLength   = 32
	MaxBumpAttempts = 256
)

var (
	ErrAddressSpaceExhausted = errors.New("address space exhausted")
	ErrInvalidSeeds          = errors.New("invalid seeds")
)

// FindProgramAddress searches bumps from 255 downwards and returns the first
// seed set whose hash falls off the ed25519 curve.
func FindProgramAddress(seeds [][]byte, programId solana.PublicKey) (solana.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return solana.PublicKey{}, 0, errors.Wrapf(ErrInvalidSeeds, "%d seeds", len(seeds))
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return solana.PublicKey{}, 0, errors.Wrapf(ErrInvalidSeeds, "seed of %d bytes", len(seed))
		}
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for i := 0; i < MaxBumpAttempts; i++ {
		bump := uint8(255 - i)
		withBump[len(seeds)] = []byte{bump}
		address, err := solana.CreateProgramAddress(withBump, programId)
		if err != nil {
			continue
		}
		return address, bump, nil
	}
	return solana.PublicKey{}, 0, errors.Wrapf(ErrAddressSpaceExhausted, "program %s", programId)
}

// IsOnCurve reports whether key is a valid ed25519 point, i.e. an address
// that can belong to a keypair.
func IsOnCurve(key solana.PublicKey) bool {
	return solana.IsOnCurve(key[:])
}
