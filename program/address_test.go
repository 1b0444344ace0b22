package program

import (
	"encoding/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestFindProgramAddress_MatchesLibrary(t *testing.T) {
	maker := solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	id := make([]byte, 8)
	binary.LittleEndian.PutUint64(id, 42)
	seeds := [][]byte{[]byte("offer"), maker[:], id}

	address, bump, err := FindProgramAddress(seeds, Swap)
	require.NoError(t, err)

	expected, expectedBump, err := solana.FindProgramAddress(seeds, Swap)
	require.NoError(t, err)
	assert.Equal(t, expected, address)
	assert.Equal(t, expectedBump, bump)
	assert.False(t, IsOnCurve(address))
}

func TestFindProgramAddress_DoesNotMutateSeeds(t *testing.T) {
	seeds := make([][]byte, 1, 4)
	seeds[0] = []byte("offer")
	_, _, err := FindProgramAddress(seeds, Swap)
	require.NoError(t, err)
	assert.Len(t, seeds, 1)
}

func TestFindProgramAddress_InvalidSeeds(t *testing.T) {
	_, _, err := FindProgramAddress([][]byte{make([]byte, 33)}, Swap)
	assert.True(t, errors.Is(err, ErrInvalidSeeds))

	tooMany := make([][]byte, MaxSeeds)
	_, _, err = FindProgramAddress(tooMany, Swap)
	assert.True(t, errors.Is(err, ErrInvalidSeeds))
}

func TestIsOnCurve(t *testing.T) {
	wallet := solana.NewWallet()
	assert.True(t, IsOnCurve(wallet.PublicKey()))
	assert.True(t, IsOnCurve(solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")))

	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("offer")}, Swap)
	require.NoError(t, err)
	assert.False(t, IsOnCurve(pda))
	for _, key := range []solana.PublicKey{wallet.PublicKey(), pda, Token, System} {
		assert.Equal(t, solana.IsOnCurve(key[:]), IsOnCurve(key), key.String())
	}
}

func TestInstruction(t *testing.T) {
	in := NewInstruction("noop", System, []*solana.AccountMeta{{PublicKey: Token}}, []byte{7})
	data, err := in.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, data)
	assert.Equal(t, System, in.ProgramID())
	assert.Len(t, in.Accounts(), 1)
}
