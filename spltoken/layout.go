package spltoken

import (
	"github.com/gagliardetto/solana-go"
)

var (
	MintLayoutSize = 82
)

type MintLayout struct {
	MintAuthorityOption   [4]byte
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              byte
	IsInitialized         uint8
	FreezeAuthorityOption [4]byte
	FreezeAuthority       solana.PublicKey
}
