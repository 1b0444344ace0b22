package program

import (
	"github.com/gagliardetto/solana-go"
)

// Step is a group of instructions that must land in the same transaction.
type Step struct {
	Name         string
	Instructions []solana.Instruction
}
