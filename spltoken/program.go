package spltoken

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"github.com/egaotan/solana-swap-offer/program"
	"github.com/gagliardetto/solana-go"
)

// DeriveAssociatedAddress returns the canonical token account of owner for
// mint. Owners that are themselves program addresses are allowed.
func DeriveAssociatedAddress(owner solana.PublicKey, mint solana.PublicKey) solana.PublicKey {
	address, _, err := program.FindProgramAddress([][]byte{
		owner[:],
		program.Token[:],
		mint[:],
	}, program.AssociatedToken)
	if err != nil {
		// three 32-byte seeds always resolve within the bump range
		panic(err)
	}
	return address
}

// CreateIdempotent is the associated token program instruction that succeeds
// when the account already exists.
const CreateIdempotent = 1

// InstructionCreateAssociatedAccount creates the associated account of owner
// for mint, paid by payer. It is a no-op when the account already exists.
func InstructionCreateAssociatedAccount(payer solana.PublicKey, owner solana.PublicKey, mint solana.PublicKey) solana.Instruction {
	return program.NewInstruction("create_associated_account", program.AssociatedToken, []*solana.AccountMeta{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: DeriveAssociatedAddress(owner, mint), IsSigner: false, IsWritable: true},
		{PublicKey: owner, IsSigner: false, IsWritable: false},
		{PublicKey: mint, IsSigner: false, IsWritable: false},
		{PublicKey: program.System, IsSigner: false, IsWritable: false},
		{PublicKey: program.Token, IsSigner: false, IsWritable: false},
	}, []byte{CreateIdempotent})
}

func ParseMint(owner solana.PublicKey, data []byte) (MintLayout, error) {
	mint := MintLayout{}
	if owner != program.Token {
		return mint, fmt.Errorf("account is not spl token program account, expected: %s, actual: %s", program.Token, owner)
	}
	if len(data) != MintLayoutSize {
		return mint, fmt.Errorf("mint data size is not valid, expected: %d, actual: %d", MintLayoutSize, len(data))
	}
	buf := bytes.NewReader(data)
	err := binary.Read(buf, binary.LittleEndian, &mint)
	if err != nil {
		return mint, fmt.Errorf("mint data is not valid, err: %s", err)
	}
	return mint, nil
}
