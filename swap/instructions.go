package swap

import (
	"encoding/binary"
	"github.com/egaotan/solana-swap-offer/program"
	"github.com/gagliardetto/solana-go"
)

const (
	MakeOfferInstructionArgsSize = (8 + // id
		8 + // amount offered
		8) // amount wanted
)

type MakeOfferInstructionArgs struct {
	Id            uint64
	AmountOffered uint64
	AmountWanted  uint64
}

type MakeOfferInstructionAccounts struct {
	Maker               solana.PublicKey
	MintOffered         solana.PublicKey
	MintWanted          solana.PublicKey
	MakerAccountOffered solana.PublicKey
	Offer               solana.PublicKey
	Vault               solana.PublicKey
}

func (p *Program) InstructionMakeOffer(accounts *MakeOfferInstructionAccounts, args *MakeOfferInstructionArgs) solana.Instruction {
	data := make([]byte, 8+MakeOfferInstructionArgsSize)
	copy(data[0:], MakeOfferInstructionDiscriminator[:])
	binary.LittleEndian.PutUint64(data[8:], args.Id)
	binary.LittleEndian.PutUint64(data[16:], args.AmountOffered)
	binary.LittleEndian.PutUint64(data[24:], args.AmountWanted)
	return program.NewInstruction("make_offer", p.id, []*solana.AccountMeta{
		{PublicKey: accounts.Maker, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.MintOffered, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.MintWanted, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.MakerAccountOffered, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Offer, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Vault, IsSigner: false, IsWritable: true},
		{PublicKey: program.System, IsSigner: false, IsWritable: false},
		{PublicKey: program.Token, IsSigner: false, IsWritable: false},
		{PublicKey: program.AssociatedToken, IsSigner: false, IsWritable: false},
	}, data)
}

type TakeOfferInstructionAccounts struct {
	Taker               solana.PublicKey
	Maker               solana.PublicKey
	MintOffered         solana.PublicKey
	MintWanted          solana.PublicKey
	TakerAccountOffered solana.PublicKey
	TakerAccountWanted  solana.PublicKey
	MakerAccountWanted  solana.PublicKey
	Offer               solana.PublicKey
	Vault               solana.PublicKey
}

func (p *Program) InstructionTakeOffer(accounts *TakeOfferInstructionAccounts) solana.Instruction {
	data := make([]byte, 8)
	copy(data, TakeOfferInstructionDiscriminator[:])
	return program.NewInstruction("take_offer", p.id, []*solana.AccountMeta{
		{PublicKey: accounts.Taker, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.Maker, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MintOffered, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.MintWanted, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.TakerAccountOffered, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.TakerAccountWanted, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MakerAccountWanted, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Offer, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Vault, IsSigner: false, IsWritable: true},
		{PublicKey: program.System, IsSigner: false, IsWritable: false},
		{PublicKey: program.Token, IsSigner: false, IsWritable: false},
		{PublicKey: program.AssociatedToken, IsSigner: false, IsWritable: false},
	}, data)
}
