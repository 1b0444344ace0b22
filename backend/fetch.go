package backend

import (
	"context"
	"github.com/egaotan/solana-swap-offer/spltoken"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

type Account struct {
	PubKey solana.PublicKey
	Owner  solana.PublicKey
	Data   []byte
}

func unavailable(ctx context.Context, err error, format string, args ...interface{}) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.Wrapf(ErrGatewayUnavailable, format+": %s", append(args, err)...)
}

// ProgramAccountsBySize returns a snapshot of every account owned by program
// whose data is exactly size bytes.
func (backend *Backend) ProgramAccountsBySize(ctx context.Context, program solana.PublicKey, size uint64) ([]*Account, error) {
	result, err := backend.rpcClient.GetProgramAccountsWithOpts(ctx, program,
		&rpc.GetProgramAccountsOpts{
			Commitment: backend.commitment,
			Encoding:   solana.EncodingBase64,
			Filters: []rpc.RPCFilter{
				{DataSize: size},
			},
		})
	if err != nil {
		return nil, unavailable(ctx, err, "get program accounts of %s", program)
	}
	accounts := make([]*Account, 0, len(result))
	for _, account := range result {
		if account == nil || account.Account == nil {
			continue
		}
		accounts = append(accounts, &Account{
			PubKey: account.Pubkey,
			Owner:  account.Account.Owner,
			Data:   account.Account.Data.GetBinary(),
		})
	}
	backend.logger.Debugf("program %s, size %d, accounts: %d", program, size, len(accounts))
	return accounts, nil
}

// Account returns nil without error when the account does not exist.
func (backend *Backend) Account(ctx context.Context, pubkey solana.PublicKey) (*Account, error) {
	response, err := backend.rpcClient.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Commitment: backend.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(ctx, err, "get account %s", pubkey)
	}
	if response == nil || response.Value == nil {
		return nil, nil
	}
	return &Account{
		PubKey: pubkey,
		Owner:  response.Value.Owner,
		Data:   response.Value.Data.GetBinary(),
	}, nil
}

func (backend *Backend) AccountExists(ctx context.Context, pubkey solana.PublicKey) (bool, error) {
	account, err := backend.Account(ctx, pubkey)
	if err != nil {
		return false, err
	}
	return account != nil, nil
}

func (backend *Backend) MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	account, err := backend.Account(ctx, mint)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, errors.Errorf("mint %s does not exist", mint)
	}
	layout, err := spltoken.ParseMint(account.Owner, account.Data)
	if err != nil {
		return 0, errors.Wrapf(err, "mint %s", mint)
	}
	return layout.Decimals, nil
}
