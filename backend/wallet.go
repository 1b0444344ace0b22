package backend

import (
	"context"
	"encoding/json"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"os"
	"strings"
)

// Wallet is a local keypair signer for command line use.
type Wallet struct {
	pubkey solana.PublicKey
	prikey solana.PrivateKey
}

func NewWallet(prikey solana.PrivateKey) *Wallet {
	return &Wallet{
		pubkey: prikey.PublicKey(),
		prikey: prikey,
	}
}

// LoadWallet reads a key file written by solana-keygen (a JSON byte array)
// or holding a base58 encoded private key.
func LoadWallet(file string) (*Wallet, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(content))
	var raw []byte
	if strings.HasPrefix(text, "[") {
		var values []int
		if err := json.Unmarshal([]byte(text), &values); err != nil {
			return nil, errors.Wrapf(err, "key file %s", file)
		}
		raw = make([]byte, len(values))
		for i, v := range values {
			if v < 0 || v > 255 {
				return nil, errors.Errorf("key file %s: byte %d out of range", file, i)
			}
			raw[i] = byte(v)
		}
	} else {
		raw, err = base58.Decode(text)
		if err != nil {
			return nil, errors.Wrapf(err, "key file %s", file)
		}
	}
	if len(raw) != 64 {
		return nil, errors.Errorf("key file %s: expected 64 key bytes, got %d", file, len(raw))
	}
	return NewWallet(solana.PrivateKey(raw)), nil
}

func (wallet *Wallet) PublicKey() solana.PublicKey {
	return wallet.pubkey
}

func (wallet *Wallet) getKey(key solana.PublicKey) *solana.PrivateKey {
	if wallet.pubkey == key {
		return &wallet.prikey
	}
	return nil
}

func (wallet *Wallet) SignTransaction(ctx context.Context, tx *solana.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := tx.Sign(wallet.getKey)
	return err
}
