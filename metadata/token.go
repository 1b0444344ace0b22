package metadata

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"math/big"
)

const (
	UnknownName     = "Unknown Token"
	DefaultDecimals = 9
)

// Token is display metadata for a mint. Fallback is set when the mint was not
// found in the token list.
type Token struct {
	Mint     solana.PublicKey `json:"mint"`
	Name     string           `json:"name"`
	Symbol   string           `json:"symbol"`
	Decimals uint8            `json:"decimals"`
	LogoURI  string           `json:"logo_uri,omitempty"`
	Fallback bool             `json:"fallback"`
}

func fallbackToken(mint solana.PublicKey, decimals uint8) *Token {
	symbol := mint.String()
	if len(symbol) > 6 {
		symbol = symbol[:6]
	}
	return &Token{
		Mint:     mint,
		Name:     UnknownName,
		Symbol:   symbol + "...",
		Decimals: decimals,
		Fallback: true,
	}
}

// AmountUi converts a raw base unit amount into token units.
func (token *Token) AmountUi(amount uint64) decimal.Decimal {
	return AmountUi(amount, token.Decimals)
}

func AmountUi(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals))
}
