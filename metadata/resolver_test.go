package metadata

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

var (
	mintUsdc = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	mintBonk = solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")
)

const jupiterList = `[
  {"address":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","chainId":101,"decimals":6,"name":"USD Coin","symbol":"USDC","logoURI":"https://example.com/usdc.png","tags":["stablecoin"]}
]`

const labsList = `{"name":"Solana Token List","tokens":[
  {"address":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","chainId":101,"decimals":6,"name":"USD Coin","symbol":"USDC"}
]}`

func tokenListServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

type fixedDecimals struct {
	decimals uint8
	err      error
}

func (f *fixedDecimals) MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	return f.decimals, f.err
}

func TestResolve_Listed(t *testing.T) {
	for name, body := range map[string]string{"jupiter": jupiterList, "labs": labsList} {
		t.Run(name, func(t *testing.T) {
			server, _ := tokenListServer(t, http.StatusOK, body)
			r := NewResolver(server.URL)
			token := r.Resolve(context.Background(), mintUsdc)
			assert.Equal(t, "USD Coin", token.Name)
			assert.Equal(t, "USDC", token.Symbol)
			assert.Equal(t, uint8(6), token.Decimals)
			assert.False(t, token.Fallback)
		})
	}
}

func TestResolve_Fallback(t *testing.T) {
	server, _ := tokenListServer(t, http.StatusOK, jupiterList)
	r := NewResolver(server.URL)
	token := r.Resolve(context.Background(), mintBonk)
	assert.True(t, token.Fallback)
	assert.Equal(t, UnknownName, token.Name)
	assert.Equal(t, "DezXAZ...", token.Symbol)
	assert.Equal(t, uint8(DefaultDecimals), token.Decimals)
}

func TestResolve_ListUnavailable(t *testing.T) {
	server, _ := tokenListServer(t, http.StatusInternalServerError, "")
	r := NewResolver(server.URL, WithDecimalsSource(&fixedDecimals{decimals: 5}))
	token := r.Resolve(context.Background(), mintUsdc)
	assert.True(t, token.Fallback)
	assert.Equal(t, "EPjFWd...", token.Symbol)
	assert.Equal(t, uint8(5), token.Decimals)

	r = NewResolver(server.URL, WithDecimalsSource(&fixedDecimals{err: errors.New("node is behind")}))
	token = r.Resolve(context.Background(), mintUsdc)
	assert.Equal(t, uint8(DefaultDecimals), token.Decimals)
}

func TestResolve_Cached(t *testing.T) {
	server, hits := tokenListServer(t, http.StatusOK, jupiterList)
	r := NewResolver(server.URL)
	first := r.Resolve(context.Background(), mintUsdc)
	second := r.Resolve(context.Background(), mintUsdc)
	assert.Same(t, first, second)
	r.Resolve(context.Background(), mintBonk)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestResolve_Expires(t *testing.T) {
	server, hits := tokenListServer(t, http.StatusOK, jupiterList)
	r := NewResolver(server.URL, WithCache(16, 20*time.Millisecond))
	r.Resolve(context.Background(), mintUsdc)
	time.Sleep(50 * time.Millisecond)
	token := r.Resolve(context.Background(), mintUsdc)
	assert.Equal(t, "USDC", token.Symbol)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestAmountUi(t *testing.T) {
	assert.Equal(t, "1", AmountUi(1_000_000, 6).String())
	assert.Equal(t, "2.5", AmountUi(2_500_000, 6).String())
	assert.Equal(t, "0.000000001", AmountUi(1, 9).String())
	assert.Equal(t, "18446744073.709551615", AmountUi(^uint64(0), 9).String())
	token := &Token{Decimals: 0}
	assert.Equal(t, "42", token.AmountUi(42).String())
}

func TestResolveRequiresNoNetworkForCachedFallback(t *testing.T) {
	server, hits := tokenListServer(t, http.StatusOK, jupiterList)
	r := NewResolver(server.URL)
	r.Resolve(context.Background(), mintBonk)
	server.Close()
	token := r.Resolve(context.Background(), mintBonk)
	require.True(t, token.Fallback)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}
