package metadata

import (
	"context"
	"encoding/json"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 10 * time.Minute
)

// DecimalsSource reads a mint's decimals from the ledger.
type DecimalsSource interface {
	MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error)
}

type listToken struct {
	ChainId  int    `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI"`
}

// the solana-labs format wraps the list in an object
type tokenList struct {
	Name   string       `json:"name"`
	Tokens []*listToken `json:"tokens"`
}

type Option func(r *Resolver)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

func WithDecimalsSource(source DecimalsSource) Option {
	return func(r *Resolver) {
		r.decimals = source
	}
}

func WithCache(size int, ttl time.Duration) Option {
	return func(r *Resolver) {
		r.size = size
		r.ttl = ttl
	}
}

// Resolver maps mints to display metadata. It never fails: missing or
// unreachable metadata yields a fallback token.
type Resolver struct {
	log      *zap.SugaredLogger
	url      string
	client   *http.Client
	decimals DecimalsSource
	size     int
	ttl      time.Duration
	cache    *expirable.LRU[solana.PublicKey, *Token]

	lock      sync.Mutex
	list      map[string]*listToken
	fetchedAt time.Time
}

func NewResolver(url string, opts ...Option) *Resolver {
	r := &Resolver{
		log:    utils.NopLog(),
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		size:   DefaultCacheSize,
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = expirable.NewLRU[solana.PublicKey, *Token](r.size, nil, r.ttl)
	return r
}

func (r *Resolver) Resolve(ctx context.Context, mint solana.PublicKey) *Token {
	if token, ok := r.cache.Get(mint); ok {
		return token
	}
	token := r.resolve(ctx, mint)
	r.cache.Add(mint, token)
	return token
}

func (r *Resolver) resolve(ctx context.Context, mint solana.PublicKey) *Token {
	list, err := r.tokenList(ctx)
	if err != nil {
		r.log.Warnf("token list %s unavailable: %s", r.url, err)
	} else if item, ok := list[mint.String()]; ok {
		return &Token{
			Mint:     mint,
			Name:     item.Name,
			Symbol:   item.Symbol,
			Decimals: uint8(item.Decimals),
			LogoURI:  item.LogoURI,
		}
	}
	decimals := uint8(DefaultDecimals)
	if r.decimals != nil {
		onChain, err := r.decimals.MintDecimals(ctx, mint)
		if err != nil {
			r.log.Warnf("mint %s decimals: %s", mint, err)
		} else {
			decimals = onChain
		}
	}
	return fallbackToken(mint, decimals)
}

func (r *Resolver) tokenList(ctx context.Context) (map[string]*listToken, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.list != nil && time.Since(r.fetchedAt) < r.ttl {
		return r.list, nil
	}
	list, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.list = list
	r.fetchedAt = time.Now()
	r.log.Infof("token list %s loaded, tokens: %d", r.url, len(list))
	return list, nil
}

func (r *Resolver) fetch(ctx context.Context) (map[string]*listToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("response status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	tokens := make([]*listToken, 0)
	if err := json.Unmarshal(body, &tokens); err != nil {
		var wrapped tokenList
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, errors.Wrap(err, "decode token list")
		}
		tokens = wrapped.Tokens
	}
	list := make(map[string]*listToken, len(tokens))
	for _, token := range tokens {
		if token == nil || token.Address == "" {
			continue
		}
		list[token.Address] = token
	}
	return list, nil
}
