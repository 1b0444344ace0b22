package backend

import (
	"github.com/egaotan/solana-swap-offer/config"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"time"
)

var (
	ErrGatewayUnavailable = errors.New("gateway unavailable")
	ErrExpiredContext     = errors.New("expired transaction context")
	ErrRejected           = errors.New("transaction rejected")
	ErrNoUsableNode       = errors.New("there is no usable node")
)

const (
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultConfirmTimeout = 90 * time.Second
)

// Backend is the only path to the ledger. It owns the rpc connection and
// nothing else.
type Backend struct {
	logger              *zap.SugaredLogger
	rpcClient           *rpc.Client
	commitment          rpc.CommitmentType
	blockHashCommitment rpc.CommitmentType
	pollInterval        time.Duration
	confirmTimeout      time.Duration
}

type Option func(backend *Backend)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(backend *Backend) {
		backend.logger = logger
	}
}

func WithCommitment(commitment string) Option {
	return func(backend *Backend) {
		backend.commitment = rpc.CommitmentType(commitment)
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(backend *Backend) {
		backend.pollInterval = interval
	}
}

// WithConfirmTimeout caps the confirmation wait when the block height
// cannot be observed.
func WithConfirmTimeout(timeout time.Duration) Option {
	return func(backend *Backend) {
		backend.confirmTimeout = timeout
	}
}

func NewBackend(nodes []*config.Node, opts ...Option) (*Backend, error) {
	var usedNode *config.Node
	for _, node := range nodes {
		if node.Usable {
			usedNode = node
			break
		}
	}
	if usedNode == nil {
		return nil, ErrNoUsableNode
	}
	backend := &Backend{
		logger:              utils.NopLog(),
		rpcClient:           rpc.New(usedNode.Rpc),
		commitment:          rpc.CommitmentConfirmed,
		blockHashCommitment: rpc.CommitmentFinalized,
		pollInterval:        DefaultPollInterval,
		confirmTimeout:      DefaultConfirmTimeout,
	}
	for _, opt := range opts {
		opt(backend)
	}
	backend.logger.Infof("use rpc node: %s, commitment: %s", usedNode.Rpc, backend.commitment)
	return backend, nil
}
