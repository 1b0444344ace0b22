package app

import (
	"context"
	"github.com/egaotan/solana-swap-offer/backend"
	"github.com/egaotan/solana-swap-offer/config"
	"github.com/egaotan/solana-swap-offer/dingsdk"
	"github.com/egaotan/solana-swap-offer/metadata"
	"github.com/egaotan/solana-swap-offer/orchestrator"
	"github.com/egaotan/solana-swap-offer/server"
	"github.com/egaotan/solana-swap-offer/store"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"math/rand"
	"os"
	"time"
)

// App wires the components for one process from a config.
type App struct {
	ctx     context.Context
	cfg     *config.Config
	Backend *backend.Backend
	Program *swap.Program
	Tokens  *metadata.Resolver
	store   *store.Store
	ding    *dingsdk.DingSdk
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.LogPath, 0755); err != nil {
		return nil, errors.Wrapf(err, "log path %s", cfg.LogPath)
	}
	programId, err := solana.PublicKeyFromBase58(cfg.Program)
	if err != nil {
		return nil, errors.Wrapf(err, "program %s", cfg.Program)
	}
	b, err := backend.NewBackend(cfg.UsableNodes(),
		backend.WithLogger(utils.NewLog(cfg.LogPath, config.BackendLog)),
		backend.WithCommitment(cfg.Commitment),
		backend.WithPollInterval(cfg.PollInterval),
		backend.WithConfirmTimeout(cfg.ConfirmTimeout),
	)
	if err != nil {
		return nil, err
	}
	app := &App{
		ctx:     ctx,
		cfg:     cfg,
		Backend: b,
		Program: swap.NewProgram(programId, b,
			swap.WithLogger(utils.NewLog(cfg.LogPath, config.SwapLog)),
			swap.WithSeparateAccountCreation(cfg.SeparateAccountCreation),
		),
		Tokens: metadata.NewResolver(cfg.TokenListUrl,
			metadata.WithLogger(utils.NewLog(cfg.LogPath, config.MetadataLog)),
			metadata.WithDecimalsSource(b),
			metadata.WithCache(cfg.MetadataCacheSize, cfg.MetadataCacheTTL),
		),
	}
	return app, nil
}

func (app *App) Config() *config.Config {
	return app.cfg
}

// Orchestrator loads the signing key and hooks up the configured journals:
// the mysql store and the DingTalk robot. The first offer id is random.
func (app *App) Orchestrator() (*orchestrator.Orchestrator, error) {
	if app.cfg.Key == "" {
		return nil, errors.New("config: key is empty, a key file is needed to sign")
	}
	wallet, err := backend.LoadWallet(app.cfg.Key)
	if err != nil {
		return nil, err
	}
	opts := []orchestrator.Option{
		orchestrator.WithLogger(utils.NewLog(app.cfg.LogPath, config.TraderLog)),
		orchestrator.WithExplorer(app.cfg.ExplorerUrl),
	}
	if app.cfg.HasJournal() && app.store == nil {
		app.store, err = store.NewMysqlStore(app.ctx, app.cfg.DBUrl, app.cfg.DBScheme, app.cfg.DBUser, app.cfg.DBPasswd,
			store.WithLogger(utils.NewLog(app.cfg.LogPath, config.StoreLog)),
			store.WithExplorer(app.cfg.ExplorerUrl),
		)
		if err != nil {
			return nil, errors.Wrap(err, "open journal")
		}
		app.store.Start()
	}
	if app.cfg.HasNotify() && app.ding == nil {
		app.ding = dingsdk.NewDingSdk(app.cfg.DingUrl, utils.NewLog(app.cfg.LogPath, config.NotifyLog), app.cfg.ExplorerUrl)
	}
	journals := make(orchestrator.Journals, 0, 2)
	if app.store != nil {
		journals = append(journals, app.store)
	}
	if app.ding != nil {
		journals = append(journals, app.ding)
	}
	if len(journals) > 0 {
		opts = append(opts, orchestrator.WithJournal(journals))
	}
	firstId := orchestrator.RandomOfferId(rand.New(rand.NewSource(time.Now().UnixNano())))
	return orchestrator.NewOrchestrator(app.Program, app.Backend, wallet, firstId, opts...), nil
}

func (app *App) Server() *server.Server {
	return server.NewServer(app.ctx, app.cfg.Listen, app.Program, app.Tokens, utils.NewLog(app.cfg.LogPath, config.ServerLog))
}

// Close flushes the journals.
func (app *App) Close() {
	if app.store != nil {
		app.store.Stop()
	}
	if app.ding != nil {
		app.ding.Wait()
	}
}

// Offer reads one offer record straight from the ledger.
func (app *App) Offer(ctx context.Context, address solana.PublicKey) (*swap.Offer, error) {
	account, err := app.Backend.Account(ctx, address)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.Wrapf(swap.ErrOfferAlreadyClosed, "offer %s", address)
	}
	if account.Owner != app.Program.Id() {
		return nil, errors.Wrapf(swap.ErrMalformedRecord, "account %s is owned by %s", address, account.Owner)
	}
	return swap.DecodeOffer(address, account.Data)
}
