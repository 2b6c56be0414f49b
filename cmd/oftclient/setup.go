package main

import (
	"context"
	"time"

	"github.com/ClipFinance/oft-client/balance"
	"github.com/ClipFinance/oft-client/chainmanager"
	"github.com/ClipFinance/oft-client/chains"
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/config"
	"github.com/ClipFinance/oft-client/dbconfig"
	"github.com/ClipFinance/oft-client/discovery"
	"github.com/ClipFinance/oft-client/session"
	"github.com/ClipFinance/oft-client/transfer"
	"github.com/ClipFinance/oft-client/wallet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type contextKey string

const (
	contextApp contextKey = "app"

	dbLoadTimeout = 10 * time.Second
)

// App holds the wired components shared by every command.
type App struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Registry  *chainmanager.Registry
	Wallet    *wallet.KeyedProvider
	Bus       *discovery.Bus
	Discovery *discovery.Discovery
	Sessions  *session.Manager
	Balances  *balance.Reader
	Workflow  *transfer.Workflow
}

func wrapApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, contextApp, app)
}

func unwrapApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(contextApp).(*App)
}

// NewApp wires the registry, the keyed wallet, discovery, the session manager,
// the balance reader and the transfer workflow from configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	descriptors, err := chainmanager.DefaultChains(cfg.NetworkType())
	if err != nil {
		return nil, err
	}

	rpc := make(map[string]string, len(cfg.RPC))
	for id, url := range cfg.RPC {
		rpc[id] = url
	}

	if cfg.Database.DSN != "" {
		db, err := dbconfig.NewDBConfig(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		descriptors, rpc, err = loadFromSource(ctx, db, descriptors, rpc)
		if err != nil {
			return nil, err
		}
		logger.WithField("chains", len(descriptors)).Info("Loaded chains from database")
	}

	descriptors, err = chainmanager.ApplyContractOverrides(descriptors, cfg.Contracts)
	if err != nil {
		return nil, err
	}

	registry, err := chainmanager.NewRegistryBuilder().WithChains(descriptors...).Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build chain registry")
	}
	if registry.Len() == 0 {
		return nil, errors.Wrap(xerrors.ErrInvalidConfig, "no chains configured")
	}

	walletChain := cfg.Wallet.Chain
	if walletChain == "" {
		walletChain = registry.List()[0].ChainID
	}
	if _, err := registry.Get(walletChain); err != nil {
		return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "wallet chain %s: %v", walletChain, err)
	}

	keyed, err := wallet.NewKeyedProvider(wallet.Config{
		Info: types.ProviderInfo{
			UUID: cfg.Wallet.UUID,
			Name: cfg.Wallet.Name,
			Icon: cfg.Wallet.Icon,
		},
		Keys:        cfg.Wallet.Keys,
		ChainID:     walletChain,
		RPC:         rpc,
		TxType:      cfg.Tx.Type,
		WaitNBlocks: cfg.Tx.WaitBlocks,
	}, chains.NewChainFactory(), logger)
	if err != nil {
		return nil, err
	}

	bus := discovery.NewBus()
	wallets := discovery.NewDiscovery(logger)
	wallets.Start(bus)
	bus.RegisterProvider(keyed)
	bus.Wait()

	sessions := session.NewManager(logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Wallet:    keyed,
		Bus:       bus,
		Discovery: wallets,
		Sessions:  sessions,
		Balances:  balance.NewReader(logger),
		Workflow:  transfer.NewWorkflow(registry, sessions, logger),
	}, nil
}

// loadFromSource replaces the compiled-in chains with the stored ones when
// there are any and fills RPC endpoints the configuration does not set.
func loadFromSource(ctx context.Context, source dbconfig.Source, descriptors []types.ChainDescriptor, rpc map[string]string) ([]types.ChainDescriptor, map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, dbLoadTimeout)
	defer cancel()

	stored, err := source.LoadDescriptors(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load chains")
	}
	if len(stored) > 0 {
		descriptors = stored
	}

	urls, err := source.LoadRPCURLs(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load rpcs")
	}

	configured := make(map[string]bool, len(rpc))
	for id := range rpc {
		if normalized, err := types.NormalizeChainID(id); err == nil {
			configured[normalized] = true
		}
	}
	for id, url := range urls {
		if !configured[id] {
			rpc[id] = url
		}
	}
	return descriptors, rpc, nil
}

// Connect starts a session with the discovered provider whose uuid is id, or
// with the first discovered provider when id is empty.
func (a *App) Connect(ctx context.Context, id string) (*types.Session, error) {
	var announcement discovery.Announcement
	if id == "" {
		providers := a.Discovery.Providers()
		if len(providers) == 0 {
			return nil, xerrors.ErrProviderNotFound
		}
		announcement = providers[0]
	} else {
		found, err := a.Discovery.Find(id)
		if err != nil {
			return nil, err
		}
		announcement = found
	}
	return a.Sessions.Connect(ctx, announcement.Provider)
}

// Close ends the session and releases every contract client.
func (a *App) Close() {
	a.Sessions.Disconnect()
	a.Wallet.Close()
}
