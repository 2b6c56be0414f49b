package wallet

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/ClipFinance/oft-client/chains"
	"github.com/ClipFinance/oft-client/chains/evm/signer"
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultName = "Keyed Wallet"
	defaultRDNS = "io.github.clipfinance.oftclient"
)

// Config configures a KeyedProvider.
//
// Fields:
// - Info: the announced identity. A missing UUID is generated.
// - Keys: hex encoded private keys. The first key is the active account.
// - ChainID: the chain the wallet starts on.
// - RPC: RPC endpoint per chain id.
// - TxType: the transaction type used for sends (0 legacy, 2 EIP-1559).
// - WaitNBlocks: confirmations to wait for after a send is mined.
type Config struct {
	Info        types.ProviderInfo
	Keys        []string
	ChainID     string
	RPC         map[string]string
	TxType      uint64
	WaitNBlocks uint64
}

type contractKey struct {
	chainID  string
	account  common.Address
	contract common.Address
}

// KeyedProvider is a wallet provider backed by local private keys. Contract
// clients are created on demand through the chain factory and cached per
// chain, account and contract.
type KeyedProvider struct {
	info        types.ProviderInfo
	factory     chains.ChainFactory
	logger      *logrus.Logger
	txType      uint64
	waitNBlocks uint64

	mu        sync.RWMutex
	keys      map[common.Address]string
	accounts  []common.Address
	chainID   string
	rpc       map[string]string
	contracts map[contractKey]types.TokenContract

	subsMu  sync.Mutex
	subs    map[uint64]chan<- []string
	nextSub uint64
}

var _ types.WalletProvider = (*KeyedProvider)(nil)

// NewKeyedProvider creates a wallet provider from configuration.
//
// Parameters:
// - config: the wallet configuration.
// - factory: the factory creating contract clients.
// - logger: the logger for logging purposes.
//
// Returns:
// - *KeyedProvider: the provider.
// - error: ErrInvalidConfig for malformed keys, chain ids or uuid.
func NewKeyedProvider(config Config, factory chains.ChainFactory, logger *logrus.Logger) (*KeyedProvider, error) {
	if factory == nil {
		return nil, xerrors.ErrFactoryNotProvided
	}

	info := config.Info
	if info.UUID == "" {
		info.UUID = uuid.NewString()
	} else if _, err := uuid.Parse(info.UUID); err != nil {
		return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "wallet uuid %q", info.UUID)
	}
	if info.Name == "" {
		info.Name = defaultName
	}
	if info.RDNS == "" {
		info.RDNS = defaultRDNS
	}

	p := &KeyedProvider{
		info:        info,
		factory:     factory,
		logger:      logger,
		txType:      config.TxType,
		waitNBlocks: config.WaitNBlocks,
		keys:        make(map[common.Address]string, len(config.Keys)),
		rpc:         make(map[string]string, len(config.RPC)),
		contracts:   make(map[contractKey]types.TokenContract),
		subs:        make(map[uint64]chan<- []string),
	}

	for i, key := range config.Keys {
		privKey, err := signer.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "wallet key %d: %v", i, err)
		}
		address := crypto.PubkeyToAddress(privKey.PublicKey)
		if _, exists := p.keys[address]; exists {
			continue
		}
		p.keys[address] = hex.EncodeToString(crypto.FromECDSA(privKey))
		p.accounts = append(p.accounts, address)
	}

	for id, url := range config.RPC {
		normalized, err := types.NormalizeChainID(id)
		if err != nil {
			return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "rpc chain id %q", id)
		}
		p.rpc[normalized] = url
	}

	if config.ChainID != "" {
		normalized, err := types.NormalizeChainID(config.ChainID)
		if err != nil {
			return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "wallet chain id %q", config.ChainID)
		}
		p.chainID = normalized
	}

	return p, nil
}

// Info returns the identity the provider announces itself with.
func (p *KeyedProvider) Info() types.ProviderInfo {
	return p.info
}

// RequestAccounts returns the accounts, active account first.
func (p *KeyedProvider) RequestAccounts(_ context.Context) ([]string, error) {
	accounts := p.accountList()
	if len(accounts) == 0 {
		return nil, xerrors.ErrNoAccounts
	}
	return accounts, nil
}

// ChainID returns the chain the wallet is currently on.
func (p *KeyedProvider) ChainID(_ context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.chainID == "" {
		return "", errors.New("wallet is not on any chain")
	}
	return p.chainID, nil
}

// SwitchChain moves the wallet to chainID. Subscribers receive the current
// account list so they can pick up the new chain.
func (p *KeyedProvider) SwitchChain(chainID string) error {
	normalized, err := types.NormalizeChainID(chainID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if _, ok := p.rpc[normalized]; !ok {
		p.mu.Unlock()
		return errors.Errorf("no rpc endpoint configured for chain %s", normalized)
	}
	changed := p.chainID != normalized
	p.chainID = normalized
	p.mu.Unlock()

	if changed {
		p.logger.WithFields(logrus.Fields{"wallet": p.info.Name, "chain": normalized}).Info("Wallet switched chain")
		p.emit(p.accountList())
	}
	return nil
}

// SelectAccount makes address the active account.
func (p *KeyedProvider) SelectAccount(address string) error {
	if !common.IsHexAddress(address) {
		return errors.Errorf("invalid account address %q", address)
	}
	target := common.HexToAddress(address)

	p.mu.Lock()
	idx := p.indexOf(target)
	if idx < 0 {
		p.mu.Unlock()
		return errors.Errorf("unknown account %s", target.Hex())
	}
	if idx == 0 {
		p.mu.Unlock()
		return nil
	}
	reordered := make([]common.Address, 0, len(p.accounts))
	reordered = append(reordered, target)
	reordered = append(reordered, p.accounts[:idx]...)
	reordered = append(reordered, p.accounts[idx+1:]...)
	p.accounts = reordered
	p.mu.Unlock()

	p.emit(p.accountList())
	return nil
}

// RemoveAccount disconnects address. Removing the last account notifies
// subscribers with an empty list.
func (p *KeyedProvider) RemoveAccount(address string) error {
	target := common.HexToAddress(address)

	p.mu.Lock()
	idx := p.indexOf(target)
	if idx < 0 {
		p.mu.Unlock()
		return errors.Errorf("unknown account %s", target.Hex())
	}
	p.accounts = append(p.accounts[:idx:idx], p.accounts[idx+1:]...)
	delete(p.keys, target)
	p.mu.Unlock()

	p.emit(p.accountList())
	return nil
}

// SubscribeAccountsChanged registers ch for account change notifications.
// Notifications are dropped if ch is not ready to receive.
func (p *KeyedProvider) SubscribeAccountsChanged(ch chan<- []string) types.Subscription {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch

	return &subscription{unsubscribe: func() {
		p.subsMu.Lock()
		defer p.subsMu.Unlock()
		delete(p.subs, id)
	}}
}

// TokenContract returns the OFT contract on chain, signing with the active account.
//
// Parameters:
// - ctx: the context for dialing the RPC endpoint.
// - chain: the chain descriptor.
//
// Returns:
// - types.TokenContract: the contract client.
// - error: an error if no account is connected, no RPC endpoint is configured
// for the chain, or the client cannot be created.
func (p *KeyedProvider) TokenContract(ctx context.Context, chain types.ChainDescriptor) (types.TokenContract, error) {
	chainID, err := types.NormalizeChainID(chain.ChainID)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	if len(p.accounts) == 0 {
		p.mu.RUnlock()
		return nil, xerrors.ErrNoAccounts
	}
	account := p.accounts[0]
	privateKey := p.keys[account]
	rpcURL, ok := p.rpc[chainID]
	key := contractKey{chainID: chainID, account: account, contract: common.HexToAddress(chain.ContractAddress)}
	cached, found := p.contracts[key]
	p.mu.RUnlock()

	if found {
		return cached, nil
	}
	if !ok {
		return nil, errors.Errorf("no rpc endpoint configured for chain %s", chainID)
	}

	contract, err := p.factory.CreateChain(ctx, &types.ChainConfig{
		Name:            chain.Name,
		ChainType:       types.EVM,
		ChainID:         chainID,
		RpcUrl:          rpcURL,
		TxType:          p.txType,
		WaitNBlocks:     p.waitNBlocks,
		PrivateKey:      privateKey,
		ContractAddress: chain.ContractAddress,
	}, p.logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s contract client", chain.Name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.contracts[key]; ok {
		closeContract(contract)
		return existing, nil
	}
	p.contracts[key] = contract
	return contract, nil
}

// Close releases every cached contract client.
func (p *KeyedProvider) Close() {
	p.mu.Lock()
	contracts := p.contracts
	p.contracts = make(map[contractKey]types.TokenContract)
	p.mu.Unlock()

	for _, contract := range contracts {
		closeContract(contract)
	}
}

func (p *KeyedProvider) accountList() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	accounts := make([]string, len(p.accounts))
	for i, account := range p.accounts {
		accounts[i] = account.Hex()
	}
	return accounts
}

func (p *KeyedProvider) indexOf(address common.Address) int {
	for i, account := range p.accounts {
		if account == address {
			return i
		}
	}
	return -1
}

func (p *KeyedProvider) emit(accounts []string) {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	for id, ch := range p.subs {
		select {
		case ch <- append([]string{}, accounts...):
		default:
			p.logger.WithFields(logrus.Fields{
				"wallet":       p.info.Name,
				"subscription": id,
			}).Warn("Dropped accountsChanged notification")
		}
	}
}

func closeContract(contract types.TokenContract) {
	if closer, ok := contract.(interface{ Close() }); ok {
		closer.Close()
	}
}

type subscription struct {
	once        sync.Once
	unsubscribe func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}
