package chainmanager

import (
	"github.com/ClipFinance/oft-client/common/types"
)

// ChainBuilder is a builder pattern implementation for token contract clients.
// It allows setting the fee quoter, token sender, transaction watcher and
// balance provider a chain implementation supports.
type ChainBuilder struct {
	config   *types.ChainConfig       // Chain configuration.
	quoter   types.FeeQuoter          // Fee quoter implementation.
	sender   types.TokenSender        // Token sender implementation.
	watcher  types.TransactionWatcher // Transaction watcher implementation.
	provider types.BalanceProvider    // Balance provider implementation.
	closer   func()                   // Releases the underlying connection.
}

// NewChainBuilder creates a new chain builder instance.
//
// Parameters:
// - config: the chain configuration.
//
// Returns:
// - *ChainBuilder: a new ChainBuilder instance.
func NewChainBuilder(config *types.ChainConfig) *ChainBuilder {
	return &ChainBuilder{
		config: config,
	}
}

// WithFeeQuoter sets fee quoter implementation.
//
// Parameters:
// - quoter: the fee quoter implementation.
//
// Returns:
// - *ChainBuilder: the updated ChainBuilder instance.
func (b *ChainBuilder) WithFeeQuoter(quoter types.FeeQuoter) *ChainBuilder {
	b.quoter = quoter
	return b
}

// WithTokenSender sets token sender implementation.
//
// Parameters:
// - sender: the token sender implementation.
//
// Returns:
// - *ChainBuilder: the updated ChainBuilder instance.
func (b *ChainBuilder) WithTokenSender(sender types.TokenSender) *ChainBuilder {
	b.sender = sender
	return b
}

// WithTransactionWatcher sets transaction watcher implementation.
//
// Parameters:
// - watcher: the transaction watcher implementation.
//
// Returns:
// - *ChainBuilder: the updated ChainBuilder instance.
func (b *ChainBuilder) WithTransactionWatcher(watcher types.TransactionWatcher) *ChainBuilder {
	b.watcher = watcher
	return b
}

// WithBalanceProvider sets balance provider implementation.
//
// Parameters:
// - provider: the balance provider implementation.
//
// Returns:
// - *ChainBuilder: the updated ChainBuilder instance.
func (b *ChainBuilder) WithBalanceProvider(provider types.BalanceProvider) *ChainBuilder {
	b.provider = provider
	return b
}

// WithCloser sets the function releasing the chain's connection.
func (b *ChainBuilder) WithCloser(closer func()) *ChainBuilder {
	b.closer = closer
	return b
}

// Build creates a new chain instance with configured implementations.
//
// Returns:
// - *Chain: a new Chain instance with the configured implementations.
func (b *ChainBuilder) Build() *Chain {
	return NewChain(b.config, b.quoter, b.sender, b.watcher, b.provider, b.closer)
}
