package chainmanager

import (
	"context"
	"math/big"
	"sync"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/pkg/errors"
)

// ErrNotImplemented is returned when a chain lacks a capability, e.g. sending
// from a chain client created without a signing key.
var ErrNotImplemented = xerrors.ErrNotImplemented

// Chain implements types.TokenContract with thread-safe access to dependencies.
// Each dependency is protected by a read-write mutex to ensure thread-safe access.
type Chain struct {
	config   *types.ChainConfig       // Chain configuration.
	quoter   types.FeeQuoter          // Fee quoter implementation.
	sender   types.TokenSender        // Token sender implementation.
	watcher  types.TransactionWatcher // Transaction watcher implementation.
	provider types.BalanceProvider    // Balance provider implementation.
	closer   func()

	// Mutexes for thread-safe access to dependencies.
	quoterMutex   sync.RWMutex // Mutex for fee quoter.
	senderMutex   sync.RWMutex // Mutex for token sender.
	watcherMutex  sync.RWMutex // Mutex for transaction watcher.
	providerMutex sync.RWMutex // Mutex for balance provider.
	closeOnce     sync.Once
}

var _ types.TokenContract = (*Chain)(nil)

// NewChain creates a new Chain instance.
//
// Parameters:
// - config: the chain configuration.
// - quoter: the fee quoter implementation.
// - sender: the token sender implementation.
// - watcher: the transaction watcher implementation.
// - provider: the balance provider implementation.
// - closer: releases the underlying connection, may be nil.
//
// Returns:
// - *Chain: a new Chain instance.
func NewChain(
	config *types.ChainConfig,
	quoter types.FeeQuoter,
	sender types.TokenSender,
	watcher types.TransactionWatcher,
	provider types.BalanceProvider,
	closer func(),
) *Chain {
	return &Chain{
		config:   config,
		quoter:   quoter,
		sender:   sender,
		watcher:  watcher,
		provider: provider,
		closer:   closer,
	}
}

// QuoteSend quotes the messaging fee with thread-safe access.
// If the quoter is not implemented, it returns an error.
func (c *Chain) QuoteSend(ctx context.Context, param types.SendParam, payInLzToken bool) (*types.MessagingFee, error) {
	c.quoterMutex.RLock()
	defer c.quoterMutex.RUnlock()

	if c.quoter == nil {
		return nil, c.unsupported("quoteSend")
	}
	return c.quoter.QuoteSend(ctx, param, payInLzToken)
}

// Send submits the send transaction with thread-safe access.
// If the sender is not implemented, it returns an error.
func (c *Chain) Send(ctx context.Context, param types.SendParam, fee types.MessagingFee, refundAddress string, value *big.Int) (*types.Transaction, error) {
	c.senderMutex.RLock()
	defer c.senderMutex.RUnlock()

	if c.sender == nil {
		return nil, c.unsupported("send")
	}
	return c.sender.Send(ctx, param, fee, refundAddress, value)
}

// WaitTransactionConfirmation waits for transaction confirmation with thread-safe access.
// If the watcher is not implemented, it returns an error.
//
// Parameters:
// - ctx: context for managing the lifecycle of the transaction confirmation.
// - tx: the transaction to be confirmed.
//
// Returns:
// - types.TransactionStatus: the outcome of the transaction.
// - error: an error if the watcher is not implemented or if any issue occurs during confirmation.
func (c *Chain) WaitTransactionConfirmation(ctx context.Context, tx *types.Transaction) (types.TransactionStatus, error) {
	c.watcherMutex.RLock()
	defer c.watcherMutex.RUnlock()

	if c.watcher == nil {
		return types.TxFailed, c.unsupported("receipt wait")
	}
	return c.watcher.WaitTransactionConfirmation(ctx, tx)
}

func (c *Chain) Decimals(ctx context.Context) (uint8, error) {
	provider := c.getProvider()
	if provider == nil {
		return 0, c.unsupported("decimals")
	}
	return provider.Decimals(ctx)
}

func (c *Chain) BalanceOf(ctx context.Context, account string) (*big.Int, error) {
	provider := c.getProvider()
	if provider == nil {
		return nil, c.unsupported("balanceOf")
	}
	return provider.BalanceOf(ctx, account)
}

func (c *Chain) NativeBalance(ctx context.Context, account string) (*big.Int, error) {
	provider := c.getProvider()
	if provider == nil {
		return nil, c.unsupported("native balance")
	}
	return provider.NativeBalance(ctx, account)
}

// unsupported reports a capability the chain was built without.
func (c *Chain) unsupported(op string) error {
	return errors.Wrapf(ErrNotImplemented, "%s on %s", op, c.config.Name)
}

// Close releases the underlying connection. It is safe to call more than once.
func (c *Chain) Close() {
	c.closeOnce.Do(func() {
		if c.closer != nil {
			c.closer()
		}
	})
}

func (c *Chain) getProvider() types.BalanceProvider {
	c.providerMutex.RLock()
	defer c.providerMutex.RUnlock()
	return c.provider
}
