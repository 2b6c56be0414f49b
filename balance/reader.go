package balance

import (
	"context"
	"math/big"
	"sync"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Reader reads the transferable token balance of the session account.
type Reader struct {
	logger *logrus.Logger

	mu   sync.RWMutex
	last string
}

// NewReader creates a balance reader with an empty last value.
func NewReader(logger *logrus.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read returns the balance of the session account on chain as a decimal string.
// On the native adapter chain the token is the native currency; elsewhere the
// OFT contract's balanceOf is scaled by its decimals.
//
// Parameters:
// - ctx: the context for the contract calls.
// - session: the connected wallet session.
// - chain: the chain to read the balance on.
//
// Returns:
// - string: the formatted balance, e.g. "12.5".
// - error: an error if there is no session or a contract call fails.
func (r *Reader) Read(ctx context.Context, session *types.Session, chain types.ChainDescriptor) (string, error) {
	if session == nil || session.Provider == nil {
		return "", xerrors.ErrNoSession
	}

	contract, err := session.Provider.TokenContract(ctx, chain)
	if err != nil {
		return "", errors.Wrap(err, "failed to get token contract")
	}

	if chain.NativeAdapter {
		balance, err := contract.NativeBalance(ctx, session.Account)
		if err != nil {
			return "", errors.Wrap(err, "failed to get native balance")
		}
		return Format(balance, chain.TokenDecimals), nil
	}

	decimals, err := contract.Decimals(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get token decimals")
	}

	balance, err := contract.BalanceOf(ctx, session.Account)
	if err != nil {
		return "", errors.Wrap(err, "failed to get token balance")
	}
	return Format(balance, int32(decimals)), nil
}

// Refresh reads the balance and remembers it. On failure the error is logged
// and the previous value is returned unchanged.
func (r *Reader) Refresh(ctx context.Context, session *types.Session, chain types.ChainDescriptor) string {
	balance, err := r.Read(ctx, session, chain)
	if err != nil {
		r.logger.WithField("chain", chain.Name).WithError(err).Warn("Failed to fetch balance")
		return r.Last()
	}

	r.mu.Lock()
	r.last = balance
	r.mu.Unlock()
	return balance
}

// Last returns the most recently read balance, or an empty string.
func (r *Reader) Last() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// Format renders an amount in the token's smallest unit as a decimal string.
func Format(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}
