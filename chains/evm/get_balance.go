package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Decimals returns the local decimals of the OFT.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - uint8: the token decimals.
// - error: an error if the contract call fails.
func (e *evm) Decimals(ctx context.Context) (uint8, error) {
	out, err := e.callContract(ctx, "decimals")
	if err != nil {
		return 0, err
	}

	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Errorf("unexpected decimals type %T", out[0])
	}
	return decimals, nil
}

// BalanceOf returns the OFT balance of account in the token's smallest unit.
//
// Parameters:
// - ctx: the context for managing the request.
// - account: the address to check balance for.
//
// Returns:
// - *big.Int: the token balance.
// - error: an error if the balance check fails.
func (e *evm) BalanceOf(ctx context.Context, account string) (*big.Int, error) {
	if !common.IsHexAddress(account) {
		return nil, errors.Errorf("invalid account address %q", account)
	}

	out, err := e.callContract(ctx, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return nil, err
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected balanceOf type %T", out[0])
	}
	return balance, nil
}

// NativeBalance returns the native currency balance of account in wei.
func (e *evm) NativeBalance(ctx context.Context, account string) (*big.Int, error) {
	if !common.IsHexAddress(account) {
		return nil, errors.Errorf("invalid account address %q", account)
	}

	client, err := e.getClient()
	if err != nil {
		return nil, err
	}

	balance, err := client.BalanceAt(ctx, common.HexToAddress(account), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get native token balance")
	}
	return balance, nil
}
