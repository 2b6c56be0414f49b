package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// GasPriceData represents the gas price data for EIP-1559 transactions.
type GasPriceData struct {
	MaxFeePerGas         *big.Int // The maximum fee per gas.
	MaxPriorityFeePerGas *big.Int // The maximum priority fee per gas.
}

// EstimateGas estimates the gas required for a transaction from the signer.
//
// Parameters:
// - ctx: the context for managing the request.
// - to: the contract the transaction calls.
// - value: the native value to send with the transaction.
// - data: the input data for the transaction.
//
// Returns:
// - uint64: the estimated gas required for the transaction.
// - error: an error if the client or signer is not initialized or if the gas estimation fails.
func (e *evm) EstimateGas(ctx context.Context, to common.Address, value *big.Int, data []byte) (uint64, error) {
	client, err := e.getClient()
	if err != nil {
		return 0, err
	}

	from, err := e.signerAddress()
	if err != nil {
		return 0, err
	}

	return client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
}

// getEIP1559GasPrice retrieves the gas price data for EIP-1559 transactions.
// The fee cap is 130% of the latest base fee plus the suggested tip.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - *GasPriceData: the gas price data for EIP-1559 transactions.
// - error: an error if the client is not initialized or if there is an issue retrieving the gas price data.
func (e *evm) getEIP1559GasPrice(ctx context.Context) (*GasPriceData, error) {
	client, err := e.getClient()
	if err != nil {
		return nil, err
	}

	suggestedTip, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Error("Failed to get suggested gas tip")
		suggestedTip = big.NewInt(1)
	}

	if suggestedTip.Sign() == 0 {
		suggestedTip = big.NewInt(1)
	}

	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Warn("Failed to get header by number")
		return nil, errors.Wrap(err, "failed to get header by number")
	}

	baseFee := header.BaseFee
	if baseFee == nil {
		e.logger.WithField("chain", e.config.Name).Warn("Base fee is nil")
		return nil, errors.New("base fee is nil")
	}

	baseFeeBuf := new(big.Int).Mul(baseFee, big.NewInt(130))
	baseFeeBuf = baseFeeBuf.Div(baseFeeBuf, big.NewInt(100))
	maxFeePerGas := new(big.Int).Add(baseFeeBuf, suggestedTip)

	if maxFeePerGas.Cmp(suggestedTip) <= 0 {
		maxFeePerGas = new(big.Int).Add(suggestedTip, baseFee)
	}

	return &GasPriceData{
		MaxFeePerGas:         maxFeePerGas,
		MaxPriorityFeePerGas: suggestedTip,
	}, nil
}

// getLegacyGasPrice returns 150% of the node's suggested gas price.
func (e *evm) getLegacyGasPrice(ctx context.Context) (*big.Int, error) {
	client, err := e.getClient()
	if err != nil {
		return nil, err
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas price")
	}

	gasPrice = new(big.Int).Mul(gasPrice, big.NewInt(150))
	return gasPrice.Div(gasPrice, big.NewInt(100)), nil
}
