package evm

import (
	"context"
	"math/big"

	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Send submits the contract's send call signed by the configured key.
//
// Parameters:
// - ctx: the context for managing the request.
// - param: the send parameter tuple.
// - fee: the messaging fee to pay.
// - refundAddress: the address excess fees are refunded to.
// - value: the native value attached to the transaction.
//
// Returns:
// - *types.Transaction: the transaction details.
// - error: an error if the client or signer is not initialized or if the transaction fails.
func (e *evm) Send(ctx context.Context, param types.SendParam, fee types.MessagingFee, refundAddress string, value *big.Int) (*types.Transaction, error) {
	if !common.IsHexAddress(refundAddress) {
		return nil, errors.Errorf("invalid refund address %q", refundAddress)
	}
	if value == nil {
		value = big.NewInt(0)
	}

	client, err := e.getClient()
	if err != nil {
		return nil, err
	}

	from, err := e.signerAddress()
	if err != nil {
		return nil, err
	}

	data, err := e.oftABI.Pack("send", param, fee, common.HexToAddress(refundAddress))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack send data")
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce")
	}

	tx, err := e.prepareTransaction(ctx, nonce, e.contract, value, data)
	if err != nil {
		return nil, err
	}

	signedTx, err := e.signAndSendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"chain":  e.config.Name,
		"txHash": signedTx.Hash().Hex(),
		"dstEid": param.DstEid,
		"value":  value.String(),
	}).Info("Send transaction submitted")

	return &types.Transaction{
		Hash:    signedTx.Hash().Hex(),
		From:    from.Hex(),
		To:      e.contract.Hex(),
		Value:   value.String(),
		Nonce:   nonce,
		ChainID: e.config.ChainID,
		DstEid:  param.DstEid,
	}, nil
}

// prepareTransaction prepares a transaction with the given parameters.
//
// Parameters:
// - ctx: the context for managing the request.
// - nonce: the nonce for the transaction.
// - to: the contract the transaction calls.
// - value: the native value to send with the transaction.
// - data: the input data for the transaction.
//
// Returns:
// - *ethtypes.Transaction: the prepared transaction.
// - error: an error if the gas estimation, gas price retrieval, or client initialization fails.
func (e *evm) prepareTransaction(ctx context.Context, nonce uint64, to common.Address, value *big.Int, data []byte) (*ethtypes.Transaction, error) {
	estimatedGas, err := e.EstimateGas(ctx, to, value, data)
	if err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Warn("Failed to estimate gas")
		return nil, errors.Wrap(err, "failed to estimate gas")
	}

	gasLimit := estimatedGas * 110 / 100

	if e.config.TxType == TxTypeEIP1559 {
		gasPriceData, err := e.getEIP1559GasPrice(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get EIP-1559 gas price")
		}

		return ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   new(big.Int).Set(e.chainID),
			Nonce:     nonce,
			GasFeeCap: gasPriceData.MaxFeePerGas,
			GasTipCap: gasPriceData.MaxPriorityFeePerGas,
			Gas:       gasLimit,
			To:        &to,
			Value:     value,
			Data:      data,
		}), nil
	}

	gasPrice, err := e.getLegacyGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	return ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	}), nil
}

// signAndSendTransaction signs and sends the prepared transaction.
//
// Parameters:
// - ctx: the context for managing the request.
// - tx: the prepared transaction to be signed and sent.
//
// Returns:
// - *ethtypes.Transaction: the signed and sent transaction.
// - error: an error if the client or signer is not initialized, or if the signing or sending fails.
func (e *evm) signAndSendTransaction(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Transaction, error) {
	client, err := e.getClient()
	if err != nil {
		return nil, err
	}

	e.signerMutex.RLock()
	signer := e.signer
	e.signerMutex.RUnlock()

	if signer == nil {
		return nil, errors.New("signer not initialized")
	}

	signedTx, err := signer.SignTx(tx, e.chainID)
	if err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Error("Failed to sign transaction")
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	if err = client.SendTransaction(ctx, signedTx); err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Error("Failed to send transaction")
		return nil, errors.Wrap(err, "failed to send transaction")
	}

	return signedTx, nil
}
