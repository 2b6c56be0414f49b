package evm

import (
	"context"
	"sync"
	"time"

	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// subscriptionHandler manages block header subscriptions
type subscriptionHandler struct {
	subscription ethereum.Subscription
	headerChan   chan *ethtypes.Header
	sync.RWMutex
}

// close safely unsubscribes. The header channel is left to the garbage
// collector since the subscription may still be writing to it.
func (h *subscriptionHandler) close() {
	h.Lock()
	defer h.Unlock()
	if h.subscription != nil {
		h.subscription.Unsubscribe()
		h.subscription = nil
	}
}

// WaitTransactionConfirmation waits for the receipt of a transaction and
// WaitNBlocks confirmations on top of it.
//
// Parameters:
// - ctx: the context for managing the request.
// - tx: the transaction to wait for confirmation.
//
// Returns:
// - types.TransactionStatus: TxDone on a successful receipt, TxFailed on revert.
// - error: an error if the client is not initialized or the receipt cannot be retrieved.
func (e *evm) WaitTransactionConfirmation(ctx context.Context, tx *types.Transaction) (types.TransactionStatus, error) {
	if tx == nil || tx.Hash == "" {
		return types.TxFailed, errors.New("transaction hash is empty")
	}

	if types.GetSubscriptionMode(e.config.RpcUrl).CanSubscribe() {
		return e.waitTransactionConfirmationWS(ctx, tx)
	}
	return e.waitTransactionConfirmationHTTP(ctx, tx)
}

// waitTransactionConfirmationWS waits for transaction confirmation using a head subscription.
func (e *evm) waitTransactionConfirmationWS(ctx context.Context, tx *types.Transaction) (types.TransactionStatus, error) {
	client, err := e.getClient()
	if err != nil {
		return types.TxFailed, err
	}

	handler := &subscriptionHandler{
		headerChan: make(chan *ethtypes.Header, 1),
	}
	defer handler.close()

	sub, err := client.SubscribeNewHead(ctx, handler.headerChan)
	if err != nil {
		return types.TxFailed, errors.Wrap(err, "failed to subscribe to new headers")
	}

	handler.Lock()
	handler.subscription = sub
	handler.Unlock()

	for {
		select {
		case <-ctx.Done():
			e.logger.WithField("txHash", tx.Hash).Error("WaitTransactionConfirmation: context done")
			return types.TxFailed, ctx.Err()

		case err := <-sub.Err():
			return types.TxFailed, errors.Wrap(err, "subscription error")

		case header := <-handler.headerChan:
			if header == nil {
				continue
			}

			status, done, err := e.checkReceipt(ctx, client, tx, header.Number.Uint64())
			if err != nil || done {
				return status, err
			}
		}
	}
}

// waitTransactionConfirmationHTTP waits for transaction confirmation using HTTP polling
func (e *evm) waitTransactionConfirmationHTTP(ctx context.Context, tx *types.Transaction) (types.TransactionStatus, error) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.WithField("txHash", tx.Hash).Error("WaitTransactionConfirmation: context done")
			return types.TxFailed, ctx.Err()

		case <-ticker.C:
			client, err := e.getClient()
			if err != nil {
				return types.TxFailed, err
			}

			currentBlock, err := client.BlockNumber(ctx)
			if err != nil {
				return types.TxFailed, errors.Wrap(err, "failed to get current block number")
			}

			status, done, err := e.checkReceipt(ctx, client, tx, currentBlock)
			if err != nil || done {
				return status, err
			}
		}
	}
}

// checkReceipt looks up the receipt of tx and reports whether it is final at currentBlock.
//
// Returns:
// - types.TransactionStatus: the receipt outcome when done.
// - bool: true when the receipt has enough confirmations.
// - error: an error if the receipt lookup fails for a reason other than not found.
func (e *evm) checkReceipt(ctx context.Context, client Backend, tx *types.Transaction, currentBlock uint64) (types.TransactionStatus, bool, error) {
	receipt, err := client.TransactionReceipt(ctx, common.HexToHash(tx.Hash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return types.TxPending, false, nil
		}
		return types.TxFailed, false, errors.Wrap(err, "failed to get transaction receipt")
	}

	if currentBlock < receipt.BlockNumber.Uint64()+e.config.WaitNBlocks {
		return types.TxPending, false, nil
	}

	fields := logrus.Fields{
		"chain":  e.config.Name,
		"txHash": tx.Hash,
		"block":  receipt.BlockNumber.Uint64(),
	}

	if receiptSucceeded(receipt) {
		e.logger.WithFields(fields).Info("Transaction confirmed")
		return types.TxDone, true, nil
	}

	e.logger.WithFields(fields).Warn("Transaction reverted")
	return types.TxFailed, true, nil
}
