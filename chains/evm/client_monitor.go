package evm

import (
	"context"

	"github.com/ClipFinance/oft-client/connectionmonitor"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// evmConnectionManager implements the BlockchainClient interface and manages the connection to the EVM chain.
type evmConnectionManager struct {
	chain *evm // Reference to the EVM chain instance.
}

// initMonitor initializes the connection monitor for the EVM chain.
//
// Parameters:
// - ctx: the context for managing the initialization process.
//
// Returns:
// - error: an error if there is an issue starting the connection monitor.
func (e *evm) initMonitor(ctx context.Context) error {
	e.monitorMutex.Lock()
	defer e.monitorMutex.Unlock()

	connectionManager := &evmConnectionManager{chain: e}
	e.monitor = connectionmonitor.NewConnectionMonitor(connectionManager, e.logger, e.config.Name)
	return e.monitor.Start(ctx)
}

// CheckConnection checks the RPC endpoint by retrieving the current block number.
func (w *evmConnectionManager) CheckConnection(ctx context.Context) error {
	client, err := w.chain.getClient()
	if err != nil {
		return err
	}

	_, err = client.BlockNumber(ctx)
	return err
}

// Reconnect replaces the client with a freshly dialed one. Calls in flight on
// the old client fail and are not replayed.
func (w *evmConnectionManager) Reconnect(ctx context.Context) error {
	client, err := ethclient.DialContext(ctx, w.chain.config.RpcUrl)
	if err != nil {
		return errors.Wrap(err, "failed to dial rpc")
	}

	w.chain.clientMutex.Lock()
	defer w.chain.clientMutex.Unlock()

	if w.chain.client != nil {
		w.chain.client.Close()
	}
	w.chain.client = client

	return nil
}
