package evm

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ClipFinance/oft-client/chainmanager"
	"github.com/ClipFinance/oft-client/chains/evm/generated"
	"github.com/ClipFinance/oft-client/chains/evm/signer"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/connectionmonitor"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// TxTypeLegacy represents the legacy transaction type.
	TxTypeLegacy = 0
	// TxTypeEIP1559 represents the EIP-1559 transaction type.
	TxTypeEIP1559 = 2
	// defaultPollInterval is the receipt polling interval on HTTP endpoints.
	defaultPollInterval = time.Second
)

// Backend is the subset of the go-ethereum client used by the OFT binding.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SubscribeNewHead(ctx context.Context, ch chan<- *ethtypes.Header) (ethereum.Subscription, error)
	Close()
}

var _ Backend = (*ethclient.Client)(nil)

// evm is the OFT contract binding on an EVM chain.
type evm struct {
	config       *types.ChainConfig // Chain configuration.
	logger       *logrus.Logger     // Logger for logging events.
	chainID      *big.Int           // Parsed chain id used for signing.
	contract     common.Address     // OFT contract address.
	oftABI       abi.ABI            // Parsed OFT ABI.
	pollInterval time.Duration      // Receipt polling interval.

	// Protected fields with their own mutexes.
	clientMutex sync.RWMutex // Mutex for client.
	client      Backend      // Ethereum client.

	signerMutex sync.RWMutex  // Mutex for signer.
	signer      signer.Signer // Signer for signing transactions.

	monitorMutex sync.RWMutex                        // Mutex for connection monitor.
	monitor      connectionmonitor.ConnectionMonitor // Connection monitor.
}

// NewEvmChain creates a new OFT contract binding on an EVM chain.
//
// Parameters:
// - ctx: the context for managing the request.
// - config: the chain configuration.
// - logger: the logger for logging events.
//
// Returns:
// - types.TokenContract: the contract binding. Send is only available when a private key is configured.
// - error: an error if any issue occurs during creation.
func NewEvmChain(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.TokenContract, error) {
	client, err := ethclient.DialContext(ctx, config.RpcUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}

	chain, err := newEvm(config, client, logger)
	if err != nil {
		client.Close()
		return nil, err
	}

	if err := chain.initMonitor(ctx); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to init connection monitor")
	}

	return chain.build(), nil
}

// NewEvmChainWithBackend creates an OFT contract binding over an existing backend.
// No connection monitor is started; the caller owns the backend's lifecycle.
func NewEvmChainWithBackend(config *types.ChainConfig, backend Backend, logger *logrus.Logger) (types.TokenContract, error) {
	chain, err := newEvm(config, backend, logger)
	if err != nil {
		return nil, err
	}
	return chain.build(), nil
}

func newEvm(config *types.ChainConfig, client Backend, logger *logrus.Logger) (*evm, error) {
	if !common.IsHexAddress(config.ContractAddress) {
		return nil, errors.Errorf("invalid contract address %q", config.ContractAddress)
	}

	chainID, err := types.ParseChainID(config.ChainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse chain id")
	}

	oftABI, err := abi.JSON(strings.NewReader(generated.OFTABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse OFT ABI")
	}

	chain := &evm{
		config:       config,
		logger:       logger,
		chainID:      chainID,
		contract:     common.HexToAddress(config.ContractAddress),
		oftABI:       oftABI,
		pollInterval: defaultPollInterval,
		client:       client,
	}

	if config.PrivateKey != "" {
		s, err := signer.NewSignerFromHex(config.PrivateKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create signer")
		}
		chain.signer = s
	}

	return chain, nil
}

// build wraps the binding into a chain facade exposing the capabilities it supports.
func (e *evm) build() *chainmanager.Chain {
	builder := chainmanager.NewChainBuilder(e.config).
		WithFeeQuoter(e).
		WithTransactionWatcher(e).
		WithBalanceProvider(e).
		WithCloser(e.Close)

	e.signerMutex.RLock()
	if e.signer != nil {
		builder.WithTokenSender(e)
	}
	e.signerMutex.RUnlock()

	return builder.Build()
}

// Close should be called when the chain is no longer needed.
// It stops the connection monitor and closes the client.
func (e *evm) Close() {
	e.monitorMutex.Lock()
	if e.monitor != nil {
		e.monitor.Stop()
		e.monitor = nil
	}
	e.monitorMutex.Unlock()

	e.clientMutex.Lock()
	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
	e.clientMutex.Unlock()
}

// getClient returns the Ethereum client.
//
// Returns:
// - Backend: the Ethereum client.
// - error: an error if the client is closed.
func (e *evm) getClient() (Backend, error) {
	e.clientMutex.RLock()
	defer e.clientMutex.RUnlock()

	if e.client == nil {
		return nil, errors.New("client not initialized")
	}
	return e.client, nil
}

// callContract performs a read-only call of method on the OFT contract and
// returns the unpacked outputs.
func (e *evm) callContract(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	client, err := e.getClient()
	if err != nil {
		return nil, err
	}

	data, err := e.oftABI.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to pack %s data", method)
	}

	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &e.contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s", method)
	}

	if len(result) == 0 {
		return nil, errors.Errorf("empty result from %s call", method)
	}

	out, err := e.oftABI.Unpack(method, result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unpack %s result", method)
	}
	return out, nil
}

// receiptSucceeded reports whether the receipt status is successful.
func receiptSucceeded(receipt *ethtypes.Receipt) bool {
	return receipt.Status == ethtypes.ReceiptStatusSuccessful
}
