package types

import (
	"context"
	"math/big"
	"strings"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/pkg/errors"
)

// ChainDescriptor holds the static metadata of a chain the OFT is deployed on.
//
// Fields:
// - Name: the display name of the chain.
// - EndpointID: the LayerZero endpoint id of the chain.
// - ChainID: the hex encoded EVM chain id (e.g. "0x2f").
// - NativeTokenSymbol: the symbol of the chain's native currency.
// - ContractAddress: the OFT (or native OFT adapter) contract address.
// - NativeAdapter: true when the chain's native asset is the transferred token.
// - TokenDecimals: the local decimals of the transferred token.
type ChainDescriptor struct {
	Name              string `json:"name"`
	EndpointID        uint32 `json:"eid"`
	ChainID           string `json:"chainId"`
	NativeTokenSymbol string `json:"nativeToken"`
	ContractAddress   string `json:"contractAddress"`
	NativeAdapter     bool   `json:"nativeAdapter"`
	TokenDecimals     int32  `json:"tokenDecimals"`
}

// Equal reports whether two descriptors are structurally equal.
func (d ChainDescriptor) Equal(other ChainDescriptor) bool {
	return d == other
}

// ChainConfig holds the configuration for a token contract client on a specific chain.
//
// Fields:
// - Name: the name of the chain.
// - ChainType: the type of the chain.
// - ChainID: the hex encoded chain id.
// - RpcUrl: the URL for the chain's RPC endpoint.
// - TxType: the type of transactions supported by the chain.
// - WaitNBlocks: the number of blocks to wait for transaction confirmation.
// - PrivateKey: the private key for signing transactions.
// - ContractAddress: the OFT contract the client is bound to.
type ChainConfig struct {
	Name            string
	ChainType       ChainType
	ChainID         string
	RpcUrl          string
	TxType          uint64
	WaitNBlocks     uint64
	PrivateKey      string
	ContractAddress string
}

// ParseChainID parses a hex ("0x2f") or decimal ("47") chain id.
func ParseChainID(id string) (*big.Int, error) {
	s := strings.ToLower(strings.TrimSpace(id))
	if s == "" {
		return nil, xerrors.ErrInvalidChainID
	}

	base := 10
	if strings.HasPrefix(s, "0x") {
		s = s[2:]
		base = 16
	}

	value, ok := new(big.Int).SetString(s, base)
	if !ok || value.Sign() <= 0 {
		return nil, errors.Wrapf(xerrors.ErrInvalidChainID, "%q", id)
	}
	return value, nil
}

// NormalizeChainID returns the canonical lower-case hex form of a chain id.
func NormalizeChainID(id string) (string, error) {
	value, err := ParseChainID(id)
	if err != nil {
		return "", err
	}
	return "0x" + value.Text(16), nil
}

// FeeQuoter provides the cross-chain fee quote.
type FeeQuoter interface {
	// QuoteSend returns the messaging fee for sending param.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - param: the send parameter tuple.
	// - payInLzToken: whether the fee is paid in the LayerZero token.
	//
	// Returns:
	// - *MessagingFee: the native and lz token fee.
	// - error: an error if the contract call fails.
	QuoteSend(ctx context.Context, param SendParam, payInLzToken bool) (*MessagingFee, error)
}

// TokenSender submits the cross-chain send transaction.
type TokenSender interface {
	// Send submits an OFT send.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - param: the send parameter tuple.
	// - fee: the messaging fee to pay.
	// - refundAddress: the address excess fees are refunded to.
	// - value: the native value attached to the transaction.
	//
	// Returns:
	// - *Transaction: the submitted transaction.
	// - error: an error if building, signing or broadcasting fails.
	Send(ctx context.Context, param SendParam, fee MessagingFee, refundAddress string, value *big.Int) (*Transaction, error)
}

// TransactionWatcher provides transaction confirmation functionality.
type TransactionWatcher interface {
	// WaitTransactionConfirmation waits for the confirmation of a transaction.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - tx: the transaction to wait for confirmation.
	//
	// Returns:
	// - TransactionStatus: TxDone when the receipt is successful, TxFailed on revert.
	// - error: an error if the confirmation cannot be determined.
	WaitTransactionConfirmation(ctx context.Context, tx *Transaction) (TransactionStatus, error)
}

// BalanceProvider reads token and native balances.
type BalanceProvider interface {
	Decimals(ctx context.Context) (uint8, error)
	BalanceOf(ctx context.Context, account string) (*big.Int, error)
	NativeBalance(ctx context.Context, account string) (*big.Int, error)
}

// TokenContract combines the capabilities of a deployed OFT contract.
type TokenContract interface {
	FeeQuoter
	TokenSender
	TransactionWatcher
	BalanceProvider
}
