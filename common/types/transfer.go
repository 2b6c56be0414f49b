package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TransferRequest is the user's transfer form. SourceChainID may be left empty
// to use the chain the wallet is currently on.
type TransferRequest struct {
	SourceChainID      string `json:"sourceChainId,omitempty"`
	DestinationChainID string `json:"destinationChainId"`
	Recipient          string `json:"recipient"`
	Amount             string `json:"amount"`
}

// FeeEstimate is a snapshot of a successful quote. A send may only use it while
// its amount, source chain and destination chain equal the live form.
type FeeEstimate struct {
	SourceChain      ChainDescriptor `json:"sourceChain"`
	DestinationChain ChainDescriptor `json:"destinationChain"`
	Recipient        string          `json:"recipient"`
	Amount           *big.Int        `json:"amount"`
	NativeFee        *big.Int        `json:"nativeFee"`
	MsgValue         *big.Int        `json:"msgValue"`
	SendParam        SendParam       `json:"sendParam"`
	QuotedAt         time.Time       `json:"quotedAt"`
}

// Mismatch compares the estimate with the live form values and returns the name
// of the first differing field, or an empty string when they match.
func (e *FeeEstimate) Mismatch(amount *big.Int, source, destination ChainDescriptor, recipient string) string {
	switch {
	case e.Amount == nil || amount == nil || e.Amount.Cmp(amount) != 0:
		return "amount"
	case !e.SourceChain.Equal(source):
		return "sourceChain"
	case !e.DestinationChain.Equal(destination):
		return "destinationChain"
	case common.HexToAddress(e.Recipient) != common.HexToAddress(recipient):
		return "recipient"
	default:
		return ""
	}
}

// Clone returns a deep copy so callers cannot mutate the cached estimate.
func (e *FeeEstimate) Clone() *FeeEstimate {
	if e == nil {
		return nil
	}

	c := *e
	c.Amount = cloneInt(e.Amount)
	c.NativeFee = cloneInt(e.NativeFee)
	c.MsgValue = cloneInt(e.MsgValue)
	c.SendParam.AmountLD = cloneInt(e.SendParam.AmountLD)
	c.SendParam.MinAmountLD = cloneInt(e.SendParam.MinAmountLD)
	return &c
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
