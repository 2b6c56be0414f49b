package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SendParam is the OFT send parameter tuple. Field order and names match the
// contract's SendParam struct so it can be ABI packed directly.
type SendParam struct {
	DstEid       uint32
	To           [32]byte
	AmountLD     *big.Int
	MinAmountLD  *big.Int
	ExtraOptions []byte
	ComposeMsg   []byte
	OftCmd       []byte
}

// NewSendParam builds the send tuple for a transfer of amount to recipient on
// the chain with endpoint id dstEid. No slippage is modeled, so the minimum
// amount equals the amount sent.
func NewSendParam(dstEid uint32, recipient string, amount *big.Int) SendParam {
	var to [32]byte
	copy(to[:], common.LeftPadBytes(common.HexToAddress(recipient).Bytes(), 32))

	return SendParam{
		DstEid:       dstEid,
		To:           to,
		AmountLD:     new(big.Int).Set(amount),
		MinAmountLD:  new(big.Int).Set(amount),
		ExtraOptions: []byte{},
		ComposeMsg:   []byte{},
		OftCmd:       []byte{},
	}
}

// MarshalJSON encodes byte fields as 0x-prefixed hex.
func (p SendParam) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DstEid       uint32        `json:"dstEid"`
		To           hexutil.Bytes `json:"to"`
		AmountLD     *big.Int      `json:"amountLD"`
		MinAmountLD  *big.Int      `json:"minAmountLD"`
		ExtraOptions hexutil.Bytes `json:"extraOptions"`
		ComposeMsg   hexutil.Bytes `json:"composeMsg"`
		OftCmd       hexutil.Bytes `json:"oftCmd"`
	}{
		DstEid:       p.DstEid,
		To:           p.To[:],
		AmountLD:     p.AmountLD,
		MinAmountLD:  p.MinAmountLD,
		ExtraOptions: p.ExtraOptions,
		ComposeMsg:   p.ComposeMsg,
		OftCmd:       p.OftCmd,
	})
}

// MessagingFee is the fee tuple returned by quoteSend and paid by send.
type MessagingFee struct {
	NativeFee  *big.Int `json:"nativeFee"`
	LzTokenFee *big.Int `json:"lzTokenFee"`
}

// Transaction represents a submitted send transaction.
//
// Fields:
// - Hash: the hash of the transaction.
// - From: the signing account.
// - To: the OFT contract the transaction was sent to.
// - Value: the native value attached, in wei.
// - Nonce: the nonce of the transaction.
// - ChainID: the hex chain id of the source chain.
// - DstEid: the destination endpoint id.
type Transaction struct {
	Hash    string `json:"hash"`
	From    string `json:"from"`
	To      string `json:"to"`
	Value   string `json:"value"`
	Nonce   uint64 `json:"nonce"`
	ChainID string `json:"chainId"`
	DstEid  uint32 `json:"dstEid"`
}
