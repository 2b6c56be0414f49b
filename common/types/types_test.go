package types

import (
	"encoding/json"
	"math/big"
	"testing"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChainID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x2f", "0x2f"},
		{"0x2F", "0x2f"},
		{"0X002f", "0x2f"},
		{" 47 ", "0x2f"},
		{"11155111", "0xaa36a7"},
	}
	for _, tt := range tests {
		got, err := NormalizeChainID(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "0x", "xpla", "0", "-1", "0xzz"} {
		_, err := NormalizeChainID(bad)
		assert.ErrorIs(t, err, xerrors.ErrInvalidChainID, bad)
	}
}

func TestNewSendParam(t *testing.T) {
	recipient := "0xABCDabcdABCDabcdABCDabcdABCDabcdABCDabcd"
	param := NewSendParam(40161, recipient, big.NewInt(42))

	assert.Equal(t, uint32(40161), param.DstEid)
	assert.Equal(t, make([]byte, 12), param.To[:12])
	assert.Equal(t, common.HexToAddress(recipient).Bytes(), param.To[12:])
	assert.Equal(t, 0, param.AmountLD.Cmp(big.NewInt(42)))
	assert.Equal(t, 0, param.MinAmountLD.Cmp(big.NewInt(42)))
	assert.Empty(t, param.ExtraOptions)
	assert.Empty(t, param.ComposeMsg)
	assert.Empty(t, param.OftCmd)

	// The amounts are copies.
	param.AmountLD.SetInt64(1)
	assert.Equal(t, int64(42), param.MinAmountLD.Int64())
}

func TestSendParamJSON(t *testing.T) {
	param := NewSendParam(1, "0x00000000000000000000000000000000000000aA", big.NewInt(5))

	raw, err := json.Marshal(param)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000000aa", decoded["to"])
	assert.Equal(t, "0x", decoded["extraOptions"])
	assert.Equal(t, float64(5), decoded["amountLD"])
}

func TestFeeEstimateMismatch(t *testing.T) {
	xpla := ChainDescriptor{Name: "XPLA", ChainID: "0x2f", EndpointID: 40216}
	bnb := ChainDescriptor{Name: "BNB", ChainID: "0x61", EndpointID: 40102}
	eth := ChainDescriptor{Name: "ETHEREUM", ChainID: "0xaa36a7", EndpointID: 40161}
	recipient := "0xABCDabcdABCDabcdABCDabcdABCDabcdABCDabcd"

	estimate := &FeeEstimate{SourceChain: xpla, DestinationChain: bnb, Recipient: recipient, Amount: big.NewInt(10)}

	assert.Equal(t, "", estimate.Mismatch(big.NewInt(10), xpla, bnb, recipient))
	assert.Equal(t, "", estimate.Mismatch(big.NewInt(10), xpla, bnb, "0xabcdabcdabcdabcdabcdabcdabcdabcdabcdabcd"))
	assert.Equal(t, "amount", estimate.Mismatch(big.NewInt(11), xpla, bnb, recipient))
	assert.Equal(t, "amount", estimate.Mismatch(nil, xpla, bnb, recipient))
	assert.Equal(t, "sourceChain", estimate.Mismatch(big.NewInt(10), eth, bnb, recipient))
	assert.Equal(t, "destinationChain", estimate.Mismatch(big.NewInt(10), xpla, eth, recipient))
	assert.Equal(t, "recipient", estimate.Mismatch(big.NewInt(10), xpla, bnb, "0x00000000000000000000000000000000000000aA"))
}

func TestFeeEstimateClone(t *testing.T) {
	var nilEstimate *FeeEstimate
	assert.Nil(t, nilEstimate.Clone())

	estimate := &FeeEstimate{
		Amount:    big.NewInt(10),
		NativeFee: big.NewInt(1),
		MsgValue:  big.NewInt(11),
		SendParam: NewSendParam(1, "0x00000000000000000000000000000000000000aA", big.NewInt(10)),
	}
	c := estimate.Clone()
	c.Amount.SetInt64(0)
	c.NativeFee.SetInt64(0)
	c.MsgValue.SetInt64(0)
	c.SendParam.AmountLD.SetInt64(0)

	assert.Equal(t, int64(10), estimate.Amount.Int64())
	assert.Equal(t, int64(1), estimate.NativeFee.Int64())
	assert.Equal(t, int64(11), estimate.MsgValue.Int64())
	assert.Equal(t, int64(10), estimate.SendParam.AmountLD.Int64())
}

func TestSubscriptionMode(t *testing.T) {
	assert.Equal(t, WebSocketMode, GetSubscriptionMode("wss://rpc.example"))
	assert.Equal(t, WebSocketMode, GetSubscriptionMode("ws://127.0.0.1:8546"))
	assert.Equal(t, IPCMode, GetSubscriptionMode("/tmp/geth.ipc"))
	assert.Equal(t, HTTPPollingMode, GetSubscriptionMode("https://rpc.example"))
	assert.True(t, WebSocketMode.CanSubscribe())
	assert.True(t, IPCMode.CanSubscribe())
	assert.False(t, HTTPPollingMode.CanSubscribe())
}

func TestParseNetworkAndChainType(t *testing.T) {
	assert.Equal(t, Testnet, ParseNetwork(" Testnet "))
	assert.Equal(t, Mainnet, ParseNetwork("mainnet"))
	assert.Equal(t, Network(""), ParseNetwork("devnet"))
	assert.Equal(t, EVM, ParseChainType("evm"))
	assert.Equal(t, UNKNOWN, ParseChainType("cosmos"))
}
