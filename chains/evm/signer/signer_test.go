package signer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

const (
	testKey     = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testAddress = "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"
)

func TestNewSignerFromHex(t *testing.T) {
	for _, key := range []string{testKey, "0x" + testKey, " " + testKey + "\n"} {
		s, err := NewSignerFromHex(key)
		require.NoError(t, err)
		require.Equal(t, common.HexToAddress(testAddress), s.Address())
	}

	_, err := NewSignerFromHex("0x1234")
	require.Error(t, err)
	_, err = NewSigner(nil)
	require.Error(t, err)
}

func TestSignTx(t *testing.T) {
	s, err := NewSignerFromHex(testKey)
	require.NoError(t, err)

	chainID := big.NewInt(47)
	tx := ethtypes.NewTx(&ethtypes.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     1,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       21000,
		To:        &common.Address{},
		Value:     big.NewInt(10),
	})

	signed, err := s.SignTx(tx, chainID)
	require.NoError(t, err)

	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	require.Equal(t, s.Address(), from)
}
