package chainmanager

import (
	"context"
	"math/big"
	"testing"

	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChainDelegates(t *testing.T) {
	contract := mocks.NewMockTokenContractForTest(t)
	config := &types.ChainConfig{Name: "BNB", ChainID: "0x61"}

	closed := 0
	chain := NewChainBuilder(config).
		WithFeeQuoter(contract).
		WithTokenSender(contract).
		WithTransactionWatcher(contract).
		WithBalanceProvider(contract).
		WithCloser(func() { closed++ }).
		Build()

	ctx := context.Background()
	param := types.NewSendParam(40161, "0x00000000000000000000000000000000000000aA", big.NewInt(1))

	contract.EXPECT().QuoteSend(ctx, param, false).Return(&types.MessagingFee{NativeFee: big.NewInt(5)}, nil)
	fee, err := chain.QuoteSend(ctx, param, false)
	require.NoError(t, err)
	require.Equal(t, int64(5), fee.NativeFee.Int64())

	tx := &types.Transaction{Hash: "0x01"}
	contract.EXPECT().Send(ctx, param, gomock.Any(), "0x00000000000000000000000000000000000000aA", gomock.Any()).Return(tx, nil)
	sent, err := chain.Send(ctx, param, types.MessagingFee{NativeFee: big.NewInt(5)}, "0x00000000000000000000000000000000000000aA", big.NewInt(5))
	require.NoError(t, err)
	require.Same(t, tx, sent)

	contract.EXPECT().WaitTransactionConfirmation(ctx, tx).Return(types.TxDone, nil)
	status, err := chain.WaitTransactionConfirmation(ctx, tx)
	require.NoError(t, err)
	require.Equal(t, types.TxDone, status)

	contract.EXPECT().Decimals(ctx).Return(uint8(18), nil)
	decimals, err := chain.Decimals(ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(18), decimals)

	contract.EXPECT().BalanceOf(ctx, "0xabc").Return(big.NewInt(7), nil)
	balance, err := chain.BalanceOf(ctx, "0xabc")
	require.NoError(t, err)
	require.Equal(t, int64(7), balance.Int64())

	contract.EXPECT().NativeBalance(ctx, "0xabc").Return(big.NewInt(9), nil)
	native, err := chain.NativeBalance(ctx, "0xabc")
	require.NoError(t, err)
	require.Equal(t, int64(9), native.Int64())

	chain.Close()
	chain.Close()
	require.Equal(t, 1, closed)
}

func TestChainWithoutCapabilities(t *testing.T) {
	chain := NewChainBuilder(&types.ChainConfig{Name: "XPLA"}).Build()
	ctx := context.Background()

	_, err := chain.QuoteSend(ctx, types.SendParam{}, false)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = chain.Send(ctx, types.SendParam{}, types.MessagingFee{}, "", nil)
	require.ErrorIs(t, err, ErrNotImplemented)
	status, err := chain.WaitTransactionConfirmation(ctx, &types.Transaction{})
	require.ErrorIs(t, err, ErrNotImplemented)
	require.Equal(t, types.TxFailed, status)
	_, err = chain.Decimals(ctx)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = chain.BalanceOf(ctx, "")
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = chain.NativeBalance(ctx, "")
	require.ErrorIs(t, err, ErrNotImplemented)

	require.EqualError(t, err, "native balance on XPLA: functionality not implemented")
	chain.Close()
}
