package evm

import (
	"context"

	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// QuoteSend calls the contract's quoteSend view and returns the messaging fee.
//
// Parameters:
// - ctx: the context for managing the request.
// - param: the send parameter tuple.
// - payInLzToken: whether the fee is paid in the LayerZero token.
//
// Returns:
// - *types.MessagingFee: the quoted fee.
// - error: an error if the contract call fails.
func (e *evm) QuoteSend(ctx context.Context, param types.SendParam, payInLzToken bool) (*types.MessagingFee, error) {
	out, err := e.callContract(ctx, "quoteSend", param, payInLzToken)
	if err != nil {
		return nil, err
	}

	fee, ok := abi.ConvertType(out[0], new(types.MessagingFee)).(*types.MessagingFee)
	if !ok || fee.NativeFee == nil || fee.LzTokenFee == nil {
		return nil, errors.New("unexpected quoteSend result")
	}

	e.logger.WithFields(logrus.Fields{
		"chain":     e.config.Name,
		"dstEid":    param.DstEid,
		"amount":    param.AmountLD.String(),
		"nativeFee": fee.NativeFee.String(),
	}).Debug("Quoted send")

	return fee, nil
}
