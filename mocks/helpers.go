package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockTokenContractForTest creates a new mock TokenContract for testing
func NewMockTokenContractForTest(t *testing.T) *MockTokenContract {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockTokenContract(ctrl)
}

// NewMockWalletProviderForTest creates a new mock WalletProvider for testing
func NewMockWalletProviderForTest(t *testing.T) *MockWalletProvider {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockWalletProvider(ctrl)
}

// SubscriptionFunc adapts a function to types.Subscription.
type SubscriptionFunc func()

// Unsubscribe calls f.
func (f SubscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}
