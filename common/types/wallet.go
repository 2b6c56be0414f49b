package types

//go:generate mockgen -destination=../../mocks/types_mock.go -package=mocks github.com/ClipFinance/oft-client/common/types TokenContract,WalletProvider

import "context"

// ProviderInfo identifies a wallet provider announced during discovery.
type ProviderInfo struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	RDNS string `json:"rdns,omitempty"`
}

// Subscription is a handle to a notification channel registration.
type Subscription interface {
	Unsubscribe()
}

// WalletProvider is the capability set of a connected wallet.
type WalletProvider interface {
	// Info returns the identity the provider announces itself with.
	Info() ProviderInfo

	// RequestAccounts asks the wallet for its accounts. The first account is the active one.
	RequestAccounts(ctx context.Context) ([]string, error)

	// ChainID returns the hex chain id the wallet is currently on.
	ChainID(ctx context.Context) (string, error)

	// SubscribeAccountsChanged registers ch for account change notifications.
	// An empty slice means every account was disconnected.
	SubscribeAccountsChanged(ch chan<- []string) Subscription

	// TokenContract returns the OFT contract on chain, bound to the active account.
	TokenContract(ctx context.Context, chain ChainDescriptor) (TokenContract, error)
}

// Session is the connected wallet state.
type Session struct {
	Provider WalletProvider `json:"-"`
	Info     ProviderInfo   `json:"provider"`
	Account  string         `json:"account"`
	ChainID  string         `json:"chainId"`
}
