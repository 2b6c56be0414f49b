package types

import "strings"

// ChainType represents supported blockchain types
type ChainType string

const (
	// EVM represents Ethereum Virtual Machine based chains (e.g. XPLA EVM, Ethereum, BNB).
	EVM ChainType = "EVM"
	// UNKNOWN represents unknown or unsupported chain type in the system.
	UNKNOWN ChainType = "UNKNOWN"
)

// String converts ChainType to string representation
func (t ChainType) String() string {
	return string(t)
}

// ParseChainType converts string to ChainType representation.
func ParseChainType(s string) ChainType {
	switch strings.ToUpper(s) {
	case EVM.String():
		return EVM
	default:
		return UNKNOWN
	}
}

// Network selects which deployment of the chain table is used.
type Network string

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

func (n Network) String() string {
	return string(n)
}

// ParseNetwork converts string to Network. Unknown values yield an empty Network.
func ParseNetwork(s string) Network {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Testnet.String():
		return Testnet
	case Mainnet.String():
		return Mainnet
	default:
		return ""
	}
}
