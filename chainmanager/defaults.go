package chainmanager

import (
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/pkg/errors"
)

const (
	// defaultTokenDecimals are the local decimals of the XPLA OFT on every chain.
	defaultTokenDecimals = 18
	// testnetOFTAddress is the OFT deployment shared by all testnet chains.
	testnetOFTAddress = "0x2Bb21C18788587cbc3b8B903F5C8eAB9c7D26988"
)

// DefaultTestnetChains returns the compiled-in testnet chain table.
func DefaultTestnetChains() []types.ChainDescriptor {
	return []types.ChainDescriptor{
		{Name: "XPLA", EndpointID: 40216, ChainID: "0x2f", NativeTokenSymbol: "XPLA", ContractAddress: testnetOFTAddress, NativeAdapter: true, TokenDecimals: defaultTokenDecimals},
		{Name: "ETHEREUM", EndpointID: 40161, ChainID: "0xaa36a7", NativeTokenSymbol: "ETH", ContractAddress: testnetOFTAddress, TokenDecimals: defaultTokenDecimals},
		{Name: "BNB", EndpointID: 40102, ChainID: "0x61", NativeTokenSymbol: "BNB", ContractAddress: testnetOFTAddress, TokenDecimals: defaultTokenDecimals},
	}
}

// DefaultMainnetChains returns the compiled-in mainnet chain table. Mainnet
// contract addresses are deployment specific and must be supplied through
// ApplyContractOverrides before building a registry.
func DefaultMainnetChains() []types.ChainDescriptor {
	return []types.ChainDescriptor{
		{Name: "XPLA", EndpointID: 30216, ChainID: "0x25", NativeTokenSymbol: "XPLA", NativeAdapter: true, TokenDecimals: defaultTokenDecimals},
		{Name: "ETHEREUM", EndpointID: 30101, ChainID: "0x1", NativeTokenSymbol: "ETH", TokenDecimals: defaultTokenDecimals},
		{Name: "BNB", EndpointID: 30102, ChainID: "0x38", NativeTokenSymbol: "BNB", TokenDecimals: defaultTokenDecimals},
	}
}

// DefaultChains returns the compiled-in table for network.
func DefaultChains(network types.Network) ([]types.ChainDescriptor, error) {
	switch network {
	case types.Testnet:
		return DefaultTestnetChains(), nil
	case types.Mainnet:
		return DefaultMainnetChains(), nil
	default:
		return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "unknown network %q", network)
	}
}

// ApplyContractOverrides replaces contract addresses by chain id. Keys may be
// hex or decimal chain ids.
func ApplyContractOverrides(chains []types.ChainDescriptor, overrides map[string]string) ([]types.ChainDescriptor, error) {
	if len(overrides) == 0 {
		return chains, nil
	}

	normalized := make(map[string]string, len(overrides))
	for id, address := range overrides {
		key, err := types.NormalizeChainID(id)
		if err != nil {
			return nil, err
		}
		normalized[key] = address
	}

	out := make([]types.ChainDescriptor, len(chains))
	for i, chain := range chains {
		out[i] = chain
		id, err := types.NormalizeChainID(chain.ChainID)
		if err != nil {
			return nil, err
		}
		if address, ok := normalized[id]; ok {
			out[i].ContractAddress = address
		}
	}
	return out, nil
}
