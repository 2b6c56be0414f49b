package chainmanager

import (
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Registry is an immutable lookup table from chain id to chain descriptor.
// It is built once at start up and shared by reference.
type Registry struct {
	chains     map[string]types.ChainDescriptor
	byEndpoint map[uint32]string
	order      []string
}

// Get returns the descriptor of the chain with the given id.
//
// Parameters:
// - chainID: hex or decimal chain id.
//
// Returns:
// - types.ChainDescriptor: the chain descriptor.
// - error: ErrChainNotFound if the chain is not registered.
func (r *Registry) Get(chainID string) (types.ChainDescriptor, error) {
	id, err := types.NormalizeChainID(chainID)
	if err != nil {
		return types.ChainDescriptor{}, err
	}

	chain, ok := r.chains[id]
	if !ok {
		return types.ChainDescriptor{}, errors.Wrapf(xerrors.ErrChainNotFound, "chain id %s", id)
	}
	return chain, nil
}

// GetByEndpoint returns the descriptor of the chain with the given LayerZero endpoint id.
func (r *Registry) GetByEndpoint(eid uint32) (types.ChainDescriptor, error) {
	id, ok := r.byEndpoint[eid]
	if !ok {
		return types.ChainDescriptor{}, errors.Wrapf(xerrors.ErrChainNotFound, "endpoint id %d", eid)
	}
	return r.chains[id], nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []types.ChainDescriptor {
	out := make([]types.ChainDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.chains[id])
	}
	return out
}

// Len returns the number of registered chains.
func (r *Registry) Len() int {
	return len(r.order)
}

// RegistryBuilder collects chain descriptors and validates them into a Registry.
type RegistryBuilder struct {
	chains []types.ChainDescriptor
}

// NewRegistryBuilder creates an empty registry builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{}
}

// WithChain adds a chain descriptor.
func (b *RegistryBuilder) WithChain(chain types.ChainDescriptor) *RegistryBuilder {
	b.chains = append(b.chains, chain)
	return b
}

// WithChains adds several chain descriptors.
func (b *RegistryBuilder) WithChains(chains ...types.ChainDescriptor) *RegistryBuilder {
	b.chains = append(b.chains, chains...)
	return b
}

// Build validates the collected descriptors and returns the registry.
//
// Returns:
// - *Registry: the immutable registry.
// - error: ErrInvalidConfig for an incomplete descriptor, ErrChainExists for a
// duplicate chain id or endpoint id.
func (b *RegistryBuilder) Build() (*Registry, error) {
	r := &Registry{
		chains:     make(map[string]types.ChainDescriptor, len(b.chains)),
		byEndpoint: make(map[uint32]string, len(b.chains)),
	}

	for _, chain := range b.chains {
		id, err := types.NormalizeChainID(chain.ChainID)
		if err != nil {
			return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "chain %q: %v", chain.Name, err)
		}
		chain.ChainID = id

		if err := validateDescriptor(chain); err != nil {
			return nil, err
		}

		if _, exists := r.chains[id]; exists {
			return nil, errors.Wrapf(xerrors.ErrChainExists, "chain id %s", id)
		}
		if _, exists := r.byEndpoint[chain.EndpointID]; exists {
			return nil, errors.Wrapf(xerrors.ErrChainExists, "endpoint id %d", chain.EndpointID)
		}

		r.chains[id] = chain
		r.byEndpoint[chain.EndpointID] = id
		r.order = append(r.order, id)
	}

	return r, nil
}

func validateDescriptor(chain types.ChainDescriptor) error {
	switch {
	case chain.Name == "":
		return errors.Wrapf(xerrors.ErrInvalidConfig, "chain %s: empty name", chain.ChainID)
	case chain.EndpointID == 0:
		return errors.Wrapf(xerrors.ErrInvalidConfig, "chain %s: empty endpoint id", chain.Name)
	case !common.IsHexAddress(chain.ContractAddress):
		return errors.Wrapf(xerrors.ErrInvalidConfig, "chain %s: invalid contract address %q", chain.Name, chain.ContractAddress)
	case chain.TokenDecimals < 0 || chain.TokenDecimals > 77:
		return errors.Wrapf(xerrors.ErrInvalidConfig, "chain %s: invalid token decimals %d", chain.Name, chain.TokenDecimals)
	}
	return nil
}
