package chains

import (
	"context"
	"sync"

	"github.com/ClipFinance/oft-client/chains/evm"
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ChainConstructor represents a function that constructs a token contract client.
//
// Parameters:
// - ctx: the context for dialing the RPC endpoint.
// - config: the configuration for the chain.
// - logger: the logger for logging purposes.
//
// Returns:
// - types.TokenContract: the constructed contract client.
// - error: an error if the construction fails.
type ChainConstructor func(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.TokenContract, error)

// ChainFactory defines the interface for token contract client creation.
type ChainFactory interface {
	// RegisterConstructor registers a new constructor for a given chain type.
	//
	// Parameters:
	// - chainType: the type of the chain to register.
	// - constructor: the constructor function for the chain type.
	RegisterConstructor(chainType types.ChainType, constructor ChainConstructor)

	// CreateChain creates a new token contract client based on the configuration.
	//
	// Parameters:
	// - ctx: the context for dialing the RPC endpoint.
	// - config: the configuration for the chain.
	// - logger: the logger for logging purposes.
	//
	// Returns:
	// - types.TokenContract: the created contract client.
	// - error: ErrInvalidChainType if no constructor is registered for the chain type.
	CreateChain(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.TokenContract, error)
}

type chainFactory struct {
	// constructors stores the mapping of chain types to their constructors.
	constructors map[types.ChainType]ChainConstructor
	// constructorsMutex protects access to the constructors map.
	constructorsMutex sync.RWMutex
}

// NewChainFactory creates a new instance of the chain factory with the EVM
// constructor registered.
//
// Returns:
// - ChainFactory: the new chain factory instance.
func NewChainFactory() ChainFactory {
	factory := &chainFactory{
		constructors: make(map[types.ChainType]ChainConstructor),
	}

	factory.RegisterConstructor(types.EVM, evm.NewEvmChain)

	return factory
}

// RegisterConstructor registers a new chain constructor.
func (f *chainFactory) RegisterConstructor(chainType types.ChainType, constructor ChainConstructor) {
	f.constructorsMutex.Lock()
	defer f.constructorsMutex.Unlock()

	f.constructors[chainType] = constructor
}

// CreateChain creates a new token contract client based on the configuration.
func (f *chainFactory) CreateChain(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.TokenContract, error) {
	if config == nil {
		return nil, errors.Wrap(xerrors.ErrInvalidConfig, "chain config is nil")
	}

	f.constructorsMutex.RLock()
	constructor, exists := f.constructors[config.ChainType]
	f.constructorsMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(xerrors.ErrInvalidChainType, "chain type %q", config.ChainType)
	}

	return constructor(ctx, config, logger)
}
