package dbconfig

import (
	"context"

	"github.com/ClipFinance/oft-client/common/types"
)

// Source provides chain metadata and RPC endpoints stored outside the binary.
type Source interface {
	// LoadDescriptors returns the active chains as registry descriptors.
	LoadDescriptors(ctx context.Context) ([]types.ChainDescriptor, error)

	// LoadRPCURLs returns the preferred active RPC URL per hex chain id.
	LoadRPCURLs(ctx context.Context) (map[string]string, error)
}
