package models

import (
	"fmt"
	"time"

	"github.com/ClipFinance/oft-client/common/types"
)

// Chain is a row of the oft_chains table.
type Chain struct {
	ID                int64
	ChainID           uint64
	Name              string
	EndpointID        uint32
	NativeTokenSymbol string
	ContractAddress   string
	NativeAdapter     bool
	TokenDecimals     int32
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Descriptor converts the row into a chain descriptor with a hex chain id.
func (c Chain) Descriptor() types.ChainDescriptor {
	return types.ChainDescriptor{
		Name:              c.Name,
		EndpointID:        c.EndpointID,
		ChainID:           fmt.Sprintf("0x%x", c.ChainID),
		NativeTokenSymbol: c.NativeTokenSymbol,
		ContractAddress:   c.ContractAddress,
		NativeAdapter:     c.NativeAdapter,
		TokenDecimals:     c.TokenDecimals,
	}
}
