package models

import "time"

// RPC is a row of the oft_rpcs table.
type RPC struct {
	ID        int64
	ChainID   uint64
	URL       string
	Provider  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
