package dbconfig

import (
	"context"
	"database/sql"
	"fmt"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/dbconfig/models"
)

// GetRPCsByChainID returns all RPCs for a given chain ID from the database, optionally filtering by active status.
//
// Parameters:
// - ctx: the context for managing the request.
// - chainID: the unique identifier for the chain.
// - activeOnly: a boolean flag to filter only active RPCs.
//
// Returns:
// - []models.RPC: a slice of RPC models, newest first.
// - error: an error if the database operation fails.
func (r *DBConfig) GetRPCsByChainID(ctx context.Context, chainID uint64, activeOnly bool) ([]models.RPC, error) {
	if chainID == 0 {
		return nil, xerrors.ErrInvalidChainID
	}

	query := `
  		SELECT 
  			id,
			chain_id,
			url,
			provider,
			active,
			created_at,
			updated_at
		FROM oft_rpcs
		WHERE chain_id = $1
   `

	args := []interface{}{chainID}
	if activeOnly {
		query += " AND active = $2"
		args = append(args, true)
	}

	query += " ORDER BY created_at DESC"

	return r.queryRPCs(ctx, query, args...)
}

// GetActiveRPCs returns the active RPCs of all active chains, newest first per chain.
func (r *DBConfig) GetActiveRPCs(ctx context.Context) ([]models.RPC, error) {
	return r.queryRPCs(ctx, `
       SELECT 
           r.id,
           r.chain_id,
           r.url,
           r.provider,
           r.active,
           r.created_at,
           r.updated_at
       FROM oft_rpcs r
       JOIN oft_chains c ON c.chain_id = r.chain_id
       WHERE r.active = $1 AND c.active = $1
       ORDER BY r.chain_id ASC, r.created_at DESC
    `, true)
}

// LoadRPCURLs returns the newest active RPC URL per hex chain id.
func (r *DBConfig) LoadRPCURLs(ctx context.Context) (map[string]string, error) {
	rpcs, err := r.GetActiveRPCs(ctx)
	if err != nil {
		return nil, err
	}
	return PreferredURLs(rpcs), nil
}

// PreferredURLs keeps the first URL seen for each chain.
func PreferredURLs(rpcs []models.RPC) map[string]string {
	urls := make(map[string]string)
	for _, rpc := range rpcs {
		id := fmt.Sprintf("0x%x", rpc.ChainID)
		if _, ok := urls[id]; !ok && rpc.URL != "" {
			urls[id] = rpc.URL
		}
	}
	return urls
}

func (r *DBConfig) queryRPCs(ctx context.Context, query string, args ...interface{}) ([]models.RPC, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, xerrors.ErrDatabaseConnect
	}
	defer rows.Close()

	var rpcs []models.RPC
	for rows.Next() {
		var rpc models.RPC
		var provider sql.NullString

		err := rows.Scan(
			&rpc.ID,
			&rpc.ChainID,
			&rpc.URL,
			&provider,
			&rpc.Active,
			&rpc.CreatedAt,
			&rpc.UpdatedAt,
		)
		if err != nil {
			return nil, xerrors.ErrDatabaseConnect
		}

		if provider.Valid {
			rpc.Provider = provider.String
		}

		rpcs = append(rpcs, rpc)
	}

	if err = rows.Err(); err != nil {
		return nil, xerrors.ErrDatabaseConnect
	}

	return rpcs, nil
}
