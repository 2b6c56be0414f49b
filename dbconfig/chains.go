package dbconfig

import (
	"context"
	"database/sql"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/dbconfig/models"
)

const chainColumns = `
          id,
          chain_id,
          name,
          endpoint_id,
          native_symbol,
          contract_address,
          native_adapter,
          token_decimals,
          active,
          created_at,
          updated_at
      FROM oft_chains`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChain(row rowScanner) (models.Chain, error) {
	var chain models.Chain
	var symbol sql.NullString
	var decimals sql.NullInt32

	err := row.Scan(
		&chain.ID,
		&chain.ChainID,
		&chain.Name,
		&chain.EndpointID,
		&symbol,
		&chain.ContractAddress,
		&chain.NativeAdapter,
		&decimals,
		&chain.Active,
		&chain.CreatedAt,
		&chain.UpdatedAt,
	)
	if err != nil {
		return chain, err
	}

	if symbol.Valid {
		chain.NativeTokenSymbol = symbol.String
	}
	chain.TokenDecimals = 18
	if decimals.Valid {
		chain.TokenDecimals = decimals.Int32
	}
	return chain, nil
}

// GetChains returns all chains from the database, optionally filtering by active status.
func (r *DBConfig) GetChains(ctx context.Context, activeOnly bool) ([]models.Chain, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := "SELECT" + chainColumns

	var args []interface{}
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}

	query += " ORDER BY chain_id ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, xerrors.ErrDatabaseConnect
	}
	defer rows.Close()

	var chains []models.Chain
	for rows.Next() {
		chain, err := scanChain(rows)
		if err != nil {
			return nil, xerrors.ErrDatabaseConnect
		}
		chains = append(chains, chain)
	}

	if err = rows.Err(); err != nil {
		return nil, xerrors.ErrDatabaseConnect
	}

	return chains, nil
}

// GetChainByID returns the chain with the given numeric chain id.
func (r *DBConfig) GetChainByID(ctx context.Context, chainID uint64) (*models.Chain, error) {
	if chainID == 0 {
		return nil, xerrors.ErrInvalidChainID
	}

	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	chain, err := scanChain(db.QueryRowContext(ctx, "SELECT"+chainColumns+" WHERE chain_id = $1", chainID))
	if err == sql.ErrNoRows {
		return nil, xerrors.ErrChainNotFound
	}
	if err != nil {
		return nil, xerrors.ErrDatabaseConnect
	}

	return &chain, nil
}

// LoadDescriptors returns the active chains as registry descriptors.
func (r *DBConfig) LoadDescriptors(ctx context.Context) ([]types.ChainDescriptor, error) {
	chains, err := r.GetChains(ctx, true)
	if err != nil {
		return nil, err
	}
	return Descriptors(chains), nil
}

// Descriptors converts chain rows into registry descriptors.
func Descriptors(chains []models.Chain) []types.ChainDescriptor {
	out := make([]types.ChainDescriptor, 0, len(chains))
	for _, chain := range chains {
		out = append(out, chain.Descriptor())
	}
	return out
}
