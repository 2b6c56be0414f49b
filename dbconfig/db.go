package dbconfig

import (
	"database/sql"
	"strings"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	_ "github.com/lib/pq"
)

type DBConfig struct {
	dbConnStr string
}

var _ Source = (*DBConfig)(nil)

// NewDBConfig creates a new DBConfig instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string.
//
// Returns:
// - *DBConfig: a pointer to the newly created DBConfig instance.
// - error: ErrInvalidConfig if the connection string is empty.
func NewDBConfig(connStr string) (*DBConfig, error) {
	if strings.TrimSpace(connStr) == "" {
		return nil, xerrors.ErrInvalidConfig
	}
	return &DBConfig{
		dbConnStr: connStr,
	}, nil
}

func (r *DBConfig) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, xerrors.ErrDatabaseConnect
	}
	return db, nil
}
