package dbconfig

import (
	"context"
	"os"
	"testing"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/dbconfig/models"
	"github.com/stretchr/testify/require"
)

func TestNewDBConfigRequiresDSN(t *testing.T) {
	_, err := NewDBConfig("  ")
	require.ErrorIs(t, err, xerrors.ErrInvalidConfig)

	cfg, err := NewDBConfig("postgres://localhost/oft")
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestDescriptors(t *testing.T) {
	chains := []models.Chain{
		{ChainID: 47, Name: "XPLA", EndpointID: 40216, NativeTokenSymbol: "XPLA", ContractAddress: "0x2Bb21C18788587cbc3b8B903F5C8eAB9c7D26988", NativeAdapter: true, TokenDecimals: 18, Active: true},
		{ChainID: 11155111, Name: "ETHEREUM", EndpointID: 40161, NativeTokenSymbol: "ETH", ContractAddress: "0x2Bb21C18788587cbc3b8B903F5C8eAB9c7D26988", TokenDecimals: 18, Active: true},
	}

	require.Equal(t, []types.ChainDescriptor{
		{Name: "XPLA", EndpointID: 40216, ChainID: "0x2f", NativeTokenSymbol: "XPLA", ContractAddress: "0x2Bb21C18788587cbc3b8B903F5C8eAB9c7D26988", NativeAdapter: true, TokenDecimals: 18},
		{Name: "ETHEREUM", EndpointID: 40161, ChainID: "0xaa36a7", NativeTokenSymbol: "ETH", ContractAddress: "0x2Bb21C18788587cbc3b8B903F5C8eAB9c7D26988", TokenDecimals: 18},
	}, Descriptors(chains))
}

func TestPreferredURLs(t *testing.T) {
	urls := PreferredURLs([]models.RPC{
		{ChainID: 47, URL: "https://newest.xpla"},
		{ChainID: 47, URL: "https://older.xpla"},
		{ChainID: 97, URL: ""},
		{ChainID: 97, URL: "wss://bnb"},
	})

	require.Equal(t, map[string]string{
		"0x2f": "https://newest.xpla",
		"0x61": "wss://bnb",
	}, urls)
}

func TestInvalidChainID(t *testing.T) {
	cfg, err := NewDBConfig("postgres://localhost/oft")
	require.NoError(t, err)

	_, err = cfg.GetChainByID(context.Background(), 0)
	require.ErrorIs(t, err, xerrors.ErrInvalidChainID)
	_, err = cfg.GetRPCsByChainID(context.Background(), 0, true)
	require.ErrorIs(t, err, xerrors.ErrInvalidChainID)
}

func TestLoadFromDatabase(t *testing.T) {
	dsn := os.Getenv("OFT_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("OFT_TEST_DATABASE_DSN not set")
	}

	cfg, err := NewDBConfig(dsn)
	require.NoError(t, err)

	descriptors, err := cfg.LoadDescriptors(context.Background())
	require.NoError(t, err)
	for _, d := range descriptors {
		_, err := types.NormalizeChainID(d.ChainID)
		require.NoError(t, err)
	}

	_, err = cfg.LoadRPCURLs(context.Background())
	require.NoError(t, err)
}
