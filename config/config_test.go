package config

import (
	"os"
	"path/filepath"
	"testing"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oftclient.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.Testnet, cfg.NetworkType())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, uint64(2), cfg.Tx.Type)
	assert.Equal(t, uint64(1), cfg.Tx.WaitBlocks)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Wallet.Keys)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
network: mainnet
log:
  level: debug
  format: json
rpc:
  "0x25": https://xpla.example
  "0x1": wss://eth.example
contracts:
  "0x25": "0x0000000000000000000000000000000000000001"
wallet:
  name: Ops
  chain: "0x25"
  keys:
    - "0x01"
tx:
  type: 0
  wait_blocks: 3
database:
  dsn: postgres://localhost/oft
server:
  addr: 127.0.0.1:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.Mainnet, cfg.NetworkType())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://xpla.example", cfg.RPC["0x25"])
	assert.Equal(t, "wss://eth.example", cfg.RPC["0x1"])
	assert.Equal(t, "0x0000000000000000000000000000000000000001", cfg.Contracts["0x25"])
	assert.Equal(t, "Ops", cfg.Wallet.Name)
	assert.Equal(t, []string{"0x01"}, cfg.Wallet.Keys)
	assert.Equal(t, uint64(0), cfg.Tx.Type)
	assert.Equal(t, uint64(3), cfg.Tx.WaitBlocks)
	assert.Equal(t, "postgres://localhost/oft", cfg.Database.DSN)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "network: testnet\nserver:\n  addr: :1\n")
	t.Setenv("OFT_NETWORK", "mainnet")
	t.Setenv("OFT_SERVER_ADDR", ":2")
	t.Setenv("OFT_WALLET_KEYS", "0x01, 0x02")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.Mainnet, cfg.NetworkType())
	assert.Equal(t, ":2", cfg.Server.Addr)
	assert.Equal(t, []string{"0x01", "0x02"}, cfg.Wallet.Keys)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"network", "network: devnet"},
		{"log level", "log:\n  level: loud"},
		{"log format", "log:\n  format: xml"},
		{"tx type", "tx:\n  type: 1"},
		{"rpc chain id", "rpc:\n  xpla: https://xpla.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, xerrors.ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, xerrors.ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger, err = NewLogger("warn", "")
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	_, err = NewLogger("loud", "text")
	require.ErrorIs(t, err, xerrors.ErrInvalidConfig)
	_, err = NewLogger("info", "xml")
	require.ErrorIs(t, err, xerrors.ErrInvalidConfig)
}
