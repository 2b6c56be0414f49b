package config

import (
	"io/fs"
	"strings"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load, e.g. OFT_WALLET_KEYS.
	EnvPrefix = "OFT"
	// DefaultConfigName is the file name (without extension) searched when no path is given.
	DefaultConfigName = "oftclient"

	defaultServerAddr = ":8080"
	defaultWaitBlocks = 1
	defaultTxType     = 2
)

// Config is the client configuration.
//
// Fields:
// - Network: "testnet" or "mainnet", selects the compiled-in chain table.
// - Log: logger level and format.
// - RPC: RPC endpoint per chain id.
// - Contracts: OFT contract address overrides per chain id.
// - Wallet: the keyed wallet provider identity and keys.
// - Tx: transaction type and confirmations.
// - Database: optional Postgres chain table.
// - Server: HTTP API listen address.
type Config struct {
	Network   string            `mapstructure:"network"`
	Log       LogConfig         `mapstructure:"log"`
	RPC       map[string]string `mapstructure:"rpc"`
	Contracts map[string]string `mapstructure:"contracts"`
	Wallet    WalletConfig      `mapstructure:"wallet"`
	Tx        TxConfig          `mapstructure:"tx"`
	Database  DatabaseConfig    `mapstructure:"database"`
	Server    ServerConfig      `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WalletConfig struct {
	Name  string   `mapstructure:"name"`
	UUID  string   `mapstructure:"uuid"`
	Icon  string   `mapstructure:"icon"`
	Chain string   `mapstructure:"chain"`
	Keys  []string `mapstructure:"keys"`
}

type TxConfig struct {
	Type       uint64 `mapstructure:"type"`
	WaitBlocks uint64 `mapstructure:"wait_blocks"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads the configuration from a .env file, the config file and OFT_*
// environment variables, in increasing order of precedence.
//
// Parameters:
// - path: the config file. When empty, ./oftclient.yaml is used if it exists.
//
// Returns:
// - *Config: the validated configuration.
// - error: ErrInvalidConfig if the file cannot be read or a value is invalid.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(xerrors.ErrInvalidConfig, err.Error())
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "failed to read config %s: %v", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "failed to read config: %v", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "failed to decode config: %v", err)
	}
	cfg.Wallet.Keys = splitKeys(cfg.Wallet.Keys)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("network", types.Testnet.String())
	v.SetDefault("log.level", logrus.InfoLevel.String())
	v.SetDefault("log.format", "text")
	v.SetDefault("wallet.name", "")
	v.SetDefault("wallet.uuid", "")
	v.SetDefault("wallet.icon", "")
	v.SetDefault("wallet.chain", "")
	v.SetDefault("wallet.keys", []string{})
	v.SetDefault("tx.type", defaultTxType)
	v.SetDefault("tx.wait_blocks", defaultWaitBlocks)
	v.SetDefault("database.dsn", "")
	v.SetDefault("server.addr", defaultServerAddr)
}

// Validate checks the values that cannot be checked by the consuming packages.
func (c *Config) Validate() error {
	if c.NetworkType() == "" {
		return errors.Wrapf(xerrors.ErrInvalidConfig, "unknown network %q", c.Network)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(xerrors.ErrInvalidConfig, "log level: %v", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Wrapf(xerrors.ErrInvalidConfig, "unknown log format %q", c.Log.Format)
	}
	if c.Tx.Type != 0 && c.Tx.Type != 2 {
		return errors.Wrapf(xerrors.ErrInvalidConfig, "unsupported tx type %d", c.Tx.Type)
	}
	for id := range c.RPC {
		if _, err := types.NormalizeChainID(id); err != nil {
			return errors.Wrapf(xerrors.ErrInvalidConfig, "rpc chain id %q", id)
		}
	}
	return nil
}

// NetworkType returns the parsed network or an empty Network when unknown.
func (c *Config) NetworkType() types.Network {
	return types.ParseNetwork(c.Network)
}

// splitKeys accepts keys given one per entry or comma separated in one entry.
func splitKeys(keys []string) []string {
	var out []string
	for _, entry := range keys {
		for _, key := range strings.Split(entry, ",") {
			if key = strings.TrimSpace(key); key != "" {
				out = append(out, key)
			}
		}
	}
	return out
}
