// Package config loads command-line settings from a YAML file and FLASH1_ environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flash1-exchange/flash1-go"
)

// Network names accepted in the network setting.
const (
	NetworkMainnet = "mainnet"
	NetworkGoerli  = "goerli"
	NetworkCustom  = "custom"
)

type Settings struct {
	App     AppSettings    `mapstructure:"app"`
	Network string         `mapstructure:"network"`
	API     APISettings    `mapstructure:"api"`
	Eth     EthSettings    `mapstructure:"eth"`
	Wallet  WalletSettings `mapstructure:"wallet"`
	Stark   StarkSettings  `mapstructure:"stark"`
}

type AppSettings struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type APISettings struct {
	BasePath string            `mapstructure:"base_path"`
	Headers  map[string]string `mapstructure:"headers"`
}

type EthSettings struct {
	RPCURL              string `mapstructure:"rpc_url"`
	ChainID             int64  `mapstructure:"chain_id"`
	CoreContractAddress string `mapstructure:"core_contract_address"`
	CollateralAssetID   string `mapstructure:"collateral_asset_id"`
}

// WalletSettings selects the Ethereum key. The first non-empty source wins, in the order
// private key, keystore, mnemonic.
type WalletSettings struct {
	PrivateKey   string `mapstructure:"private_key"`
	KeystorePath string `mapstructure:"keystore_path"`
	Password     string `mapstructure:"password"`
	Mnemonic     string `mapstructure:"mnemonic"`
	AccountIndex uint32 `mapstructure:"account_index"`
}

// StarkSettings holds the STARK key. When PrivateKey is empty the key is derived from
// the Ethereum wallet.
type StarkSettings struct {
	PrivateKey string `mapstructure:"private_key"`
}

// Load reads settings from path, or from flash1.yaml in the working directory or
// $HOME/.flash1 when path is empty. A missing default file is not an error.
// FLASH1_ variables override file values, e.g. FLASH1_ETH_RPC_URL.
func Load(path string) (*Settings, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("flash1")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.flash1")
	}

	v.SetEnvPrefix("FLASH1")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &s, nil
}

// setDefaults registers every key so environment variables are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("network", NetworkGoerli)

	v.SetDefault("api.base_path", "")
	v.SetDefault("api.headers", map[string]string{})

	v.SetDefault("eth.rpc_url", "")
	v.SetDefault("eth.chain_id", 0)
	v.SetDefault("eth.core_contract_address", "")
	v.SetDefault("eth.collateral_asset_id", "")

	v.SetDefault("wallet.private_key", "")
	v.SetDefault("wallet.keystore_path", "")
	v.SetDefault("wallet.password", "")
	v.SetDefault("wallet.mnemonic", "")
	v.SetDefault("wallet.account_index", 0)

	v.SetDefault("stark.private_key", "")
}

// Configuration returns the environment named by Network.
func (s *Settings) Configuration() (flash1.Configuration, error) {
	switch strings.ToLower(s.Network) {
	case NetworkMainnet:
		return flash1.Mainnet(), nil
	case NetworkGoerli, "testnet":
		return flash1.Goerli(), nil
	case NetworkCustom:
		return flash1.NewConfig(flash1.Environment{
			BasePath:            s.API.BasePath,
			Headers:             s.API.Headers,
			CoreContractAddress: s.Eth.CoreContractAddress,
			ChainID:             s.Eth.ChainID,
			CollateralAssetID:   s.Eth.CollateralAssetID,
		})
	default:
		return flash1.Configuration{}, fmt.Errorf("unknown network %q", s.Network)
	}
}

// Logger builds a production logger when Env is "production" and a development logger
// otherwise, at LogLevel.
func (a AppSettings) Logger() (*zap.Logger, error) {
	var cfg zap.Config
	if a.Env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if a.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(a.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		cfg.Level = level
	}

	return cfg.Build()
}
