// Package flash1 provides the core types of the Flash1 exchange SDK: environment
// configurations, token descriptors, signer interfaces and SDK errors.
//
// The workflows package composes these with the REST API and the StarkEx settlement
// contract; the client package exposes the public surface.
package flash1

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Version is the SDK release reported to the API in the x-sdk-version header.
const Version = "0.4.0"

// SDKVersionHeader is the header carrying the SDK version on every API request.
const SDKVersionHeader = "x-sdk-version"

// EthConfiguration contains the Ethereum network settings of an environment.
type EthConfiguration struct {
	// CoreContractAddress is the StarkEx settlement (core) contract.
	CoreContractAddress common.Address

	// ChainID is the Ethereum chain every wallet must be connected to.
	ChainID int64

	// CollateralAssetID is the StarkEx asset ID of the collateral token.
	CollateralAssetID string
}

// APIConfiguration contains the REST API settings of an environment.
type APIConfiguration struct {
	// BasePath is the API root, e.g. "https://flash1.com".
	BasePath string

	// Headers are sent on every request. The SDK version header is always present.
	Headers map[string]string
}

// Configuration is the immutable environment record threaded through every workflow.
type Configuration struct {
	API APIConfiguration
	Eth EthConfiguration
}

// Environment is the input to NewConfig.
type Environment struct {
	BasePath            string
	Headers             map[string]string
	CoreContractAddress string
	ChainID             int64
	CollateralAssetID   string
}

// NewConfig builds a Configuration for a custom environment.
// It returns ErrEmptyBasePath when the base path is blank.
func NewConfig(env Environment) (Configuration, error) {
	if strings.TrimSpace(env.BasePath) == "" {
		return Configuration{}, ErrEmptyBasePath
	}
	if env.CoreContractAddress != "" && !common.IsHexAddress(env.CoreContractAddress) {
		return Configuration{}, fmt.Errorf("%w: core contract address %q", ErrInvalidAddress, env.CoreContractAddress)
	}

	headers := make(map[string]string, len(env.Headers)+1)
	for k, v := range env.Headers {
		headers[k] = v
	}
	headers[SDKVersionHeader] = "flash1-go-sdk-" + Version

	return Configuration{
		API: APIConfiguration{
			BasePath: strings.TrimRight(env.BasePath, "/"),
			Headers:  headers,
		},
		Eth: EthConfiguration{
			CoreContractAddress: common.HexToAddress(env.CoreContractAddress),
			ChainID:             env.ChainID,
			CollateralAssetID:   env.CollateralAssetID,
		},
	}, nil
}

// Built-in environments.
var (
	// MainnetEnvironment is the production environment on Ethereum mainnet.
	MainnetEnvironment = Environment{
		BasePath:            "https://flash1.com",
		ChainID:             1,
		CoreContractAddress: "0x0000000000000000000000000000000000000000",
		CollateralAssetID:   "0x0",
	}

	// GoerliEnvironment is the test environment on the Goerli test network.
	GoerliEnvironment = Environment{
		BasePath:            "https://test.flash1.com",
		ChainID:             5,
		CoreContractAddress: "0x2785680c010510c4ef5be451c69c9d6ee748b3de",
		CollateralAssetID:   "0xa21edc9d9997b1b1956f542fe95922518a9e28ace11b7b2972a1974bf5971f",
	}
)

// Mainnet returns the production configuration.
func Mainnet() Configuration {
	return mustConfig(MainnetEnvironment)
}

// Goerli returns the test network configuration.
func Goerli() Configuration {
	return mustConfig(GoerliEnvironment)
}

// IsTestnet reports whether the configuration targets a network other than Ethereum mainnet.
func (c Configuration) IsTestnet() bool {
	return c.Eth.ChainID != 1
}

func mustConfig(env Environment) Configuration {
	cfg, err := NewConfig(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// KeyPair is a hex encoded public/private key pair.
type KeyPair struct {
	PublicKey  string
	PrivateKey string
}

// UserConfiguration holds the caller's keys. The workflows only read the STARK public key,
// which identifies the vault ERC-20 collateral is deposited into.
type UserConfiguration struct {
	Stark    KeyPair
	Ethereum KeyPair
}
