package flash1

import (
	"fmt"
	"strings"
)

// TokenType is the wire name of a token kind.
type TokenType string

const (
	TokenTypeETH             TokenType = "ETH"
	TokenTypeERC20           TokenType = "ERC20"
	TokenTypeERC20Collateral TokenType = "ERC20_COLLATERAL"
)

// Token describes an asset handled by the exchange.
// It is implemented by ETHToken, ERC20Token and ERC20Collateral only.
type Token interface {
	Type() TokenType
	isToken()
}

// ETHToken is native Ether.
type ETHToken struct{}

// ERC20Token is a plain ERC-20 token.
type ERC20Token struct {
	TokenAddress string
}

// ERC20Collateral is the ERC-20 token used as collateral, with its StarkEx asset ID and
// quantization factor.
type ERC20Collateral struct {
	TokenAddress string
	AssetID      string
	Quantization int64
}

func (ETHToken) Type() TokenType        { return TokenTypeETH }
func (ERC20Token) Type() TokenType      { return TokenTypeERC20 }
func (ERC20Collateral) Type() TokenType { return TokenTypeERC20Collateral }

func (ETHToken) isToken()        {}
func (ERC20Token) isToken()      {}
func (ERC20Collateral) isToken() {}

// TokenAmount is a token and a decimal amount in the token's display unit
// (wei for ETH deposits and withdrawals).
type TokenAmount struct {
	Token  Token
	Amount string
}

// CollateralTokenName identifies a known collateral token.
type CollateralTokenName string

const (
	SelfMintTestnet CollateralTokenName = "SELF_MINT_TESTNET"
	USDTMainnet     CollateralTokenName = "USDT_MAINNET"
)

var collateralTokens = map[CollateralTokenName]ERC20Collateral{
	SelfMintTestnet: {
		TokenAddress: "0xd44BB808bfE43095dBb94c83077766382D63952a",
		AssetID:      "0xa21edc9d9997b1b1956f542fe95922518a9e28ace11b7b2972a1974bf5971f",
		Quantization: 1_000_000,
	},
	USDTMainnet: {
		TokenAddress: "0x0000000000000000000000000000000000000000",
		AssetID:      "0x0",
		Quantization: 10,
	},
}

// CollateralToken returns the collateral token registered under name.
func CollateralToken(name CollateralTokenName) (ERC20Collateral, error) {
	token, ok := collateralTokens[CollateralTokenName(strings.ToUpper(string(name)))]
	if !ok {
		return ERC20Collateral{}, fmt.Errorf("%w: unknown collateral token %q", ErrUnsupportedToken, name)
	}
	return token, nil
}

// Fee is a maker or taker fee attached to an order or trade.
type Fee struct {
	Address    string  `json:"address"`
	Percentage float64 `json:"fee_percentage"`
}

// UnsignedOrderRequest describes an order before it is signed.
type UnsignedOrderRequest struct {
	Buy                 TokenAmount
	Sell                TokenAmount
	Fees                []Fee
	ExpirationTimestamp int64
}

// UnsignedTradeRequest describes a trade against an existing order.
type UnsignedTradeRequest struct {
	OrderID int64
	Fees    []Fee
}

// ForcedTradeRequest holds the parameters of the core contract's forcedTradeRequest call.
// Numeric fields are decimal or 0x-prefixed hex strings.
type ForcedTradeRequest struct {
	StarkKeyA                string
	StarkKeyB                string
	VaultIDA                 string
	VaultIDB                 string
	CollateralAssetID        string
	SyntheticAssetID         string
	AmountCollateral         string
	AmountSynthetic          string
	AIsBuyingSynthetic       bool
	SubmissionExpirationTime string
	Nonce                    string
	Signature                string
	PremiumCost              bool
}

// ForcedWithdrawalRequest holds the parameters of the core contract's forcedWithdrawalRequest call.
type ForcedWithdrawalRequest struct {
	StarkKey        string
	VaultID         string
	QuantizedAmount string
	PremiumCost     bool
}
