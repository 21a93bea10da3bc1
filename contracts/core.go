// Package contracts packs calls to the StarkEx settlement (core) contract and to
// ERC-20 tokens, and decodes their revert reasons.
package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/flash1-exchange/flash1-go"
)

const coreABIJSON = `[
	{"type":"function","name":"deposit","stateMutability":"payable","inputs":[
		{"name":"starkKey","type":"uint256"},{"name":"assetType","type":"uint256"},{"name":"vaultId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"depositERC20","stateMutability":"nonpayable","inputs":[
		{"name":"starkKey","type":"uint256"},{"name":"assetType","type":"uint256"},{"name":"vaultId","type":"uint256"},
		{"name":"quantizedAmount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"registerUser","stateMutability":"nonpayable","inputs":[
		{"name":"ethKey","type":"address"},{"name":"starkKey","type":"uint256"},{"name":"signature","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"getEthKey","stateMutability":"view","inputs":[
		{"name":"ownerKey","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[
		{"name":"ownerKey","type":"uint256"},{"name":"assetType","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"forcedTradeRequest","stateMutability":"nonpayable","inputs":[
		{"name":"starkKeyA","type":"uint256"},{"name":"starkKeyB","type":"uint256"},
		{"name":"vaultIdA","type":"uint256"},{"name":"vaultIdB","type":"uint256"},
		{"name":"collateralAssetId","type":"uint256"},{"name":"syntheticAssetId","type":"uint256"},
		{"name":"amountCollateral","type":"uint256"},{"name":"amountSynthetic","type":"uint256"},
		{"name":"aIsBuyingSynthetic","type":"bool"},{"name":"submissionExpirationTime","type":"uint256"},
		{"name":"nonce","type":"uint256"},{"name":"signature","type":"bytes"},{"name":"premiumCost","type":"bool"}],"outputs":[]},
	{"type":"function","name":"forcedWithdrawalRequest","stateMutability":"nonpayable","inputs":[
		{"name":"starkKey","type":"uint256"},{"name":"vaultId","type":"uint256"},
		{"name":"quantizedAmount","type":"uint256"},{"name":"premiumCost","type":"bool"}],"outputs":[]}
]`

var coreABI = mustParseABI(coreABIJSON)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("contracts: parse abi: %v", err))
	}
	return parsed
}

// Core packs calls to the settlement contract at a fixed address.
type Core struct {
	address common.Address
}

// NewCore binds the settlement contract at address.
func NewCore(address common.Address) *Core {
	return &Core{address: address}
}

// Address returns the contract address.
func (c *Core) Address() common.Address {
	return c.address
}

// Deposit packs an ETH deposit carrying amount wei as value.
func (c *Core) Deposit(starkKey, assetType, vaultID string, amount *big.Int) (*flash1.TransactionRequest, error) {
	args, err := uints(starkKey, assetType, vaultID)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	return c.pack(amount, "deposit", args...)
}

// DepositERC20 packs an ERC-20 deposit of a quantized amount.
func (c *Core) DepositERC20(starkKey, assetType, vaultID string, quantizedAmount *big.Int) (*flash1.TransactionRequest, error) {
	args, err := uints(starkKey, assetType, vaultID)
	if err != nil {
		return nil, fmt.Errorf("depositERC20: %w", err)
	}
	return c.pack(nil, "depositERC20", append(args, quantizedAmount)...)
}

// RegisterUser packs an on-chain registration with the operator signature.
func (c *Core) RegisterUser(ethKey common.Address, starkKey string, operatorSignature []byte) (*flash1.TransactionRequest, error) {
	key, err := uints(starkKey)
	if err != nil {
		return nil, fmt.Errorf("registerUser: %w", err)
	}
	return c.pack(nil, "registerUser", ethKey, key[0], operatorSignature)
}

// Withdraw packs the completion of a withdrawal of assetType to ownerKey.
func (c *Core) Withdraw(ownerKey, assetType string) (*flash1.TransactionRequest, error) {
	args, err := uints(ownerKey, assetType)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	return c.pack(nil, "withdraw", args...)
}

// ForcedTradeRequest packs a forced trade. Parameters are passed through unchanged.
func (c *Core) ForcedTradeRequest(req flash1.ForcedTradeRequest) (*flash1.TransactionRequest, error) {
	nums, err := uints(
		req.StarkKeyA, req.StarkKeyB,
		req.VaultIDA, req.VaultIDB,
		req.CollateralAssetID, req.SyntheticAssetID,
		req.AmountCollateral, req.AmountSynthetic,
		req.SubmissionExpirationTime, req.Nonce,
	)
	if err != nil {
		return nil, fmt.Errorf("forcedTradeRequest: %w", err)
	}
	signature, err := bytesArg(req.Signature)
	if err != nil {
		return nil, fmt.Errorf("forcedTradeRequest: %w", err)
	}

	return c.pack(nil, "forcedTradeRequest",
		nums[0], nums[1], nums[2], nums[3], nums[4], nums[5], nums[6], nums[7],
		req.AIsBuyingSynthetic, nums[8], nums[9], signature, req.PremiumCost,
	)
}

// ForcedWithdrawalRequest packs a forced withdrawal.
func (c *Core) ForcedWithdrawalRequest(req flash1.ForcedWithdrawalRequest) (*flash1.TransactionRequest, error) {
	nums, err := uints(req.StarkKey, req.VaultID, req.QuantizedAmount)
	if err != nil {
		return nil, fmt.Errorf("forcedWithdrawalRequest: %w", err)
	}
	return c.pack(nil, "forcedWithdrawalRequest", nums[0], nums[1], nums[2], req.PremiumCost)
}

// GetEthKey returns the Ethereum address registered for starkKey.
func (c *Core) GetEthKey(ctx context.Context, caller Caller, starkKey string) (common.Address, error) {
	key, err := uints(starkKey)
	if err != nil {
		return common.Address{}, fmt.Errorf("getEthKey: %w", err)
	}
	data, err := coreABI.Pack("getEthKey", key[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("getEthKey: %w", err)
	}

	out, err := caller.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data})
	if err != nil {
		return common.Address{}, err
	}

	values, err := coreABI.Unpack("getEthKey", out)
	if err != nil {
		return common.Address{}, fmt.Errorf("getEthKey: unpack: %w", err)
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("getEthKey: unexpected output %T", values[0])
	}
	return addr, nil
}

func (c *Core) pack(value *big.Int, method string, args ...any) (*flash1.TransactionRequest, error) {
	data, err := coreABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return &flash1.TransactionRequest{To: c.address, Data: data, Value: value}, nil
}

// Caller executes read-only contract calls. flash1.EthSigner satisfies it.
type Caller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg) ([]byte, error)
}
