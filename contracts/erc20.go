package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/flash1-exchange/flash1-go"
)

const erc20ABIJSON = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[
		{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[
		{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]}
]`

var erc20ABI = mustParseABI(erc20ABIJSON)

// ERC20 packs calls to an ERC-20 token. Mint is only exposed by the test network collateral.
type ERC20 struct {
	address common.Address
}

// NewERC20 binds the token at address.
func NewERC20(address common.Address) *ERC20 {
	return &ERC20{address: address}
}

// Address returns the token address.
func (t *ERC20) Address() common.Address {
	return t.address
}

// Approve packs an allowance of amount for spender.
func (t *ERC20) Approve(spender common.Address, amount *big.Int) (*flash1.TransactionRequest, error) {
	return t.pack("approve", spender, amount)
}

// Mint packs a mint of amount to the recipient.
func (t *ERC20) Mint(to common.Address, amount *big.Int) (*flash1.TransactionRequest, error) {
	return t.pack("mint", to, amount)
}

// Decimals reads the token's decimals.
func (t *ERC20) Decimals(ctx context.Context, caller Caller) (uint8, error) {
	data, err := erc20ABI.Pack("decimals")
	if err != nil {
		return 0, fmt.Errorf("decimals: %w", err)
	}
	out, err := caller.CallContract(ctx, ethereum.CallMsg{To: &t.address, Data: data})
	if err != nil {
		return 0, err
	}
	values, err := erc20ABI.Unpack("decimals", out)
	if err != nil {
		return 0, fmt.Errorf("decimals: unpack: %w", err)
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected output %T", values[0])
	}
	return decimals, nil
}

func (t *ERC20) pack(method string, args ...any) (*flash1.TransactionRequest, error) {
	data, err := erc20ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return &flash1.TransactionRequest{To: t.address, Data: data}, nil
}
