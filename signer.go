package flash1

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthSigner is an Ethereum account able to sign messages and submit transactions.
// The evm package provides an implementation backed by a JSON-RPC node.
type EthSigner interface {
	// Address returns the account address.
	Address() common.Address

	// ChainID returns the chain the signer is connected to.
	ChainID(ctx context.Context) (*big.Int, error)

	// SignMessage signs msg as an EIP-191 personal message.
	// The signature is 65 bytes with v in {27, 28}.
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)

	// SendTransaction signs and submits the transaction, returning it once accepted by the node.
	SendTransaction(ctx context.Context, req *TransactionRequest) (*types.Transaction, error)

	// WaitMined blocks until the transaction has one confirmation.
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

	// CallContract executes a read-only call against the latest block.
	CallContract(ctx context.Context, call ethereum.CallMsg) ([]byte, error)
}

// StarkSigner signs StarkEx message hashes.
type StarkSigner interface {
	// Address returns the hex encoded STARK public key.
	Address() string

	// SignMessage signs a hex encoded message hash and returns the serialized signature.
	SignMessage(ctx context.Context, hash string) (string, error)
}

// WalletConnection pairs the caller's Ethereum and STARK signers.
type WalletConnection struct {
	EthSigner   EthSigner
	StarkSigner StarkSigner
}

// TransactionRequest is an unsigned contract call. Nonce, gas and fees are filled by the signer.
type TransactionRequest struct {
	To    common.Address
	Data  []byte
	Value *big.Int
}
