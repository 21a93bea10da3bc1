package stark

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tyler-smith/go-bip32"

	"github.com/flash1-exchange/flash1-go"
)

// DefaultSignatureMessage is the message an Ethereum wallet signs to derive its STARK key.
const DefaultSignatureMessage = "Only sign this request if you've initiated an action with Flash1."

const (
	derivationLayer       = "starkex"
	derivationApplication = "flash1"
	derivationIndex       = 1
)

var mask31 = big.NewInt(1<<31 - 1)

// DeriveKeyFromEthSignature derives a STARK private key from the signature of
// DefaultSignatureMessage produced by the Ethereum account at address.
//
// The s half of the signature seeds a BIP-32 tree walked along
// m/2645'/layer'/application'/eth1'/eth2'/1, and the resulting key is ground below the
// STARK curve order.
func DeriveKeyFromEthSignature(address common.Address, signature []byte) (*big.Int, error) {
	if len(signature) != 65 {
		return nil, fmt.Errorf("%w: signature must be 65 bytes, got %d", flash1.ErrInvalidKey, len(signature))
	}

	master, err := bip32.NewMasterKey(signature[32:64])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", flash1.ErrInvalidKey, err)
	}

	key := master
	for _, child := range accountPath(address) {
		key, err = key.NewChildKey(child)
		if err != nil {
			return nil, fmt.Errorf("%w: derive child %d: %v", flash1.ErrInvalidKey, child, err)
		}
	}

	return grindKey(new(big.Int).SetBytes(key.Key)), nil
}

// GenerateKey asks the Ethereum signer to sign DefaultSignatureMessage and returns the
// STARK signer derived from that signature.
func GenerateKey(ctx context.Context, signer flash1.EthSigner) (*Signer, error) {
	sig, err := signer.SignMessage(ctx, []byte(DefaultSignatureMessage))
	if err != nil {
		return nil, fmt.Errorf("sign derivation message: %w", err)
	}

	priv, err := DeriveKeyFromEthSignature(signer.Address(), sig)
	if err != nil {
		return nil, err
	}
	return newSigner(priv)
}

func accountPath(address common.Address) []uint32 {
	addr := new(big.Int).SetBytes(address.Bytes())

	return []uint32{
		bip32.FirstHardenedChild + 2645,
		bip32.FirstHardenedChild + low31(sha256Int(derivationLayer)),
		bip32.FirstHardenedChild + low31(sha256Int(derivationApplication)),
		bip32.FirstHardenedChild + low31(addr),
		bip32.FirstHardenedChild + low31(new(big.Int).Rsh(addr, 31)),
		derivationIndex,
	}
}

func sha256Int(s string) *big.Int {
	digest := sha256.Sum256([]byte(s))
	return new(big.Int).SetBytes(digest[:])
}

func low31(v *big.Int) uint32 {
	return uint32(new(big.Int).And(v, mask31).Uint64())
}

// grindKey hashes the seed with an increasing index until the digest falls below the
// largest multiple of the curve order that fits in 256 bits, then reduces it.
func grindKey(seed *big.Int) *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), 256)
	maxAllowed := new(big.Int).Sub(limit, new(big.Int).Mod(limit, curveOrder))

	seedBytes := seed.FillBytes(make([]byte, 32))
	for i := int64(0); ; i++ {
		index := big.NewInt(i).Bytes()
		if len(index) == 0 {
			index = []byte{0}
		}
		digest := sha256.Sum256(append(append([]byte{}, seedBytes...), index...))
		key := new(big.Int).SetBytes(digest[:])
		if key.Cmp(maxAllowed) < 0 {
			return key.Mod(key, curveOrder)
		}
	}
}
