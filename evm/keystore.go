package evm

import (
	"crypto/ecdsa"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/flash1-exchange/flash1-go"
)

// WithKeystore loads the private key from an encrypted V3 keystore file.
func WithKeystore(path, password string) SignerOption {
	return func(s *Signer) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", flash1.ErrInvalidKeystore, err)
		}

		key, err := keystore.DecryptKey(data, password)
		if err != nil {
			return fmt.Errorf("%w: %v", flash1.ErrInvalidKeystore, err)
		}

		s.privateKey = key.PrivateKey
		return nil
	}
}

// WithMnemonic derives the private key of account index from a BIP-39 mnemonic along
// m/44'/60'/0'/0/index.
func WithMnemonic(mnemonic string, index uint32) SignerOption {
	return func(s *Signer) error {
		if !bip39.IsMnemonicValid(mnemonic) {
			return flash1.ErrInvalidMnemonic
		}

		privateKey, err := deriveKey(bip39.NewSeed(mnemonic, ""), []uint32{
			bip32.FirstHardenedChild + 44,
			bip32.FirstHardenedChild + 60,
			bip32.FirstHardenedChild,
			0,
			index,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", flash1.ErrInvalidMnemonic, err)
		}

		s.privateKey = privateKey
		return nil
	}
}

func deriveKey(seed []byte, path []uint32) (*ecdsa.PrivateKey, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	for _, child := range path {
		if key, err = key.NewChildKey(child); err != nil {
			return nil, err
		}
	}
	return crypto.ToECDSA(key.Key)
}
