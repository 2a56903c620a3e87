package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	script "github.com/bsv-blockchain/go-sdk/script"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"
)

const (
	// BIP44 path constants.
	PurposeBIP44  = 44
	CoinTypeBSV   = 236
	WalletAccount = 0
	ExternalChain = 0

	// MaxAddressIndex is the highest derivation index the wallet uses.
	// The scanner parks here when every address below it has history.
	MaxAddressIndex = 1000

	// Hardened is the BIP32 hardened derivation offset.
	Hardened = 0x80000000
)

// Keychain derives the wallet's address sequence from a single seed.
// All keys live on the external chain of account 0: m/44'/236'/0'/0/index.
type Keychain struct {
	chain  *bip32.ExtendedKey // account 0 external chain, derived once
	params *ChainParams
}

// KeyPair holds one derived key with its derivation path.
type KeyPair struct {
	PrivateKey *ec.PrivateKey `json:"-"`
	PublicKey  *ec.PublicKey  `json:"public_key"`
	Path       string         `json:"path"`
}

// NewKeychain creates a Keychain from a BIP39 seed. A nil params defaults
// to MainNet. The chain-level key m/44'/236'/0'/0 is derived up front so
// per-index lookups cost a single child derivation.
func NewKeychain(seed []byte, params *ChainParams) (*Keychain, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	if params == nil {
		params = &MainNet
	}

	var net *chaincfg.Params
	if params.IsMainNet() {
		net = &chaincfg.MainNet
	} else {
		net = &chaincfg.TestNet
	}

	master, err := bip32.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	purpose, err := master.Child(PurposeBIP44 + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: purpose derivation: %w", ErrDerivationFailed, err)
	}
	coinType, err := purpose.Child(CoinTypeBSV + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: coin type derivation: %w", ErrDerivationFailed, err)
	}
	account, err := coinType.Child(WalletAccount + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: account derivation: %w", ErrDerivationFailed, err)
	}
	chain, err := account.Child(ExternalChain)
	if err != nil {
		return nil, fmt.Errorf("%w: chain derivation: %w", ErrDerivationFailed, err)
	}

	return &Keychain{chain: chain, params: params}, nil
}

// Params returns the keychain's chain parameters.
func (k *Keychain) Params() *ChainParams { return k.params }

// KeyAt derives the key pair at the given address index. Derivation is
// pure: the same index always yields the same pair.
func (k *Keychain) KeyAt(index uint32) (*KeyPair, error) {
	if index > MaxAddressIndex {
		return nil, fmt.Errorf("%w: index %d exceeds %d", ErrIndexOutOfRange, index, MaxAddressIndex)
	}

	child, err := k.chain.Child(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index %d: %w", ErrDerivationFailed, index, err)
	}
	privKey, err := child.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract EC private key: %w", ErrDerivationFailed, err)
	}

	return &KeyPair{
		PrivateKey: privKey,
		PublicKey:  privKey.PubKey(),
		Path:       fmt.Sprintf("m/44'/236'/0'/0/%d", index),
	}, nil
}

// AddressAt derives the base58check P2PKH address at the given index.
func (k *Keychain) AddressAt(index uint32) (string, error) {
	kp, err := k.KeyAt(index)
	if err != nil {
		return "", err
	}
	addr, err := script.NewAddressFromPublicKey(kp.PublicKey, k.params.IsMainNet())
	if err != nil {
		return "", fmt.Errorf("%w: address at index %d: %w", ErrDerivationFailed, index, err)
	}
	return addr.AddressString, nil
}
