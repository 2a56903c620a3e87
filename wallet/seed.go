// Package wallet implements a deterministic single-seed BSV wallet.
//
// All key material derives from one BIP39 mnemonic. Addresses live on the
// external chain of account 0 (m/44'/236'/0'/0/index) and are consumed
// strictly in index order: the wallet tracks the first address with no
// transaction history (the wallet index), receives at that address, and
// spends only from the address immediately before it.
package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/compat/bip39"
	"golang.org/x/crypto/argon2"
)

const (
	// Mnemonic entropy sizes.
	Mnemonic12Words = 128
	Mnemonic24Words = 256

	// Argon2id parameters for seed encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Encryption format sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4
)

// GenerateMnemonic creates a new BIP39 mnemonic with the specified entropy
// bits: Mnemonic12Words (128) for 12 words or Mnemonic24Words (256) for 24.
func GenerateMnemonic(entropyBits int) (string, error) {
	if entropyBits != Mnemonic12Words && entropyBits != Mnemonic24Words {
		return "", ErrInvalidEntropy
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("wallet: failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: failed to generate mnemonic: %w", err)
	}

	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic string is valid BIP39.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic derives the 64-byte BIP39 seed from mnemonic + optional
// passphrase. An empty passphrase is valid and still participates in the
// derivation.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("wallet: failed to derive seed: %w", err)
	}

	return seed, nil
}

// deriveEncryptionKey stretches a password into an AES-256 key with Argon2id.
func deriveEncryptionKey(password string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(password),
		salt,
		Argon2Time,
		Argon2Memory,
		Argon2Parallelism,
		Argon2KeyLen,
	)
}

// EncryptSeed encrypts the seed for at-rest storage.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(key, nonce, seed||checksum)
// where key = argon2id(password, salt) and checksum = SHA256(seed)[:4].
// The checksum lets DecryptSeed distinguish a wrong password from a valid
// one even if GCM authentication were ever bypassed.
func EncryptSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate salt: %w", err)
	}

	seedHash := sha256.Sum256(seed)
	plaintext := make([]byte, 0, len(seed)+ChecksumLen)
	plaintext = append(plaintext, seed...)
	plaintext = append(plaintext, seedHash[:ChecksumLen]...)

	block, err := aes.NewCipher(deriveEncryptionKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("wallet: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("wallet: GCM creation failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, SaltLen+NonceLen+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)

	return result, nil
}

// DecryptSeed reverses EncryptSeed and verifies the embedded checksum.
func DecryptSeed(encrypted []byte, password string) ([]byte, error) {
	if len(encrypted) < SaltLen+NonceLen+ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := encrypted[:SaltLen]
	nonce := encrypted[SaltLen : SaltLen+NonceLen]
	ciphertext := encrypted[SaltLen+NonceLen:]

	block, err := aes.NewCipher(deriveEncryptionKey(password, salt))
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(plaintext) < ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	seed := plaintext[:len(plaintext)-ChecksumLen]
	storedChecksum := plaintext[len(plaintext)-ChecksumLen:]

	seedHash := sha256.Sum256(seed)
	if !bytes.Equal(storedChecksum, seedHash[:ChecksumLen]) {
		return nil, ErrChecksumMismatch
	}

	return seed, nil
}
