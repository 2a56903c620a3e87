package wallet

import "errors"

var (
	// ErrInvalidMnemonic indicates the mnemonic fails BIP39 validation.
	ErrInvalidMnemonic = errors.New("wallet: invalid BIP39 mnemonic")

	// ErrInvalidEntropy indicates entropy bits is not 128 or 256.
	ErrInvalidEntropy = errors.New("wallet: entropy bits must be 128 or 256")

	// ErrInvalidSeed indicates the seed is empty or invalid.
	ErrInvalidSeed = errors.New("wallet: invalid seed")

	// ErrDecryptionFailed indicates wrong password or corrupted wallet data.
	ErrDecryptionFailed = errors.New("wallet: seed decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates seed checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: seed checksum mismatch")

	// ErrDerivationFailed indicates BIP32 key derivation failed.
	ErrDerivationFailed = errors.New("wallet: key derivation failed")

	// ErrIndexOutOfRange indicates a derivation index above MaxAddressIndex.
	ErrIndexOutOfRange = errors.New("wallet: derivation index out of range")

	// ErrInvalidNetwork indicates an unknown network name.
	ErrInvalidNetwork = errors.New("wallet: invalid network name")

	// ErrInvalidRecipient indicates the recipient is not a well-formed address.
	ErrInvalidRecipient = errors.New("wallet: invalid recipient address")

	// ErrInsufficientHistory indicates spending was attempted before any
	// address of this wallet has ever been used.
	ErrInsufficientHistory = errors.New("wallet: no used address to spend from")

	// ErrNilService indicates the wallet was constructed without a backend.
	ErrNilService = errors.New("wallet: nil explorer service")
)
