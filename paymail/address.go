package paymail

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
)

// senderName identifies this library to destination endpoints.
const senderName = "libsatchel"

// AddressForHandle resolves a payment handle to a base58check P2PKH
// address: it asks the handle's host for a payment destination and decodes
// the first output's locking script. Hosts answering with anything other
// than a P2PKH script fail with ErrUnsupportedScript.
//
// Paymail hosts operate on mainnet; the returned address uses the mainnet
// version byte.
func AddressForHandle(handle string) (string, error) {
	return AddressForHandleWithClient(handle, DefaultPostClient)
}

// AddressForHandleWithClient resolves using the provided PostClient.
func AddressForHandleWithClient(handle string, client PostClient) (string, error) {
	h, err := ParseHandle(handle)
	if err != nil {
		return "", err
	}

	outputs, err := ResolvePaymentDestinationWithClient(h, senderName, client)
	if err != nil {
		return "", err
	}

	raw, err := hex.DecodeString(outputs[0].Script)
	if err != nil {
		return "", fmt.Errorf("%w: script hex %q: %w", ErrUnsupportedScript, outputs[0].Script, err)
	}

	lock := script.NewFromBytes(raw)
	if !lock.IsP2PKH() {
		return "", fmt.Errorf("%w: %s pays to a non-P2PKH script", ErrUnsupportedScript, h)
	}
	pkh, err := lock.PublicKeyHash()
	if err != nil {
		return "", fmt.Errorf("%w: extracting pubkey hash: %w", ErrUnsupportedScript, err)
	}

	addr, err := script.NewAddressFromPublicKeyHash(pkh, true)
	if err != nil {
		return "", fmt.Errorf("%w: encoding address: %w", ErrUnsupportedScript, err)
	}
	return addr.AddressString, nil
}
