package paymail

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeBRFCID computes a BRFC (Bitcoin Request for Comments) ID per the BRC
// standard. The ID is derived from the double-SHA256 hash of the concatenation
// of title, author, and version strings, truncated to the first 6 bytes (12
// hex characters).
//
//	ID = hex(SHA256d(title + author + version))[:12]
//
// SHA256d denotes SHA256(SHA256(x)).
func ComputeBRFCID(title, author, version string) string {
	data := []byte(title + author + version)
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return hex.EncodeToString(second[:6])
}

// Capability keys from the bsvalias BRFC registry. A host may advertise a
// capability under its convenience name, its BRFC ID, or both; discovery
// accepts either form.
const (
	// BRFCPKI is the convenience key for public key infrastructure.
	BRFCPKI = "pki"

	// BRFCPKIAlternate is the registry ID for the PKI capability.
	BRFCPKIAlternate = "0c4339ef99c2"

	// BRFCPaymentDestination is the convenience key for basic address
	// resolution.
	BRFCPaymentDestination = "paymentDestination"

	// BRFCAddressResolution is the registry ID for basic address resolution.
	BRFCAddressResolution = "759684b1a19a"

	// BRFCVerifyPublicKeyOwner is the registry ID for public key ownership
	// verification.
	BRFCVerifyPublicKeyOwner = "a9f510c16bde"
)
