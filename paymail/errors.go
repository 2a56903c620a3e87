package paymail

import "errors"

var (
	// ErrInvalidHandle indicates the payment handle is not alias@domain.
	ErrInvalidHandle = errors.New("paymail: invalid payment handle")

	// ErrDiscoveryFailed indicates the .well-known/bsvalias fetch failed.
	ErrDiscoveryFailed = errors.New("paymail: capability discovery failed")

	// ErrPKIResolution indicates the PKI endpoint returned an error.
	ErrPKIResolution = errors.New("paymail: PKI resolution failed")

	// ErrDestinationResolution indicates payment destination resolution failed.
	ErrDestinationResolution = errors.New("paymail: payment destination resolution failed")

	// ErrUnsupportedScript indicates the destination script is not P2PKH.
	ErrUnsupportedScript = errors.New("paymail: unsupported destination script")

	// ErrInvalidPubKey indicates a public key is not a valid compressed secp256k1 key.
	ErrInvalidPubKey = errors.New("paymail: invalid compressed public key")

	// ErrDNSLookupFailed indicates a DNS SRV lookup failed.
	ErrDNSLookupFailed = errors.New("paymail: DNS lookup failed")

	// ErrNoEndpoints indicates no SRV records were found for the domain.
	ErrNoEndpoints = errors.New("paymail: no endpoints found")

	// ErrDNSSECValidationFailed indicates the upstream resolver did not
	// authenticate the response.
	ErrDNSSECValidationFailed = errors.New("paymail: DNSSEC validation failed")
)
