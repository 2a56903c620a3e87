package paymail

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MaxResponseBytes caps how much of a paymail host's response is read.
const MaxResponseBytes = 1 << 20

// Capabilities holds the URL templates a paymail host advertises.
// Templates carry {alias} and {domain.tld} placeholders.
type Capabilities struct {
	BSVAlias           string // protocol version from the well-known document
	PKI                string // public key lookup template
	PaymentDestination string // payment destination template
	VerifyPubKey       string // key ownership verification template
}

// PKIResponse is the JSON body returned by a PKI endpoint.
type PKIResponse struct {
	BSVAlias string `json:"bsvalias"`
	Handle   string `json:"handle"`
	PubKey   string `json:"pubkey"` // hex-encoded compressed public key
}

// HTTPClient is the GET side of the HTTP layer.
// This allows tests to mock HTTP calls.
type HTTPClient interface {
	Get(url string) (*http.Response, error)
}

// DefaultHTTPClient is the production HTTP client.
var DefaultHTTPClient HTTPClient = &http.Client{Timeout: 30 * time.Second}

// wellKnownResponse represents the JSON structure of .well-known/bsvalias.
type wellKnownResponse struct {
	BSVAlias     string                 `json:"bsvalias"`
	Capabilities map[string]interface{} `json:"capabilities"`
}

// DiscoverCapabilities fetches .well-known/bsvalias from a domain and
// returns the host's capability templates.
func DiscoverCapabilities(domain string) (*Capabilities, error) {
	return DiscoverCapabilitiesWithClient(domain, DefaultHTTPClient)
}

// DiscoverCapabilitiesWithClient fetches capabilities using the provided HTTP client.
func DiscoverCapabilitiesWithClient(domain string, client HTTPClient) (*Capabilities, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrDiscoveryFailed)
	}

	wkURL := "https://" + domain + "/.well-known/bsvalias"
	resp, err := client.Get(wkURL)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrDiscoveryFailed, wkURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned status %d", ErrDiscoveryFailed, wkURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrDiscoveryFailed, err)
	}

	var wk wellKnownResponse
	if err := json.Unmarshal(body, &wk); err != nil {
		return nil, fmt.Errorf("%w: parsing JSON: %w", ErrDiscoveryFailed, err)
	}

	caps := &Capabilities{BSVAlias: wk.BSVAlias}
	for key, val := range wk.Capabilities {
		urlStr, ok := val.(string)
		if !ok {
			continue
		}
		switch key {
		case BRFCPKI, BRFCPKIAlternate:
			caps.PKI = urlStr
		case BRFCPaymentDestination, BRFCAddressResolution:
			caps.PaymentDestination = urlStr
		case BRFCVerifyPublicKeyOwner:
			caps.VerifyPubKey = urlStr
		}
	}

	return caps, nil
}

// ResolvePKI resolves a handle to the compressed public key its host
// asserts for it.
func ResolvePKI(h Handle) ([]byte, error) {
	return ResolvePKIWithClient(h, DefaultHTTPClient)
}

// ResolvePKIWithClient resolves PKI using the provided HTTP client.
func ResolvePKIWithClient(h Handle, client HTTPClient) ([]byte, error) {
	if h.Alias == "" || h.Domain == "" {
		return nil, fmt.Errorf("%w: alias and domain are required", ErrPKIResolution)
	}

	caps, err := DiscoverCapabilitiesWithClient(h.Domain, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPKIResolution, err)
	}
	if caps.PKI == "" {
		return nil, fmt.Errorf("%w: no PKI capability found for %s", ErrPKIResolution, h.Domain)
	}

	pkiURL := expandTemplate(caps.PKI, h)
	resp, err := client.Get(pkiURL)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrPKIResolution, pkiURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned status %d", ErrPKIResolution, pkiURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrPKIResolution, err)
	}

	var pki PKIResponse
	if err := json.Unmarshal(body, &pki); err != nil {
		return nil, fmt.Errorf("%w: parsing PKI response: %w", ErrPKIResolution, err)
	}
	if pki.PubKey == "" {
		return nil, fmt.Errorf("%w: empty public key in response", ErrPKIResolution)
	}

	pubKeyBytes, err := hex.DecodeString(pki.PubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex public key: %w", ErrInvalidPubKey, err)
	}
	if err := validateCompressedPubKey(pubKeyBytes); err != nil {
		return nil, err
	}

	return pubKeyBytes, nil
}

// expandTemplate substitutes {alias} and {domain.tld} in a capability URL
// template, path-escaping the values to prevent path traversal.
func expandTemplate(tmpl string, h Handle) string {
	out := strings.ReplaceAll(tmpl, "{alias}", url.PathEscape(h.Alias))
	return strings.ReplaceAll(out, "{domain.tld}", url.PathEscape(h.Domain))
}

// validateCompressedPubKey checks that raw bytes represent a valid compressed
// public key: exactly 33 bytes with prefix 0x02 or 0x03.
func validateCompressedPubKey(pub []byte) error {
	if len(pub) != 33 {
		return fmt.Errorf("%w: expected 33 bytes, got %d", ErrInvalidPubKey, len(pub))
	}
	if pub[0] != 0x02 && pub[0] != 0x03 {
		return fmt.Errorf("%w: invalid prefix byte 0x%02x", ErrInvalidPubKey, pub[0])
	}
	return nil
}
