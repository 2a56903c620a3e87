// Package paymail resolves human-readable payment handles (alias@domain)
// to P2PKH addresses the wallet can pay.
//
// Resolution follows the bsvalias protocol: capability discovery via
// .well-known/bsvalias, a POST to the host's payment destination endpoint,
// and optional host discovery through _bsvalias._tcp SRV records with
// DNSSEC validation.
package paymail

import (
	"fmt"
	"strings"
)

// Handle is a parsed payment handle.
type Handle struct {
	Alias  string
	Domain string
}

// String reassembles the handle in its canonical alias@domain form.
func (h Handle) String() string { return h.Alias + "@" + h.Domain }

// ParseHandle parses "alias@domain" into a Handle. Handles are
// case-insensitive; both parts come back lowercased.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Handle{}, fmt.Errorf("%w: empty handle", ErrInvalidHandle)
	}
	if strings.Count(s, "@") != 1 {
		return Handle{}, fmt.Errorf("%w: %q must contain exactly one @", ErrInvalidHandle, s)
	}

	at := strings.Index(s, "@")
	alias, domain := s[:at], s[at+1:]
	if alias == "" {
		return Handle{}, fmt.Errorf("%w: %q has an empty alias", ErrInvalidHandle, s)
	}
	if domain == "" {
		return Handle{}, fmt.Errorf("%w: %q has an empty domain", ErrInvalidHandle, s)
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return Handle{}, fmt.Errorf("%w: %q contains whitespace", ErrInvalidHandle, s)
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return Handle{}, fmt.Errorf("%w: %q is not a valid domain", ErrInvalidHandle, domain)
	}

	return Handle{
		Alias:  strings.ToLower(alias),
		Domain: strings.ToLower(domain),
	}, nil
}
