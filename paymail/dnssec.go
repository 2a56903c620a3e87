package paymail

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	// defaultUpstream answers DNSSEC queries when no resolver is configured.
	defaultUpstream = "8.8.8.8:53"

	// defaultQueryTimeout bounds a single DNS exchange.
	defaultQueryTimeout = 10 * time.Second

	// udpBufferSize is advertised through EDNS0. Signed answers carry RRSIG
	// records and routinely exceed the classic 512-byte limit.
	udpBufferSize = 4096
)

// DNSSECResolver is a DNSResolver that refuses unauthenticated answers.
// Validation itself happens on the upstream recursive resolver: the client
// sets the DNSSEC OK bit on its queries and accepts a response only when
// the upstream reports it authenticated (AD flag).
type DNSSECResolver struct {
	// Upstream is the recursive resolver address, host:port.
	Upstream string

	// Timeout bounds each query; defaultQueryTimeout when zero.
	Timeout time.Duration
}

// NewDNSSECResolver returns a resolver querying upstream, or the default
// public resolver when upstream is empty.
func NewDNSSECResolver(upstream string) *DNSSECResolver {
	if upstream == "" {
		upstream = defaultUpstream
	}
	return &DNSSECResolver{Upstream: upstream}
}

// LookupSRV resolves _service._proto.name SRV records, failing with
// ErrDNSSECValidationFailed unless the upstream authenticated the answer.
// The cname return is always empty; miekg/dns exposes no canonical name
// for SRV answers the way net.LookupSRV does.
func (r *DNSSECResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	qname := dns.Fqdn("_" + service + "._" + proto + "." + name)

	resp, err := r.exchange(qname, dns.TypeSRV)
	if err != nil {
		return "", nil, err
	}

	var records []*net.SRV
	for _, answer := range resp.Answer {
		srv, ok := answer.(*dns.SRV)
		if !ok {
			continue
		}
		records = append(records, &net.SRV{
			Target:   strings.TrimSuffix(srv.Target, "."),
			Port:     srv.Port,
			Priority: srv.Priority,
			Weight:   srv.Weight,
		})
	}
	if len(records) == 0 {
		return "", nil, fmt.Errorf("%w: %s has no SRV records", ErrDNSLookupFailed, qname)
	}
	return "", records, nil
}

// exchange performs one query with the DNSSEC OK bit set and requires the
// AD flag on the response.
func (r *DNSSECResolver) exchange(qname string, qtype uint16) (*dns.Msg, error) {
	query := new(dns.Msg)
	query.SetQuestion(qname, qtype)
	query.RecursionDesired = true
	query.SetEdns0(udpBufferSize, true) // DNSSEC OK

	timeout := r.Timeout
	if timeout == 0 {
		timeout = defaultQueryTimeout
	}

	client := &dns.Client{Timeout: timeout}
	resp, _, err := client.Exchange(query, r.Upstream)
	if err != nil {
		return nil, fmt.Errorf("%w: %s query for %s against %s: %w",
			ErrDNSLookupFailed, dns.TypeToString[qtype], qname, r.Upstream, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess, dns.RcodeNameError:
		// NXDOMAIN still carries an authenticated denial of existence.
	default:
		return nil, fmt.Errorf("%w: %s query for %s: rcode %s",
			ErrDNSLookupFailed, dns.TypeToString[qtype], qname, dns.RcodeToString[resp.Rcode])
	}

	if !resp.AuthenticatedData {
		return nil, fmt.Errorf("%w: upstream %s answered %s without the AD flag",
			ErrDNSSECValidationFailed, r.Upstream, qname)
	}

	return resp, nil
}
