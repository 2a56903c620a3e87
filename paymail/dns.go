package paymail

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
)

// SRVService is the bsvalias SRV service label: _bsvalias._tcp.{domain}.
const SRVService = "bsvalias"

// DNSResolver is the SRV lookup seam. Production code uses the net package
// (or a DNSSECResolver); tests script it.
type DNSResolver interface {
	// LookupSRV looks up SRV records for the given service, proto, and name.
	LookupSRV(service, proto, name string) (string, []*net.SRV, error)
}

type netResolver struct{}

func (netResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	return net.LookupSRV(service, proto, name)
}

// DefaultDNSResolver is the production DNS resolver using the net package.
var DefaultDNSResolver DNSResolver = netResolver{}

// ResolveEndpoints returns the paymail hosts serving a domain, as host:port
// strings from the domain's _bsvalias._tcp SRV records. Records come back
// ordered by ascending priority, heavier weight first within a priority.
func ResolveEndpoints(domain string) ([]string, error) {
	return ResolveEndpointsWithResolver(domain, DefaultDNSResolver)
}

// ResolveEndpointsWithResolver resolves SRV records through the provided
// resolver.
func ResolveEndpointsWithResolver(domain string, resolver DNSResolver) ([]string, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	_, records, err := resolver.LookupSRV(SRVService, "tcp", domain)
	if err != nil {
		return nil, fmt.Errorf("%w: SRV lookup for _%s._tcp.%s: %w", ErrDNSLookupFailed, SRVService, domain, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no SRV records for _%s._tcp.%s", ErrNoEndpoints, SRVService, domain)
	}

	orderByPreference(records)

	endpoints := make([]string, 0, len(records))
	for _, rec := range records {
		host := strings.TrimSuffix(rec.Target, ".")
		endpoints = append(endpoints, net.JoinHostPort(host, strconv.Itoa(int(rec.Port))))
	}
	return endpoints, nil
}

// orderByPreference sorts SRV records the way RFC 2782 clients pick them:
// lowest priority first, and within a priority the heavier weight first.
func orderByPreference(records []*net.SRV) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Priority != records[j].Priority {
			return records[i].Priority < records[j].Priority
		}
		return records[i].Weight > records[j].Weight
	})
}
