package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Resolver finds the client address of a request. Headers are consulted in
// order and only when the service runs behind a proxy that sets them;
// otherwise RemoteAddr is used.
type Resolver struct {
	headers []string
}

// ProxyHeaders are the headers set by common reverse proxies. Clients can
// send them too, so pass them to NewResolver only behind a proxy that
// overwrites them.
var ProxyHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// NewResolver trusts the given headers in order. Without headers only
// RemoteAddr is used.
func NewResolver(headers ...string) *Resolver {
	trusted := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			trusted = append(trusted, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{headers: trusted}
}

// IP returns the normalized client IP, or "" when none can be determined.
// X-Forwarded-For style lists yield their first valid address.
func (res *Resolver) IP(r *http.Request) string {
	for _, name := range res.headers {
		for _, value := range r.Header.Values(name) {
			for part := range strings.SplitSeq(value, ",") {
				if ip := parse(part); ip != "" {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	// IPv4-mapped IPv6 and zones would otherwise split one client into several keys
	return addr.Unmap().WithZone("").String()
}
