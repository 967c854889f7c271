//go:build !windows

package system

import (
	"net/netip"

	"github.com/miekg/dns"
)

var resolvConfPath = "/etc/resolv.conf"

// fallbackDNSServer returns the first nameserver from resolv.conf. It is
// only consulted when nslookup is missing or its output cannot be parsed.
func fallbackDNSServer() (string, bool) {
	return resolvConfServer(resolvConfPath)
}

func resolvConfServer(path string) (string, bool) {
	conf, err := dns.ClientConfigFromFile(path)
	if err != nil || len(conf.Servers) == 0 {
		return "", false
	}
	addr, err := netip.ParseAddr(conf.Servers[0])
	if err != nil {
		return "", false
	}
	return addr.String(), true
}
