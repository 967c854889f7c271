package system

import (
	"net/netip"
	"strings"
)

// parseNslookup extracts the answering server from nslookup output.
//
// Windows prints
//
//	Server:  dns.google
//	Address:  8.8.8.8
//
// while BIND's nslookup prints
//
//	Server:		127.0.0.53
//	Address:	127.0.0.53#53
//
// In both cases the server is the first Address line after the Server line.
func parseNslookup(output string) (string, bool) {
	seenServer := false
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Server:"):
			seenServer = true
		case seenServer && strings.HasPrefix(line, "Address:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "Address:"))
			if i := strings.LastIndexByte(value, '#'); i >= 0 {
				value = value[:i]
			}
			addr, err := netip.ParseAddr(value)
			if err != nil {
				return "", false
			}
			return addr.String(), true
		case line == "":
			if seenServer {
				return "", false
			}
		}
	}
	return "", false
}

type adapterState struct {
	name     string
	up       bool
	loopback bool
}

// firstConnected returns the first usable adapter in enumeration order.
func firstConnected(adapters []adapterState) string {
	for _, a := range adapters {
		if a.up && !a.loopback && a.name != "" {
			return a.name
		}
	}
	return ""
}

// parseNetworkServices parses `networksetup -listallnetworkservices`,
// skipping the header and disabled services (marked with *).
func parseNetworkServices(output string) []string {
	var services []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "*") || strings.Contains(line, "denotes") {
			continue
		}
		services = append(services, line)
	}
	return services
}

// serviceHasAddress reports whether `networksetup -getinfo` output shows an
// assigned IPv4 address.
func serviceHasAddress(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		value, ok := strings.CutPrefix(strings.TrimSpace(line), "IP address:")
		if !ok {
			continue
		}
		addr, err := netip.ParseAddr(strings.TrimSpace(value))
		if err == nil && !addr.IsUnspecified() {
			return true
		}
	}
	return false
}
