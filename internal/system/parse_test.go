package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNslookup(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		ok     bool
	}{
		{
			name: "windows",
			output: "Server:  dns.google\r\n" +
				"Address:  8.8.8.8\r\n" +
				"\r\n" +
				"Non-authoritative answer:\r\n" +
				"Name:    google.com\r\n" +
				"Addresses:  2a00:1450:4001:80b::200e\r\n" +
				"          142.250.185.78\r\n",
			want: "8.8.8.8",
			ok:   true,
		},
		{
			name: "windows unknown server name",
			output: "Server:  UnKnown\n" +
				"Address:  192.168.1.1\n\n" +
				"Name:    google.com\n" +
				"Address:  142.250.185.78\n",
			want: "192.168.1.1",
			ok:   true,
		},
		{
			name: "bind",
			output: "Server:\t\t127.0.0.53\n" +
				"Address:\t127.0.0.53#53\n\n" +
				"Non-authoritative answer:\n" +
				"Name:\tgoogle.com\n" +
				"Address: 142.250.185.78\n",
			want: "127.0.0.53",
			ok:   true,
		},
		{
			name:   "bind ipv6 server",
			output: "Server:\t\t2001:4860:4860::8888\nAddress:\t2001:4860:4860::8888#53\n",
			want:   "2001:4860:4860::8888",
			ok:     true,
		},
		{
			name:   "timed out",
			output: "DNS request timed out.\n    timeout was 2 seconds.\n",
		},
		{
			name:   "server without address",
			output: "Server:  dns.google\n\nName:    google.com\nAddress:  142.250.185.78\n",
		},
		{
			name:   "garbage address",
			output: "Server:  x\nAddress:  not-an-ip\n",
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNslookup(tt.output)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstConnected(t *testing.T) {
	assert.Equal(t, "", firstConnected(nil))
	assert.Equal(t, "wlan0", firstConnected([]adapterState{
		{name: "lo", up: true, loopback: true},
		{name: "eth0", up: false},
		{name: "wlan0", up: true},
		{name: "eth1", up: true},
	}))
	assert.Equal(t, "", firstConnected([]adapterState{
		{name: "lo", up: true, loopback: true},
		{name: "eth0"},
	}))
}

func TestParseNetworkServices(t *testing.T) {
	output := "An asterisk (*) denotes that a network service is disabled.\n" +
		"USB 10/100/1000 LAN\n" +
		"*Thunderbolt Bridge\n" +
		"Wi-Fi\n" +
		"\n"
	assert.Equal(t, []string{"USB 10/100/1000 LAN", "Wi-Fi"}, parseNetworkServices(output))
}

func TestServiceHasAddress(t *testing.T) {
	connected := "DHCP Configuration\nIP address: 192.168.1.23\nSubnet mask: 255.255.255.0\nRouter: 192.168.1.1\n"
	assert.True(t, serviceHasAddress(connected))

	disconnected := "DHCP Configuration\nIP address: none\nRouter: none\n"
	assert.False(t, serviceHasAddress(disconnected))

	unspecified := "Manual Configuration\nIP address: 0.0.0.0\n"
	assert.False(t, serviceHasAddress(unspecified))
}
