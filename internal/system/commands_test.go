package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetshCommands(t *testing.T) {
	tests := []struct {
		name string
		got  []command
		want []command
	}{
		{
			name: "static ipv4",
			got:  netshStatic("Wi-Fi", "8.8.8.8", "8.8.4.4"),
			want: []command{
				{"netsh", []string{"interface", "ipv4", "set", "dnsservers", "name=Wi-Fi", "source=static", "address=8.8.8.8", "validate=no"}},
				{"netsh", []string{"interface", "ipv4", "add", "dnsservers", "name=Wi-Fi", "address=8.8.4.4", "index=2", "validate=no"}},
			},
		},
		{
			name: "static unreachable private servers",
			got:  netshStatic("Wi-Fi", "10.202.10.10", "10.202.10.11"),
			want: []command{
				{"netsh", []string{"interface", "ipv4", "set", "dnsservers", "name=Wi-Fi", "source=static", "address=10.202.10.10", "validate=no"}},
				{"netsh", []string{"interface", "ipv4", "add", "dnsservers", "name=Wi-Fi", "address=10.202.10.11", "index=2", "validate=no"}},
			},
		},
		{
			name: "static ipv6",
			got:  netshStatic("Ethernet 2", "2606:4700:4700::1111", "2606:4700:4700::1001"),
			want: []command{
				{"netsh", []string{"interface", "ipv6", "set", "dnsservers", "name=Ethernet 2", "source=static", "address=2606:4700:4700::1111", "validate=no"}},
				{"netsh", []string{"interface", "ipv6", "add", "dnsservers", "name=Ethernet 2", "address=2606:4700:4700::1001", "index=2", "validate=no"}},
			},
		},
		{
			name: "automatic",
			got:  netshAutomatic("Wi-Fi"),
			want: []command{
				{"netsh", []string{"interface", "ipv4", "set", "dnsservers", "name=Wi-Fi", "source=dhcp"}},
				{"netsh", []string{"interface", "ipv6", "set", "dnsservers", "name=Wi-Fi", "source=dhcp"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestNmcliCommands(t *testing.T) {
	assert.Equal(t, []command{
		{"nmcli", []string{"device", "modify", "wlan0", "ipv4.dns", "1.1.1.1", "ipv4.ignore-auto-dns", "yes"}},
		{"nmcli", []string{"device", "modify", "wlan0", "+ipv4.dns", "1.0.0.1"}},
	}, nmcliStatic("wlan0", "1.1.1.1", "1.0.0.1"))

	assert.Equal(t, []command{
		{"nmcli", []string{"device", "modify", "eth0", "ipv6.dns", "2001:4860:4860::8888", "ipv6.ignore-auto-dns", "yes"}},
		{"nmcli", []string{"device", "modify", "eth0", "+ipv6.dns", "2001:4860:4860::8844"}},
	}, nmcliStatic("eth0", "2001:4860:4860::8888", "2001:4860:4860::8844"))

	auto := nmcliAutomatic("eth0")
	assert.Len(t, auto, 1)
	assert.Equal(t, []string{"device", "modify", "eth0",
		"ipv4.dns", "", "ipv4.ignore-auto-dns", "no",
		"ipv6.dns", "", "ipv6.ignore-auto-dns", "no"}, auto[0].args)
}

func TestNetworksetupCommands(t *testing.T) {
	assert.Equal(t, []command{
		{"networksetup", []string{"-setdnsservers", "Wi-Fi", "9.9.9.9"}},
		{"networksetup", []string{"-setdnsservers", "Wi-Fi", "9.9.9.9", "149.112.112.112"}},
	}, networksetupStatic("Wi-Fi", "9.9.9.9", "149.112.112.112"))

	assert.Equal(t, []command{
		{"networksetup", []string{"-setdnsservers", "Wi-Fi", "empty"}},
	}, networksetupAutomatic("Wi-Fi"))
}

func TestElevateRunAs(t *testing.T) {
	c := elevateRunAs(command{"netsh", []string{"interface", "ipv4", "set", "dnsservers", "name=Bob's Wi-Fi", "source=dhcp"}})

	assert.Equal(t, "powershell", c.name)
	assert.Equal(t, []string{"-NoProfile", "-NonInteractive", "-Command",
		"$ErrorActionPreference = 'Stop'; " +
			"$out = [IO.Path]::GetTempFileName(); " +
			"try { " +
			`$p = Start-Process -FilePath 'cmd.exe' -ArgumentList ('/d /s /c "' + ` +
			`'netsh interface ipv4 set dnsservers "name=Bob''s Wi-Fi" source=dhcp'` +
			` + ' > "' + $out + '" 2>&1"') ` +
			"-Verb RunAs -Wait -PassThru -WindowStyle Hidden; " +
			"Get-Content -Raw -LiteralPath $out; " +
			"exit $p.ExitCode " +
			"} finally { Remove-Item -LiteralPath $out -ErrorAction SilentlyContinue }",
	}, c.args)
}

func TestElevatePkexec(t *testing.T) {
	c := elevatePkexec(command{"nmcli", []string{"device", "modify", "eth0"}})
	assert.Equal(t, command{"pkexec", []string{"nmcli", "device", "modify", "eth0"}}, c)
}

func TestElevateOsascript(t *testing.T) {
	c := elevateOsascript(command{"networksetup", []string{"-setdnsservers", `Bob's "Wi-Fi"`, "empty"}})

	assert.Equal(t, "osascript", c.name)
	assert.Equal(t, []string{"-e",
		`do shell script "networksetup -setdnsservers 'Bob'\"'\"'s \"Wi-Fi\"' empty" with administrator privileges`,
	}, c.args)
}

func TestWindowsQuote(t *testing.T) {
	tests := map[string]string{
		"dhcp":          "dhcp",
		"name=Wi-Fi 2":  `"name=Wi-Fi 2"`,
		"":              `""`,
		`a"b`:           `"a\"b"`,
		`a\"b`:          `"a\\\"b"`,
		`C:\my dir\`:    `"C:\my dir\\"`,
		`C:\dir\file`:   `C:\dir\file`,
		`tab\there\\ x`: `"tab\there\\ x"`,
	}
	for in, want := range tests {
		assert.Equal(t, want, windowsQuote(in), in)
	}
}
