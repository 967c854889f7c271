package system

import (
	"net/netip"
	"strings"

	"github.com/alessio/shellescape"
)

func isIPv6(addr string) bool {
	a, err := netip.ParseAddr(addr)
	return err == nil && a.Is6() && !a.Is4In6()
}

// netsh

func netshContext(addr string) string {
	if isIPv6(addr) {
		return "ipv6"
	}
	return "ipv4"
}

// netshStatic skips netsh's reachability check; an unreachable server would
// otherwise fail the first command and leave the secondary unset.
func netshStatic(adapter, primary, secondary string) []command {
	family := netshContext(primary)
	return []command{
		{"netsh", []string{"interface", family, "set", "dnsservers",
			"name=" + adapter, "source=static", "address=" + primary, "validate=no"}},
		{"netsh", []string{"interface", family, "add", "dnsservers",
			"name=" + adapter, "address=" + secondary, "index=2", "validate=no"}},
	}
}

// netshAutomatic resets both families; either may hold static servers.
func netshAutomatic(adapter string) []command {
	return []command{
		{"netsh", []string{"interface", "ipv4", "set", "dnsservers", "name=" + adapter, "source=dhcp"}},
		{"netsh", []string{"interface", "ipv6", "set", "dnsservers", "name=" + adapter, "source=dhcp"}},
	}
}

// nmcli

func nmcliFamily(addr string) string {
	if isIPv6(addr) {
		return "ipv6"
	}
	return "ipv4"
}

// nmcliStatic expects both servers in the same address family.
func nmcliStatic(adapter, primary, secondary string) []command {
	family := nmcliFamily(primary)
	return []command{
		{"nmcli", []string{"device", "modify", adapter, family + ".dns", primary, family + ".ignore-auto-dns", "yes"}},
		{"nmcli", []string{"device", "modify", adapter, "+" + family + ".dns", secondary}},
	}
}

func nmcliAutomatic(adapter string) []command {
	return []command{
		{"nmcli", []string{"device", "modify", adapter,
			"ipv4.dns", "", "ipv4.ignore-auto-dns", "no",
			"ipv6.dns", "", "ipv6.ignore-auto-dns", "no"}},
	}
}

// networksetup

func networksetupStatic(service, primary, secondary string) []command {
	return []command{
		{"networksetup", []string{"-setdnsservers", service, primary}},
		{"networksetup", []string{"-setdnsservers", service, primary, secondary}},
	}
}

func networksetupAutomatic(service string) []command {
	return []command{
		{"networksetup", []string{"-setdnsservers", service, "empty"}},
	}
}

// elevation

// elevateRunAs starts c through PowerShell with the RunAs verb so Windows
// shows a UAC prompt. Start-Process cannot redirect an elevated child, so
// the child runs under cmd.exe writing its output to a temp file, which is
// echoed back afterwards. The child's exit code becomes PowerShell's exit
// code; a cancelled prompt is a terminating error and exits non-zero.
func elevateRunAs(c command) command {
	line := windowsQuote(c.name)
	for _, a := range c.args {
		line += " " + windowsQuote(a)
	}
	script := "$ErrorActionPreference = 'Stop'; " +
		"$out = [IO.Path]::GetTempFileName(); " +
		"try { " +
		`$p = Start-Process -FilePath 'cmd.exe' -ArgumentList ('/d /s /c "' + ` + psQuote(line) + ` + ' > "' + $out + '" 2>&1"') ` +
		"-Verb RunAs -Wait -PassThru -WindowStyle Hidden; " +
		"Get-Content -Raw -LiteralPath $out; " +
		"exit $p.ExitCode " +
		"} finally { Remove-Item -LiteralPath $out -ErrorAction SilentlyContinue }"
	return command{"powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}}
}

func elevatePkexec(c command) command {
	return command{"pkexec", append([]string{c.name}, c.args...)}
}

// elevateOsascript runs c through AppleScript's administrator prompt.
func elevateOsascript(c command) command {
	line := shellescape.QuoteCommand(append([]string{c.name}, c.args...))
	line = strings.ReplaceAll(line, `\`, `\\`)
	line = strings.ReplaceAll(line, `"`, `\"`)
	return command{"osascript", []string{"-e", `do shell script "` + line + `" with administrator privileges`}}
}

// windowsQuote quotes one argument the way CommandLineToArgvW splits it:
// backslashes are literal unless they precede a double quote.
func windowsQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"") {
		return s
	}

	var b strings.Builder
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			slashes++
			b.WriteByte(c)
		case '"':
			b.WriteString(strings.Repeat(`\`, slashes+1))
			b.WriteByte(c)
			slashes = 0
		default:
			slashes = 0
			b.WriteByte(c)
		}
	}
	b.WriteString(strings.Repeat(`\`, slashes))
	b.WriteByte('"')
	return b.String()
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
