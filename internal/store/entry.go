package store

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/pkg/errors"
)

// AutomaticTitle names the pseudo entry that reverts the adapter to DHCP.
const AutomaticTitle = "Automatic"

// ErrInvalidEntry matches every error returned by Validate.
var ErrInvalidEntry = errors.New("invalid DNS entry")

// invalidEntryError carries a message meant for the user and matches
// ErrInvalidEntry with errors.Is.
type invalidEntryError string

func (e invalidEntryError) Error() string { return string(e) }

func (e invalidEntryError) Is(target error) bool { return target == ErrInvalidEntry }

// Entry is a named pair of DNS servers.
type Entry struct {
	Title        string `json:"Title"`
	PrimaryDns   string `json:"PrimaryDns"`
	SecondaryDns string `json:"SecondaryDns"`
}

// Automatic returns the display-only entry for DHCP-assigned DNS.
func Automatic() Entry {
	return Entry{Title: AutomaticTitle, PrimaryDns: "DHCP", SecondaryDns: "Auto"}
}

// IsAutomatic reports whether e is the DHCP pseudo entry.
func (e Entry) IsAutomatic() bool {
	return strings.EqualFold(strings.TrimSpace(e.Title), AutomaticTitle)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s - %s, %s", e.Title, e.PrimaryDns, e.SecondaryDns)
}

// Normalize trims surrounding whitespace from every field.
func (e Entry) Normalize() Entry {
	return Entry{
		Title:        strings.TrimSpace(e.Title),
		PrimaryDns:   strings.TrimSpace(e.PrimaryDns),
		SecondaryDns: strings.TrimSpace(e.SecondaryDns),
	}
}

// Validate checks that a new entry may enter the store.
func Validate(e Entry) error {
	e = e.Normalize()
	if e.Title == "" || e.PrimaryDns == "" || e.SecondaryDns == "" {
		return invalidEntryError("All fields are required.")
	}
	if e.IsAutomatic() {
		return invalidEntryError(fmt.Sprintf("The title %q is reserved.", AutomaticTitle))
	}
	if !IsIP(e.PrimaryDns) || !IsIP(e.SecondaryDns) {
		return invalidEntryError("Invalid DNS address, please enter a valid IP.")
	}
	if isIPv4(e.PrimaryDns) != isIPv4(e.SecondaryDns) {
		return invalidEntryError("Primary and secondary DNS must both be IPv4 or both be IPv6.")
	}
	return nil
}

// IsIP reports whether s is a plain IPv4 or IPv6 literal. Zoned IPv6
// addresses are rejected since they cannot be configured as resolvers.
func IsIP(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return addr.Zone() == ""
}

// isIPv4 reports whether s is an IPv4 literal, including the IPv4-mapped
// IPv6 form.
func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Unmap().Is4()
}
