// Package system talks to the host operating system: it finds the active
// network adapter, reports the resolver currently answering queries and
// switches the adapter's DNS servers between a static pair and DHCP.
//
// Everything is done by running the platform's own tools (netsh, nmcli,
// networksetup, nslookup). Commands that change settings are run through an
// elevation helper when the process is not already privileged.
package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Unknown is reported when the current DNS server cannot be determined.
const Unknown = "Unknown"

// DefaultLookupHost is resolved to find out which server is answering.
const DefaultLookupHost = "google.com"

// ErrNoAdapter is returned when no adapter name is available.
var ErrNoAdapter = errors.New("no active network adapter found")

// Inspector reads the host's network state.
type Inspector interface {
	// ActiveAdapterName returns the first connected adapter, or "" if there
	// is none.
	ActiveAdapterName(ctx context.Context) (string, error)
	// CurrentDNSServer returns the address of the resolver that answered a
	// lookup, or Unknown. This is the server that happened to answer, which
	// is not necessarily what the adapter is configured with.
	CurrentDNSServer(ctx context.Context) string
}

// AdapterConfigurator changes the DNS servers of a named adapter.
type AdapterConfigurator interface {
	// ApplyStatic makes primary the first and secondary the second server.
	ApplyStatic(ctx context.Context, adapter, primary, secondary string) error
	// ApplyAutomatic reverts the adapter to DHCP-assigned servers.
	ApplyAutomatic(ctx context.Context, adapter string) error
}

// Runner runs an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type command struct {
	name string
	args []string
}

func (c command) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// CommandError describes a command that could not be started, timed out or
// exited with a non-zero status.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int // -1 when the process did not exit normally
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", command{e.Command, e.Args}, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
