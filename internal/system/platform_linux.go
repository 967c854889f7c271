//go:build linux

package system

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"github.com/vishvananda/netlink"
)

// activeAdapter returns the first non-loopback link that is operationally up.
// DNS changes go through NetworkManager, which addresses devices by the same
// interface name.
func activeAdapter(ctx context.Context, _ Runner) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	links, err := netlink.LinkList()
	if err != nil {
		return "", errors.Wrap(err, "list network links")
	}

	states := make([]adapterState, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()
		states = append(states, adapterState{
			name:     attrs.Name,
			up:       attrs.OperState == netlink.OperUp,
			loopback: attrs.Flags&net.FlagLoopback != 0,
		})
	}
	return firstConnected(states), nil
}

func platformCommands() (func(string, string, string) []command, func(string) []command, func(command) command) {
	return nmcliStatic, nmcliAutomatic, elevatePkexec
}
