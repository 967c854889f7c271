//go:build windows

package system

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yusufpapurcu/wmi"
)

type win32NetworkAdapter struct {
	NetConnectionID string
}

// activeAdapter returns the connection name of the first adapter whose
// NetConnectionStatus is 2 (connected).
func activeAdapter(ctx context.Context, _ Runner) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var adapters []win32NetworkAdapter
	err := wmi.Query("SELECT NetConnectionID FROM Win32_NetworkAdapter WHERE NetConnectionStatus = 2", &adapters)
	if err != nil {
		return "", errors.Wrap(err, "query network adapters")
	}

	states := make([]adapterState, 0, len(adapters))
	for _, a := range adapters {
		states = append(states, adapterState{name: a.NetConnectionID, up: true})
	}
	return firstConnected(states), nil
}

func platformCommands() (func(string, string, string) []command, func(string) []command, func(command) command) {
	return netshStatic, netshAutomatic, elevateRunAs
}

// fallbackDNSServer has nothing to read on Windows; nslookup ships with the OS.
func fallbackDNSServer() (string, bool) {
	return "", false
}
