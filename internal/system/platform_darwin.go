//go:build darwin

package system

import (
	"context"

	"github.com/pkg/errors"
)

// activeAdapter returns the first enabled network service that has an IP
// address. networksetup addresses services, not BSD interface names.
func activeAdapter(ctx context.Context, runner Runner) (string, error) {
	output, err := runner.Run(ctx, "networksetup", "-listallnetworkservices")
	if err != nil {
		return "", errors.Wrap(err, "list network services")
	}

	for _, service := range parseNetworkServices(string(output)) {
		info, err := runner.Run(ctx, "networksetup", "-getinfo", service)
		if err != nil {
			continue
		}
		if serviceHasAddress(string(info)) {
			return service, nil
		}
	}
	return "", nil
}

func platformCommands() (func(string, string, string) []command, func(string) []command, func(command) command) {
	return networksetupStatic, networksetupAutomatic, elevateOsascript
}
