package system

import (
	"context"

	"github.com/rs/zerolog"
)

// HostInspector implements Inspector for the running platform.
type HostInspector struct {
	runner     Runner
	lookupHost string
	adapter    func(ctx context.Context, runner Runner) (string, error)
	fallback   func() (string, bool)
	log        zerolog.Logger
}

// NewInspector returns an inspector that resolves lookupHost to find the
// current server. An empty lookupHost means DefaultLookupHost.
func NewInspector(runner Runner, lookupHost string, log zerolog.Logger) *HostInspector {
	if lookupHost == "" {
		lookupHost = DefaultLookupHost
	}
	return &HostInspector{
		runner:     runner,
		lookupHost: lookupHost,
		adapter:    activeAdapter,
		fallback:   fallbackDNSServer,
		log:        log.With().Str("component", "inspector").Logger(),
	}
}

func (i *HostInspector) ActiveAdapterName(ctx context.Context) (string, error) {
	name, err := i.adapter(ctx, i.runner)
	if err != nil {
		return "", err
	}
	i.log.Debug().Str("adapter", name).Msg("Active adapter")
	return name, nil
}

func (i *HostInspector) CurrentDNSServer(ctx context.Context) string {
	output, err := i.runner.Run(ctx, "nslookup", i.lookupHost)
	if err == nil {
		if server, ok := parseNslookup(string(output)); ok {
			return server
		}
		i.log.Debug().Str("output", string(output)).Msg("Could not parse nslookup output")
	} else {
		i.log.Debug().Err(err).Msg("nslookup failed")
	}

	if i.fallback != nil {
		if server, ok := i.fallback(); ok {
			return server
		}
	}
	return Unknown
}
