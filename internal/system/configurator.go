package system

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Configurator applies DNS settings with the platform's command-line tools.
type Configurator struct {
	runner    Runner
	static    func(adapter, primary, secondary string) []command
	automatic func(adapter string) []command
	// elevate wraps a command when the process lacks privileges; nil when
	// commands can run directly.
	elevate func(command) command
	log     zerolog.Logger
}

// NewConfigurator returns the configurator for the running platform.
func NewConfigurator(runner Runner, log zerolog.Logger) *Configurator {
	static, automatic, elevate := platformCommands()
	if isElevated() {
		elevate = nil
	}
	return newConfigurator(runner, static, automatic, elevate, log)
}

func newConfigurator(
	runner Runner,
	static func(adapter, primary, secondary string) []command,
	automatic func(adapter string) []command,
	elevate func(command) command,
	log zerolog.Logger,
) *Configurator {
	return &Configurator{
		runner:    runner,
		static:    static,
		automatic: automatic,
		elevate:   elevate,
		log:       log.With().Str("component", "configurator").Logger(),
	}
}

// ApplyStatic sets primary as the only server and then adds secondary after
// it. The second command is not attempted if the first one fails.
func (c *Configurator) ApplyStatic(ctx context.Context, adapter, primary, secondary string) error {
	if strings.TrimSpace(adapter) == "" {
		return ErrNoAdapter
	}
	c.log.Info().
		Str("adapter", adapter).
		Str("primary", primary).
		Str("secondary", secondary).
		Msg("Setting static DNS")
	return c.runAll(ctx, c.static(adapter, primary, secondary))
}

// ApplyAutomatic reverts the adapter to DHCP-assigned DNS. Running it on an
// adapter that is already automatic is harmless.
func (c *Configurator) ApplyAutomatic(ctx context.Context, adapter string) error {
	if strings.TrimSpace(adapter) == "" {
		return ErrNoAdapter
	}
	c.log.Info().Str("adapter", adapter).Msg("Reverting DNS to DHCP")
	return c.runAll(ctx, c.automatic(adapter))
}

func (c *Configurator) runAll(ctx context.Context, cmds []command) error {
	for _, cmd := range cmds {
		if c.elevate != nil {
			cmd = c.elevate(cmd)
		}
		if _, err := c.runner.Run(ctx, cmd.name, cmd.args...); err != nil {
			c.log.Error().Err(err).Msg("DNS command failed")
			return err
		}
	}
	return nil
}
