package system

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	ran     []command
	outputs map[string]string
	// failAt makes the n-th call (1-based) fail.
	failAt int
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	c := command{name, args}
	r.ran = append(r.ran, c)
	if r.failAt == len(r.ran) {
		return []byte("The requested operation requires elevation."), &CommandError{
			Command:  name,
			Args:     args,
			ExitCode: 1,
			Output:   "The requested operation requires elevation.",
			Err:      errors.New("exit status 1"),
		}
	}
	return []byte(r.outputs[c.String()]), nil
}

func TestConfiguratorApplyStatic(t *testing.T) {
	runner := &recordingRunner{}
	c := newConfigurator(runner, netshStatic, netshAutomatic, nil, zerolog.Nop())

	require.NoError(t, c.ApplyStatic(context.Background(), "Wi-Fi", "8.8.8.8", "8.8.4.4"))
	assert.Equal(t, netshStatic("Wi-Fi", "8.8.8.8", "8.8.4.4"), runner.ran)
}

func TestConfiguratorElevates(t *testing.T) {
	runner := &recordingRunner{}
	c := newConfigurator(runner, nmcliStatic, nmcliAutomatic, elevatePkexec, zerolog.Nop())

	require.NoError(t, c.ApplyAutomatic(context.Background(), "eth0"))
	require.Len(t, runner.ran, 1)
	assert.Equal(t, "pkexec", runner.ran[0].name)
	assert.Equal(t, "nmcli", runner.ran[0].args[0])
}

func TestConfiguratorStopsOnFailure(t *testing.T) {
	runner := &recordingRunner{failAt: 1}
	c := newConfigurator(runner, netshStatic, netshAutomatic, nil, zerolog.Nop())

	err := c.ApplyStatic(context.Background(), "Wi-Fi", "8.8.8.8", "8.8.4.4")
	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, cerr.ExitCode)
	assert.Contains(t, err.Error(), "requires elevation")
	assert.Len(t, runner.ran, 1, "secondary must not be added after the primary failed")
}

func TestConfiguratorSecondCommandFailure(t *testing.T) {
	runner := &recordingRunner{failAt: 2}
	c := newConfigurator(runner, netshStatic, netshAutomatic, nil, zerolog.Nop())

	err := c.ApplyStatic(context.Background(), "Wi-Fi", "8.8.8.8", "8.8.4.4")
	require.Error(t, err)
	assert.Len(t, runner.ran, 2)
}

func TestConfiguratorRequiresAdapter(t *testing.T) {
	runner := &recordingRunner{}
	c := newConfigurator(runner, netshStatic, netshAutomatic, nil, zerolog.Nop())

	assert.ErrorIs(t, c.ApplyStatic(context.Background(), "", "8.8.8.8", "8.8.4.4"), ErrNoAdapter)
	assert.ErrorIs(t, c.ApplyAutomatic(context.Background(), "  "), ErrNoAdapter)
	assert.Empty(t, runner.ran)
}

func TestConfiguratorAutomaticTwice(t *testing.T) {
	runner := &recordingRunner{}
	c := newConfigurator(runner, netshStatic, netshAutomatic, nil, zerolog.Nop())

	require.NoError(t, c.ApplyAutomatic(context.Background(), "Wi-Fi"))
	require.NoError(t, c.ApplyAutomatic(context.Background(), "Wi-Fi"))
	require.Len(t, runner.ran, 4)
	assert.Equal(t, runner.ran[:2], runner.ran[2:])
}
