package system

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInspector(runner Runner) *HostInspector {
	i := NewInspector(runner, "", zerolog.Nop())
	i.fallback = nil
	return i
}

func TestCurrentDNSServer(t *testing.T) {
	runner := &recordingRunner{outputs: map[string]string{
		"nslookup google.com": "Server:  dns.google\nAddress:  8.8.8.8\n\nName: google.com\nAddress: 1.2.3.4\n",
	}}
	i := newTestInspector(runner)

	assert.Equal(t, "8.8.8.8", i.CurrentDNSServer(context.Background()))
	assert.Equal(t, []command{{"nslookup", []string{"google.com"}}}, runner.ran)
}

func TestCurrentDNSServerCustomHost(t *testing.T) {
	runner := &recordingRunner{outputs: map[string]string{
		"nslookup example.org": "Server:\t\t1.1.1.1\nAddress:\t1.1.1.1#53\n",
	}}
	i := NewInspector(runner, "example.org", zerolog.Nop())
	i.fallback = nil

	assert.Equal(t, "1.1.1.1", i.CurrentDNSServer(context.Background()))
}

func TestCurrentDNSServerUnknown(t *testing.T) {
	t.Run("unparsable", func(t *testing.T) {
		i := newTestInspector(&recordingRunner{})
		assert.Equal(t, Unknown, i.CurrentDNSServer(context.Background()))
	})

	t.Run("command error", func(t *testing.T) {
		i := newTestInspector(&recordingRunner{failAt: 1})
		assert.Equal(t, Unknown, i.CurrentDNSServer(context.Background()))
	})
}

func TestCurrentDNSServerFallback(t *testing.T) {
	i := newTestInspector(&recordingRunner{failAt: 1})
	i.fallback = func() (string, bool) { return "10.0.0.1", true }

	assert.Equal(t, "10.0.0.1", i.CurrentDNSServer(context.Background()))
}

func TestActiveAdapterName(t *testing.T) {
	i := newTestInspector(&recordingRunner{})

	i.adapter = func(context.Context, Runner) (string, error) { return "Wi-Fi", nil }
	name, err := i.ActiveAdapterName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Wi-Fi", name)

	i.adapter = func(context.Context, Runner) (string, error) { return "", nil }
	name, err = i.ActiveAdapterName(context.Background())
	require.NoError(t, err)
	assert.Empty(t, name)

	boom := errors.New("wmi unavailable")
	i.adapter = func(context.Context, Runner) (string, error) { return "", boom }
	_, err = i.ActiveAdapterName(context.Background())
	assert.ErrorIs(t, err, boom)
}
