// Package fake provides an in-memory stand-in for the host network so the
// selector can be exercised without administrator rights.
package fake

import (
	"context"
	"sync"

	"github.com/zkmkarlsruhe/dnschanger/internal/system"
)

var (
	_ system.Inspector           = (*Host)(nil)
	_ system.AdapterConfigurator = (*Host)(nil)
)

// Call records one configurator invocation.
type Call struct {
	Method    string
	Adapter   string
	Primary   string
	Secondary string
}

// Host implements system.Inspector and system.AdapterConfigurator. It
// records calls and tracks the servers a real adapter would end up with.
type Host struct {
	mu sync.Mutex

	// Adapter is returned by ActiveAdapterName.
	Adapter string
	// AdapterErr is returned by ActiveAdapterName when set.
	AdapterErr error
	// ApplyErr is returned by both apply methods when set; no state changes.
	ApplyErr error
	// DHCPServer is reported by CurrentDNSServer in automatic mode.
	DHCPServer string

	calls   []Call
	servers []string
}

// NewHost returns a host with one connected adapter named adapter.
func NewHost(adapter string) *Host {
	return &Host{Adapter: adapter, DHCPServer: "192.168.1.1"}
}

func (h *Host) ActiveAdapterName(context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.AdapterErr != nil {
		return "", h.AdapterErr
	}
	return h.Adapter, nil
}

func (h *Host) CurrentDNSServer(context.Context) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.servers) > 0 {
		return h.servers[0]
	}
	if h.DHCPServer == "" {
		return system.Unknown
	}
	return h.DHCPServer
}

func (h *Host) ApplyStatic(_ context.Context, adapter, primary, secondary string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, Call{Method: "ApplyStatic", Adapter: adapter, Primary: primary, Secondary: secondary})
	if h.ApplyErr != nil {
		return h.ApplyErr
	}
	h.servers = []string{primary, secondary}
	return nil
}

func (h *Host) ApplyAutomatic(_ context.Context, adapter string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, Call{Method: "ApplyAutomatic", Adapter: adapter})
	if h.ApplyErr != nil {
		return h.ApplyErr
	}
	h.servers = nil
	return nil
}

// Calls returns the recorded calls in order.
func (h *Host) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Call(nil), h.calls...)
}

// Servers returns the statically configured servers, nil in DHCP mode.
func (h *Host) Servers() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.servers...)
}
