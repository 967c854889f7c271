// Package probe measures whether the servers of stored DNS entries answer
// and how quickly. It only sends queries; adapter settings are not touched.
package probe

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"github.com/zkmkarlsruhe/dnschanger/internal/store"
)

const (
	defaultTimeout = 3 * time.Second
	defaultWorkers = 4
)

// Result is the outcome for one server of one entry.
type Result struct {
	Entry  store.Entry
	Server string
	Rcode  int
	RTT    time.Duration
	Err    error
}

// OK reports whether the server answered without a server failure.
func (r Result) OK() bool {
	return r.Err == nil && r.Rcode != dns.RcodeServerFailure && r.Rcode != dns.RcodeRefused
}

// Status renders the result for display.
func (r Result) Status() string {
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case !r.OK():
		return dns.RcodeToString[r.Rcode]
	default:
		return r.RTT.Round(time.Millisecond).String()
	}
}

// Prober queries DNS servers for a fixed name.
type Prober struct {
	Host    string
	Port    string
	Timeout time.Duration
	Workers int
	Log     zerolog.Logger
}

// New returns a prober that asks for the A record of host on port 53.
func New(host string, log zerolog.Logger) *Prober {
	return &Prober{
		Host:    host,
		Port:    "53",
		Timeout: defaultTimeout,
		Workers: defaultWorkers,
		Log:     log.With().Str("component", "probe").Logger(),
	}
}

// Probe queries the primary and secondary server of every entry. Results
// are returned in input order, primary before secondary.
func (p *Prober) Probe(ctx context.Context, entries []store.Entry) []Result {
	results := make([]Result, 0, len(entries)*2)
	for _, e := range entries {
		results = append(results,
			Result{Entry: e, Server: e.PrimaryDns},
			Result{Entry: e, Server: e.SecondaryDns},
		)
	}

	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	wp := pool.New().WithMaxGoroutines(workers)
	for i := range results {
		i := i
		wp.Go(func() {
			r := &results[i]
			r.Rcode, r.RTT, r.Err = p.query(ctx, r.Server)
			p.Log.Debug().
				Str("entry", r.Entry.Title).
				Str("server", r.Server).
				Dur("rtt", r.RTT).
				Err(r.Err).
				Msg("Probed")
		})
	}
	wp.Wait()

	return results
}

func (p *Prober) query(ctx context.Context, server string) (int, time.Duration, error) {
	if !store.IsIP(server) {
		return 0, 0, errors.Errorf("%q is not an IP address", server)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(p.Host), dns.TypeA)
	msg.RecursionDesired = true

	client := &dns.Client{Net: "udp", Timeout: timeout}
	resp, rtt, err := client.ExchangeContext(ctx, msg, net.JoinHostPort(server, p.Port))
	if err != nil {
		return 0, rtt, errors.Wrapf(err, "query %s", server)
	}
	return resp.Rcode, rtt, nil
}
