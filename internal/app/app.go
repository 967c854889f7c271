package app

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/zkmkarlsruhe/dnschanger/internal/store"
	"github.com/zkmkarlsruhe/dnschanger/internal/system"
)

var (
	// ErrAutomaticProtected is returned when deleting the Automatic option.
	ErrAutomaticProtected = errors.New("the 'Automatic' option cannot be deleted")
	// ErrNoSelection is returned for an index outside Options.
	ErrNoSelection = errors.New("no DNS entry selected")
)

// App holds the core application logic (shared between GUI and CLI)
type App struct {
	store        *store.Store
	configurator system.AdapterConfigurator
	inspector    system.Inspector
	log          zerolog.Logger
}

// New creates a new App instance. The store must already be loaded.
func New(st *store.Store, configurator system.AdapterConfigurator, inspector system.Inspector, log zerolog.Logger) *App {
	return &App{
		store:        st,
		configurator: configurator,
		inspector:    inspector,
		log:          log.With().Str("component", "app").Logger(),
	}
}

// Options returns the selectable entries: Automatic first, then the stored
// entries in order.
func (a *App) Options() []store.Entry {
	return append([]store.Entry{store.Automatic()}, a.store.Entries()...)
}

// Find returns the index into Options of the first entry titled title
// (case-insensitive), or -1.
func (a *App) Find(title string) int {
	title = strings.TrimSpace(title)
	for i, e := range a.Options() {
		if strings.EqualFold(e.Title, title) {
			return i
		}
	}
	return -1
}

// Add validates e and appends it to the store. Invalid input changes
// nothing.
func (a *App) Add(e store.Entry) error {
	if err := store.Validate(e); err != nil {
		return err
	}
	e = e.Normalize()
	if err := a.store.Append(e); err != nil {
		return errors.Wrap(err, "save entries")
	}
	a.log.Info().Str("title", e.Title).Msg("Added DNS entry")
	return nil
}

// Delete removes the option at index after confirm approves it. A nil
// confirm counts as approval.
func (a *App) Delete(index int, confirm func(store.Entry) bool) error {
	options := a.Options()
	if index < 0 || index >= len(options) {
		return ErrNoSelection
	}
	if index == 0 {
		return ErrAutomaticProtected
	}

	entry := options[index]
	if confirm != nil && !confirm(entry) {
		return nil
	}
	if err := a.store.RemoveAt(index - 1); err != nil {
		return errors.Wrap(err, "save entries")
	}
	a.log.Info().Str("title", entry.Title).Msg("Deleted DNS entry")
	return nil
}

// Apply configures the active adapter with the option at index and returns
// the DNS server reported afterwards.
func (a *App) Apply(ctx context.Context, index int) (string, error) {
	options := a.Options()
	if index < 0 || index >= len(options) {
		return "", ErrNoSelection
	}
	entry := options[index]

	adapter, err := a.inspector.ActiveAdapterName(ctx)
	if err != nil {
		return "", errors.Wrap(err, "find active adapter")
	}
	if adapter == "" {
		return "", system.ErrNoAdapter
	}

	if index == 0 {
		err = a.configurator.ApplyAutomatic(ctx, adapter)
	} else {
		err = a.configurator.ApplyStatic(ctx, adapter, entry.PrimaryDns, entry.SecondaryDns)
	}
	if err != nil {
		return "", errors.Wrapf(err, "set DNS %q on %s", entry.Title, adapter)
	}

	a.log.Info().Str("title", entry.Title).Str("adapter", adapter).Msg("DNS updated")
	return a.CurrentDNS(ctx), nil
}

// CurrentDNS returns the resolver currently answering, or system.Unknown.
func (a *App) CurrentDNS(ctx context.Context) string {
	return a.inspector.CurrentDNSServer(ctx)
}

// ActiveAdapter returns the adapter DNS changes would be applied to.
func (a *App) ActiveAdapter(ctx context.Context) (string, error) {
	return a.inspector.ActiveAdapterName(ctx)
}
