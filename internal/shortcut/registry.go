package shortcut

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/phototriage/internal/api"
)

// Backend is the subset of the API client the registry needs.
type Backend interface {
	Settings(ctx context.Context) (*api.Settings, error)
	SaveShortcut(ctx context.Context, req api.ShortcutRequest) error
	DeleteShortcut(ctx context.Context, id int64) error
}

// Registry maps keys to bindings. It is safe for concurrent use; loads run
// from background commands while the UI reads it.
type Registry struct {
	backend Backend

	mu       sync.RWMutex
	bindings map[string]Binding // key -> binding, last write wins
	list     []Binding          // load order, for display
	albums   []api.Album
	loaded   bool
	started  uint64 // loads begun
	applied  uint64 // sequence of the load the mapping comes from
}

// NewRegistry creates an empty registry backed by b.
func NewRegistry(b Backend) *Registry {
	return &Registry{
		backend:  b,
		bindings: make(map[string]Binding),
	}
}

// Load fetches bindings and albums and replaces the mapping. On failure the
// previous mapping is left untouched and the *api.LoadError is returned.
// A response arriving after that of a later Load is discarded.
func (r *Registry) Load(ctx context.Context) error {
	r.mu.Lock()
	r.started++
	seq := r.started
	r.mu.Unlock()

	settings, err := r.backend.Settings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load shortcuts")
		return err
	}

	bindings := make(map[string]Binding, len(settings.Shortcuts))
	list := make([]Binding, 0, len(settings.Shortcuts))
	for _, s := range settings.Shortcuts {
		b := fromAPI(s)
		bindings[b.Key] = b
		list = append(list, b)
	}

	r.mu.Lock()
	if current := r.applied; seq < current {
		r.mu.Unlock()
		log.Debug().Uint64("load", seq).Uint64("current", current).Msg("stale shortcuts discarded")
		return nil
	}
	r.applied = seq
	r.bindings = bindings
	r.list = list
	r.albums = settings.Albums
	r.loaded = true
	r.mu.Unlock()

	log.Info().
		Int("shortcuts", len(list)).
		Int("keys", len(bindings)).
		Int("albums", len(settings.Albums)).
		Msg("shortcuts loaded")
	return nil
}

// Save validates the draft, stores it and reloads the registry.
// A *ValidationError means nothing was sent. A reload failure after a
// successful save is returned as the *api.LoadError from Load.
func (r *Registry) Save(ctx context.Context, d Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := r.backend.SaveShortcut(ctx, d.request()); err != nil {
		log.Warn().Err(err).Str("key", d.Key).Msg("save shortcut")
		return err
	}
	log.Info().Str("key", d.Key).Str("action", string(d.Action)).Str("album", d.AlbumID).Msg("shortcut saved")
	return r.Load(ctx)
}

// Delete removes a binding by backend id and reloads the registry.
// Callers confirm with the user before calling.
func (r *Registry) Delete(ctx context.Context, id int64) error {
	if err := r.backend.DeleteShortcut(ctx, id); err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("delete shortcut")
		return err
	}
	log.Info().Int64("id", id).Msg("shortcut deleted")
	return r.Load(ctx)
}

// Lookup returns the binding for key.
func (r *Registry) Lookup(key string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[key]
	return b, ok
}

// Len returns the number of distinct bound keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// Loaded reports whether at least one load succeeded.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Bindings returns every loaded binding in backend order.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.list)
}

// WriteableAlbums returns the albums the user may move items into.
func (r *Registry) WriteableAlbums() []api.Album {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []api.Album
	for _, a := range r.albums {
		if a.IsWriteable {
			result = append(result, a)
		}
	}
	return result
}

// Snapshot returns a copy of the key mapping for a session to own.
func (r *Registry) Snapshot() map[string]Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(map[string]Binding, len(r.bindings))
	for k, b := range r.bindings {
		snap[k] = b
	}
	return snap
}
