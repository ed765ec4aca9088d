// Package provider maps cloud provider names to their adapters.
package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// ErrNoProvider is returned by Resolve when none of the requested names is
// registered.
var ErrNoProvider = errors.New("no registered provider matches the request")

// Resolution is one requested provider. Exactly one of Adapter and Err is set.
type Resolution struct {
	Name    string
	Adapter compute.ProviderAdapter
	Err     error
}

// Registry is built once at startup and read concurrently afterwards.
type Registry struct {
	adapters map[string]compute.ProviderAdapter
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]compute.ProviderAdapter{}}
}

// Register adds adapter under its name. Names are case-insensitive.
func (r *Registry) Register(adapter compute.ProviderAdapter) error {
	key := normalize(adapter.Name())
	if key == "" {
		return fmt.Errorf("provider adapter has an empty name")
	}
	if _, exists := r.adapters[key]; exists {
		return fmt.Errorf("provider %s is already registered", adapter.Name())
	}
	r.adapters[key] = adapter
	r.order = append(r.order, adapter.Name())
	return nil
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Lookup returns the adapter registered under name.
func (r *Registry) Lookup(name string) (compute.ProviderAdapter, bool) {
	adapter, ok := r.adapters[normalize(name)]
	return adapter, ok
}

// Resolve maps requested names to adapters. An empty request selects every
// provider in registration order. Otherwise the request order is kept,
// duplicates are collapsed and unknown names resolve to an UnknownProvider
// error. When nothing resolves, Resolve fails as a whole.
func (r *Registry) Resolve(names []string) ([]Resolution, error) {
	requested := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			requested = append(requested, name)
		}
	}

	if len(requested) == 0 {
		if len(r.order) == 0 {
			return nil, ErrNoProvider
		}
		out := make([]Resolution, 0, len(r.order))
		for _, name := range r.order {
			out = append(out, Resolution{Name: name, Adapter: r.adapters[normalize(name)]})
		}
		return out, nil
	}

	seen := map[string]bool{}
	out := make([]Resolution, 0, len(requested))
	resolved := 0
	for _, name := range requested {
		key := normalize(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		adapter, ok := r.adapters[key]
		if !ok {
			out = append(out, Resolution{Name: name, Err: compute.NewUnknownProviderError(name)})
			continue
		}
		out = append(out, Resolution{Name: adapter.Name(), Adapter: adapter})
		resolved++
	}

	if resolved == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProvider, strings.Join(requested, ", "))
	}
	return out, nil
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
