// Package registry resolves declarative dataset descriptors into live
// dataset instances keyed by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/datacat-dev/datacat/pkg/dataset"
)

// remoteTypes cannot be combined with save-versioning; their locations are
// not local paths.
var remoteTypes = map[string]bool{
	TypeHTTP: true,
	TypeGit:  true,
}

// Registry owns the mapping from logical dataset name to a configured
// dataset instance. It is constructed once from configuration and is not
// mutated afterwards in normal use.
type Registry struct {
	mu       sync.RWMutex
	datasets map[string]dataset.DataSet
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{datasets: make(map[string]dataset.DataSet)}
}

// FromDescriptors builds a registry by resolving each descriptor's type
// through the type registry and instantiating the dataset eagerly.
func FromDescriptors(descriptors []dataset.Descriptor, types *TypeRegistry) (*Registry, error) {
	reg := New()
	for _, desc := range descriptors {
		ds, err := Build(desc, types)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(desc.Name, ds); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Build instantiates one dataset from its descriptor, applying the
// versioning wrapper when requested.
func Build(desc dataset.Descriptor, types *TypeRegistry) (dataset.DataSet, error) {
	factory, err := types.ResolveType(desc.Type)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", desc.Name, err)
	}

	if desc.Versioned {
		if remoteTypes[desc.Type] {
			return nil, fmt.Errorf("dataset %q: type %q cannot be versioned", desc.Name, desc.Type)
		}
		return dataset.NewVersioned(desc, factory)
	}

	return factory(desc)
}

// Register adds a dataset under a name. The name must not be taken; a
// duplicate registration leaves the existing entry unmodified.
func (r *Registry) Register(name string, ds dataset.DataSet) error {
	if name == "" {
		return fmt.Errorf("dataset name cannot be empty")
	}
	if ds == nil {
		return fmt.Errorf("dataset %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.datasets[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.datasets[name] = ds
	return nil
}

// Get returns the dataset registered under name.
func (r *Registry) Get(name string) (dataset.DataSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, ok := r.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return ds, nil
}

// Names returns the registered dataset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}
