package registry

import (
	"fmt"
	"sync"

	"github.com/datacat-dev/datacat/pkg/dataset"
)

// Factory constructs a dataset instance from its descriptor.
type Factory func(dataset.Descriptor) (dataset.DataSet, error)

// Built-in dataset type identifiers.
const (
	TypeCSV    = "csv"
	TypeJSON   = "json"
	TypeYAML   = "yaml"
	TypeText   = "text"
	TypeSQLite = "sqlite"
	TypeHTTP   = "http"
	TypeGit    = "git"
)

// TypeRegistry maps dataset type identifiers to factories. Built-ins are
// registered at startup; user-supplied variants are added by explicit
// RegisterType calls under any identifier, including fully-qualified ones.
type TypeRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewTypeRegistry creates an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{factories: make(map[string]Factory)}
}

// NewBuiltinTypeRegistry creates a type registry with all built-in dataset
// types registered.
func NewBuiltinTypeRegistry() *TypeRegistry {
	tr := NewTypeRegistry()
	tr.MustRegisterType(TypeCSV, dataset.NewCSV)
	tr.MustRegisterType(TypeJSON, dataset.NewJSON)
	tr.MustRegisterType(TypeYAML, dataset.NewYAML)
	tr.MustRegisterType(TypeText, dataset.NewText)
	tr.MustRegisterType(TypeSQLite, dataset.NewSQLite)
	tr.MustRegisterType(TypeHTTP, dataset.NewHTTP)
	tr.MustRegisterType(TypeGit, dataset.NewGit)
	return tr
}

// RegisterType registers a factory under a type identifier. Registering an
// identifier twice is an error; the first registration wins.
func (tr *TypeRegistry) RegisterType(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("type identifier cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for type %q cannot be nil", name)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, ok := tr.factories[name]; ok {
		return fmt.Errorf("dataset type %q is already registered", name)
	}
	tr.factories[name] = factory
	return nil
}

// MustRegisterType registers a factory and panics on error. Intended for
// built-in registration at startup.
func (tr *TypeRegistry) MustRegisterType(name string, factory Factory) {
	if err := tr.RegisterType(name, factory); err != nil {
		panic(err)
	}
}

// ResolveType looks up the factory for a type identifier.
func (tr *TypeRegistry) ResolveType(name string) (Factory, error) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	factory, ok := tr.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return factory, nil
}

// Types returns the registered type identifiers.
func (tr *TypeRegistry) Types() []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	names := make([]string, 0, len(tr.factories))
	for name := range tr.factories {
		names = append(names, name)
	}
	return names
}
