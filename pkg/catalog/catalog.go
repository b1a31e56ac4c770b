// Package catalog provides the caller-facing load/save entry point over a
// dataset registry.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/datacat-dev/datacat/pkg/config"
	"github.com/datacat-dev/datacat/pkg/dataset"
	"github.com/datacat-dev/datacat/internal/logger"
	"github.com/datacat-dev/datacat/pkg/registry"
	"github.com/datacat-dev/datacat/pkg/telemetry"
)

// Catalog resolves logical names through the registry and delegates to the
// underlying dataset. Writes to a name are serialized; reads of a name run
// concurrently. Errors from datasets propagate with only the dataset name
// prefixed, so callers can still match the sentinel taxonomy.
type Catalog struct {
	registry *registry.Registry
	metrics  *telemetry.Metrics

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// Option configures a catalog.
type Option func(*Catalog)

// WithMetrics records catalog operations on the given metrics set.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Catalog) {
		c.metrics = m
	}
}

// New creates a catalog over an existing registry.
func New(reg *registry.Registry, opts ...Option) *Catalog {
	c := &Catalog{
		registry: reg,
		locks:    make(map[string]*sync.RWMutex),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds the registry from configuration and wraps it in a
// catalog.
func FromConfig(cfg *config.Config, types *registry.TypeRegistry, opts ...Option) (*Catalog, error) {
	reg, err := registry.FromDescriptors(cfg.Descriptors(), types)
	if err != nil {
		return nil, err
	}
	return New(reg, opts...), nil
}

// entryLock returns the per-name lock, creating it on first use.
func (c *Catalog) entryLock(name string) *sync.RWMutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[name]
	if !ok {
		lock = &sync.RWMutex{}
		c.locks[name] = lock
	}
	return lock
}

func (c *Catalog) observe(operation, name string, err error, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveOperation(operation, name, err, time.Since(start))
	}
}

// Load resolves name and loads the dataset's content.
func (c *Catalog) Load(ctx context.Context, name string) (any, error) {
	ds, err := c.registry.Get(name)
	if err != nil {
		return nil, err
	}

	lock := c.entryLock(name)
	lock.RLock()
	defer lock.RUnlock()

	start := time.Now()
	data, err := ds.Load(ctx)
	c.observe("load", name, err, start)
	if err != nil {
		logger.Debugf("Load of dataset %q failed: %v", name, err)
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	return data, nil
}

// Save resolves name and persists data to the dataset's location,
// overwriting existing content.
func (c *Catalog) Save(ctx context.Context, name string, data any) error {
	ds, err := c.registry.Get(name)
	if err != nil {
		return err
	}

	lock := c.entryLock(name)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	err = ds.Save(ctx, data)
	c.observe("save", name, err, start)
	if err != nil {
		logger.Debugf("Save of dataset %q failed: %v", name, err)
		return fmt.Errorf("dataset %q: %w", name, err)
	}
	return nil
}

// Exists resolves name and reports whether the dataset's location holds
// data.
func (c *Catalog) Exists(ctx context.Context, name string) (bool, error) {
	ds, err := c.registry.Get(name)
	if err != nil {
		return false, err
	}

	lock := c.entryLock(name)
	lock.RLock()
	defer lock.RUnlock()

	start := time.Now()
	ok, err := ds.Exists(ctx)
	c.observe("exists", name, err, start)
	if err != nil {
		return false, fmt.Errorf("dataset %q: %w", name, err)
	}
	return ok, nil
}

// Describe resolves name and returns the dataset's configuration view.
func (c *Catalog) Describe(name string) (dataset.Description, error) {
	ds, err := c.registry.Get(name)
	if err != nil {
		return dataset.Description{}, err
	}
	return ds.Describe(), nil
}

// List returns the registered dataset names in sorted order.
func (c *Catalog) List() []string {
	return c.registry.Names()
}
