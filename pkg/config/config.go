// Package config provides configuration loading and validation for the
// data catalog.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/datacat-dev/datacat/pkg/dataset"
)

//go:embed schema.json
var schemaJSON []byte

const schemaResource = "datacat-config.schema.json"

// DefaultAddress is the listen address used when the server section is
// absent.
const DefaultAddress = ":8080"

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
	data []byte
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// WithConfigData loads configuration from in-memory YAML content
func WithConfigData(data []byte) Option {
	return func(cfg *loaderConfig) error {
		if len(data) == 0 {
			return fmt.Errorf("data is required")
		}
		cfg.data = data
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Server holds the HTTP server settings
	Server ServerConfig `yaml:"server,omitempty"`

	// Datasets maps logical dataset names to their descriptors
	Datasets map[string]DatasetConfig `yaml:"datasets"`
}

// ServerConfig defines HTTP server settings
type ServerConfig struct {
	// Address is the listen address, e.g. ":8080"
	Address string `yaml:"address,omitempty"`
}

// DatasetConfig defines a single dataset descriptor. Exactly one of
// Filepath and Location names the physical location; they are synonyms.
type DatasetConfig struct {
	// Type is the dataset implementation identifier
	Type string `yaml:"type"`

	// Filepath is the physical location (synonym of Location)
	Filepath string `yaml:"filepath,omitempty"`

	// Location is the physical location (path or URL)
	Location string `yaml:"location,omitempty"`

	// LoadArgs holds implementation-specific load options
	LoadArgs map[string]any `yaml:"load_args,omitempty"`

	// SaveArgs holds implementation-specific save options
	SaveArgs map[string]any `yaml:"save_args,omitempty"`

	// Versioned enables timestamped save versions for file-backed types
	Versioned bool `yaml:"versioned,omitempty"`
}

// location returns whichever of filepath/location is set.
func (d DatasetConfig) location() string {
	if d.Filepath != "" {
		return d.Filepath
	}
	return d.Location
}

// LoadConfig loads, schema-checks and validates configuration from a YAML
// file or in-memory document.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	data := loaderCfg.data
	if data == nil {
		if loaderCfg.path == "" {
			return nil, fmt.Errorf("path is required")
		}
		var err error
		data, err = os.ReadFile(loaderCfg.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Parse YAML content
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	// Check the document against the configuration schema
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Validate what the schema cannot express
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateSchema checks the raw YAML document against the embedded JSON
// schema. The document is round-tripped through JSON so instance values
// match what the schema validator expects.
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("configuration is not schema-checkable: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonDoc))
	if err != nil {
		return fmt.Errorf("configuration is not schema-checkable: %w", err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("failed to parse embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, schemaDoc); err != nil {
		return fmt.Errorf("failed to register embedded schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return schema.Validate(instance)
}

// validate performs semantic validation on the configuration
func (c *Config) validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("at least one dataset must be configured")
	}

	for name, ds := range c.Datasets {
		if name == "" {
			return fmt.Errorf("dataset name cannot be empty")
		}
		if ds.Type == "" {
			return fmt.Errorf("dataset %q: type is required", name)
		}
		if ds.Filepath != "" && ds.Location != "" {
			return fmt.Errorf("dataset %q: filepath and location are synonyms, set only one", name)
		}
		if ds.location() == "" {
			return fmt.Errorf("dataset %q: filepath or location is required", name)
		}
	}

	return nil
}

// Address returns the configured listen address or the default.
func (c *Config) Address() string {
	if c.Server.Address == "" {
		return DefaultAddress
	}
	return c.Server.Address
}

// Descriptors returns the configured dataset descriptors in name order.
func (c *Config) Descriptors() []dataset.Descriptor {
	names := make([]string, 0, len(c.Datasets))
	for name := range c.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	descriptors := make([]dataset.Descriptor, 0, len(names))
	for _, name := range names {
		ds := c.Datasets[name]
		descriptors = append(descriptors, dataset.Descriptor{
			Name:      name,
			Type:      ds.Type,
			Location:  ds.location(),
			LoadArgs:  ds.LoadArgs,
			SaveArgs:  ds.SaveArgs,
			Versioned: ds.Versioned,
		})
	}
	return descriptors
}
