package dataset

import (
	"context"
	"strings"
)

// DataSet is the contract every catalog entry implements. Load and Save
// operate on the whole dataset; Save overwrites any existing content.
type DataSet interface {
	// Load reads the dataset from its configured location and returns the
	// deserialized content.
	Load(ctx context.Context) (any, error)

	// Save persists data to the configured location, replacing any
	// existing content.
	Save(ctx context.Context, data any) error

	// Exists reports whether the configured location currently holds data.
	Exists(ctx context.Context) (bool, error)

	// Describe returns the dataset's configuration for diagnostic display,
	// with credential-bearing option values redacted.
	Describe() Description
}

// Descriptor is the declarative configuration record a dataset is built
// from. Name is unique within a registry; Type selects the implementation.
type Descriptor struct {
	Name      string         `json:"name" yaml:"name"`
	Type      string         `json:"type" yaml:"type"`
	Location  string         `json:"location" yaml:"location"`
	LoadArgs  map[string]any `json:"load_args,omitempty" yaml:"load_args,omitempty"`
	SaveArgs  map[string]any `json:"save_args,omitempty" yaml:"save_args,omitempty"`
	Versioned bool           `json:"versioned,omitempty" yaml:"versioned,omitempty"`
}

// Description is the diagnostic view of a dataset's configuration.
type Description struct {
	Type      string         `json:"type"`
	Location  string         `json:"location"`
	LoadArgs  map[string]any `json:"load_args,omitempty"`
	SaveArgs  map[string]any `json:"save_args,omitempty"`
	Versioned bool           `json:"versioned,omitempty"`
}

// Describe builds the diagnostic view of a descriptor with credential
// option values redacted.
func (d Descriptor) Describe() Description {
	return Description{
		Type:      d.Type,
		Location:  d.Location,
		LoadArgs:  redactArgs(d.LoadArgs),
		SaveArgs:  redactArgs(d.SaveArgs),
		Versioned: d.Versioned,
	}
}

// redactedValue replaces credential option values in descriptions.
const redactedValue = "[REDACTED]"

// sensitiveArgKeys are option names whose values must never appear in
// diagnostic output.
var sensitiveArgKeys = []string{
	"authorization",
	"credential",
	"password",
	"secret",
	"token",
	"api_key",
	"apikey",
}

func isSensitiveArg(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveArgKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func redactArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		if isSensitiveArg(k) {
			out[k] = redactedValue
			continue
		}
		out[k] = v
	}
	return out
}
