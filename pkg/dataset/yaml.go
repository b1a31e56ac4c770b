package dataset

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlDataSet loads and saves an arbitrary document against a local YAML
// file. Save options: indent (single-digit string, default "2").
type yamlDataSet struct {
	desc   Descriptor
	indent int
}

// NewYAML creates a YAML-file dataset from its descriptor.
func NewYAML(desc Descriptor) (DataSet, error) {
	if desc.Location == "" {
		return nil, fmt.Errorf("yaml dataset %q: location is required", desc.Name)
	}

	indent := 2
	if v, ok := desc.SaveArgs["indent"]; ok {
		n, ok := v.(int)
		if !ok || n < 1 || n > 9 {
			return nil, fmt.Errorf("yaml dataset %q: option \"indent\" must be an integer between 1 and 9", desc.Name)
		}
		indent = n
	}

	return &yamlDataSet{desc: desc, indent: indent}, nil
}

func (d *yamlDataSet) Load(_ context.Context) (any, error) {
	data, err := readFile(d.desc.Location)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrFormat, d.desc.Location, err)
	}
	return doc, nil
}

func (d *yamlDataSet) Save(ctx context.Context, data any) error {
	var buf []byte
	var err error
	if d.indent == 2 {
		buf, err = yaml.Marshal(data)
	} else {
		buf, err = marshalIndented(data, d.indent)
	}
	if err != nil {
		return fmt.Errorf("%w: encoding yaml: %w", ErrFormat, err)
	}
	return writeFile(ctx, d.desc.Location, buf)
}

func marshalIndented(data any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *yamlDataSet) Exists(_ context.Context) (bool, error) {
	return fileExists(d.desc.Location), nil
}

func (d *yamlDataSet) Describe() Description {
	return d.desc.Describe()
}
