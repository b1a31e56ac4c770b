package dataset

import (
	"context"
	"fmt"
)

// textDataSet loads and saves a raw string against a local file.
type textDataSet struct {
	desc Descriptor
}

// NewText creates a plain-text file dataset from its descriptor.
func NewText(desc Descriptor) (DataSet, error) {
	if desc.Location == "" {
		return nil, fmt.Errorf("text dataset %q: location is required", desc.Name)
	}
	return &textDataSet{desc: desc}, nil
}

func (d *textDataSet) Load(_ context.Context) (any, error) {
	data, err := readFile(d.desc.Location)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (d *textDataSet) Save(ctx context.Context, data any) error {
	text, ok := data.(string)
	if !ok {
		return fmt.Errorf("%w: text dataset requires string, got %T", ErrFormat, data)
	}
	return writeFile(ctx, d.desc.Location, []byte(text))
}

func (d *textDataSet) Exists(_ context.Context) (bool, error) {
	return fileExists(d.desc.Location), nil
}

func (d *textDataSet) Describe() Description {
	return d.desc.Describe()
}
