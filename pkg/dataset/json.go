package dataset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

// jsonDataSet loads and saves an arbitrary document against a local JSON
// file.
//
// Load options:
//   - allow_comments: accept JWCC (JSON with comments and trailing commas),
//     standardized before parsing.
//   - path: a gjson path; only the matching subtree is returned.
//
// Save options:
//   - indent: indentation string for pretty output (default compact).
type jsonDataSet struct {
	desc          Descriptor
	allowComments bool
	path          string
	indent        string
}

// NewJSON creates a JSON-file dataset from its descriptor.
func NewJSON(desc Descriptor) (DataSet, error) {
	if desc.Location == "" {
		return nil, fmt.Errorf("json dataset %q: location is required", desc.Name)
	}

	allowComments, err := boolArg(desc.LoadArgs, "allow_comments", false)
	if err != nil {
		return nil, fmt.Errorf("json dataset %q: %w", desc.Name, err)
	}
	path, err := stringArg(desc.LoadArgs, "path", "")
	if err != nil {
		return nil, fmt.Errorf("json dataset %q: %w", desc.Name, err)
	}
	indent, err := stringArg(desc.SaveArgs, "indent", "")
	if err != nil {
		return nil, fmt.Errorf("json dataset %q: %w", desc.Name, err)
	}

	return &jsonDataSet{
		desc:          desc,
		allowComments: allowComments,
		path:          path,
		indent:        indent,
	}, nil
}

func (d *jsonDataSet) Load(_ context.Context) (any, error) {
	data, err := readFile(d.desc.Location)
	if err != nil {
		return nil, err
	}

	if d.allowComments {
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("%w: standardizing %s: %w", ErrFormat, d.desc.Location, err)
		}
		data = standardized
	}

	if d.path != "" {
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("%w: %s is not valid JSON", ErrFormat, d.desc.Location)
		}
		result := gjson.GetBytes(data, d.path)
		if !result.Exists() {
			return nil, fmt.Errorf("%w: path %q matches nothing in %s", ErrNotFound, d.path, d.desc.Location)
		}
		return result.Value(), nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrFormat, d.desc.Location, err)
	}
	return doc, nil
}

func (d *jsonDataSet) Save(ctx context.Context, data any) error {
	var buf []byte
	var err error
	if d.indent != "" {
		buf, err = json.MarshalIndent(data, "", d.indent)
	} else {
		buf, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("%w: encoding json: %w", ErrFormat, err)
	}
	return writeFile(ctx, d.desc.Location, buf)
}

func (d *jsonDataSet) Exists(_ context.Context) (bool, error) {
	return fileExists(d.desc.Location), nil
}

func (d *jsonDataSet) Describe() Description {
	return d.desc.Describe()
}
