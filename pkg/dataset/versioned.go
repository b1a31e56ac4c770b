package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// versionTimestampFormat orders lexicographically, so the latest version is
// the maximum directory name.
const versionTimestampFormat = "2006-01-02T15.04.05.000Z"

// Versioned wraps a file-backed dataset factory so that each save writes a
// new timestamped version under the configured location and load reads the
// latest one. The layout is <location>/<version>/<basename(location)>.
type versionedDataSet struct {
	desc    Descriptor
	factory func(Descriptor) (DataSet, error)
	now     func() time.Time
}

// NewVersioned wraps factory with save-versioning for the given descriptor.
func NewVersioned(desc Descriptor, factory func(Descriptor) (DataSet, error)) (DataSet, error) {
	if desc.Location == "" {
		return nil, fmt.Errorf("versioned dataset %q: location is required", desc.Name)
	}

	// Validate the inner descriptor eagerly so configuration errors
	// surface at registry construction, not first use.
	probe := desc
	probe.Versioned = false
	if _, err := factory(probe); err != nil {
		return nil, err
	}

	return &versionedDataSet{
		desc:    desc,
		factory: factory,
		now:     time.Now,
	}, nil
}

func (d *versionedDataSet) inner(version string) (DataSet, error) {
	inner := d.desc
	inner.Versioned = false
	inner.Location = filepath.Join(d.desc.Location, version, filepath.Base(d.desc.Location))
	return d.factory(inner)
}

// latestVersion returns the maximum version directory name, or "" when no
// version has been saved yet.
func (d *versionedDataSet) latestVersion() string {
	entries, err := os.ReadDir(d.desc.Location)
	if err != nil {
		return ""
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Strings(versions)
	return versions[len(versions)-1]
}

func (d *versionedDataSet) Load(ctx context.Context) (any, error) {
	version := d.latestVersion()
	if version == "" {
		return nil, fmt.Errorf("%w: no versions of %s", ErrNotFound, d.desc.Location)
	}

	ds, err := d.inner(version)
	if err != nil {
		return nil, err
	}
	return ds.Load(ctx)
}

func (d *versionedDataSet) Save(ctx context.Context, data any) error {
	version := d.now().UTC().Format(versionTimestampFormat)

	ds, err := d.inner(version)
	if err != nil {
		return err
	}
	return ds.Save(ctx, data)
}

func (d *versionedDataSet) Exists(ctx context.Context) (bool, error) {
	version := d.latestVersion()
	if version == "" {
		return false, nil
	}

	ds, err := d.inner(version)
	if err != nil {
		return false, nil
	}
	return ds.Exists(ctx)
}

func (d *versionedDataSet) Describe() Description {
	return d.desc.Describe()
}
