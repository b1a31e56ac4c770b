package dataset

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVersionedTextAt(t *testing.T, base string) *versionedDataSet {
	t.Helper()
	ds, err := NewVersioned(Descriptor{
		Name:      "notes",
		Type:      "text",
		Location:  base,
		Versioned: true,
	}, NewText)
	require.NoError(t, err)
	return ds.(*versionedDataSet)
}

func TestVersionedSaveThenLoadLatest(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "notes.txt")
	ds := newVersionedTextAt(t, base)
	ctx := context.Background()

	// Control the clock so versions are distinct and ordered.
	current := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	ds.now = func() time.Time { return current }

	require.NoError(t, ds.Save(ctx, "first version"))

	current = current.Add(time.Second)
	require.NoError(t, ds.Save(ctx, "second version"))

	loaded, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second version", loaded, "load must return the latest version")
}

func TestVersionedLoadWithoutVersions(t *testing.T) {
	t.Parallel()

	ds := newVersionedTextAt(t, filepath.Join(t.TempDir(), "notes.txt"))

	_, err := ds.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVersionedExists(t *testing.T) {
	t.Parallel()

	ds := newVersionedTextAt(t, filepath.Join(t.TempDir(), "notes.txt"))
	ctx := context.Background()

	ok, err := ds.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ds.Save(ctx, "content"))

	ok, err = ds.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVersionedLayout(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "notes.txt")
	ds := newVersionedTextAt(t, base)

	fixed := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	ds.now = func() time.Time { return fixed }

	require.NoError(t, ds.Save(context.Background(), "content"))

	version := fixed.Format(versionTimestampFormat)
	assert.FileExists(t, filepath.Join(base, version, "notes.txt"))
}

func TestVersionedValidatesInnerDescriptorEagerly(t *testing.T) {
	t.Parallel()

	_, err := NewVersioned(Descriptor{
		Name:      "bad",
		Type:      "csv",
		Location:  filepath.Join(t.TempDir(), "bad.csv"),
		LoadArgs:  map[string]any{"delimiter": ";;"},
		Versioned: true,
	}, NewCSV)
	assert.Error(t, err)
}
