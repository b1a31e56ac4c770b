package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacat-dev/datacat/pkg/dataset"
)

func TestRegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := New()
	ds := nullDataSet{desc: dataset.Descriptor{Name: "companies"}}

	require.NoError(t, reg.Register("companies", ds))

	got, err := reg.Get("companies")
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestGetUnknownName(t *testing.T) {
	t.Parallel()

	reg := New()

	_, err := reg.Get("missing")
	require.ErrorIs(t, err, ErrUnknownName)
}

func TestRegisterDuplicateNameKeepsExisting(t *testing.T) {
	t.Parallel()

	reg := New()
	first := nullDataSet{desc: dataset.Descriptor{Name: "companies", Location: "first.csv"}}
	second := nullDataSet{desc: dataset.Descriptor{Name: "companies", Location: "second.csv"}}

	require.NoError(t, reg.Register("companies", first))

	err := reg.Register("companies", second)
	require.ErrorIs(t, err, ErrDuplicateName)

	got, err := reg.Get("companies")
	require.NoError(t, err)
	assert.Equal(t, first, got, "failed registration must leave the existing entry unmodified")
}

func TestNamesAreSorted(t *testing.T) {
	t.Parallel()

	reg := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, reg.Register(name, nullDataSet{}))
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
	assert.Equal(t, 3, reg.Len())
}

func TestFromDescriptors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	descriptors := []dataset.Descriptor{
		{Name: "companies", Type: TypeCSV, Location: filepath.Join(dir, "companies.csv")},
		{Name: "params", Type: TypeYAML, Location: filepath.Join(dir, "params.yaml")},
	}

	reg, err := FromDescriptors(descriptors, NewBuiltinTypeRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"companies", "params"}, reg.Names())
}

func TestFromDescriptorsUnknownType(t *testing.T) {
	t.Parallel()

	descriptors := []dataset.Descriptor{
		{Name: "frame", Type: "pandas.CSVDataSet", Location: "frame.csv"},
	}

	_, err := FromDescriptors(descriptors, NewBuiltinTypeRegistry())
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestBuildVersionedDataset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ds, err := Build(dataset.Descriptor{
		Name:      "notes",
		Type:      TypeText,
		Location:  filepath.Join(dir, "notes.txt"),
		Versioned: true,
	}, NewBuiltinTypeRegistry())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ds.Save(ctx, "v1"))

	loaded, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", loaded)
}

func TestBuildRejectsVersionedRemoteTypes(t *testing.T) {
	t.Parallel()

	_, err := Build(dataset.Descriptor{
		Name:      "motd",
		Type:      TypeHTTP,
		Location:  "https://example.com/motd.json",
		Versioned: true,
	}, NewBuiltinTypeRegistry())
	assert.Error(t, err)
}
