package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacat-dev/datacat/pkg/dataset"
)

func TestBuiltinTypesResolve(t *testing.T) {
	t.Parallel()

	types := NewBuiltinTypeRegistry()

	for _, name := range []string{TypeCSV, TypeJSON, TypeYAML, TypeText, TypeSQLite, TypeHTTP, TypeGit} {
		factory, err := types.ResolveType(name)
		require.NoError(t, err, "builtin type %q must resolve", name)
		assert.NotNil(t, factory)
	}
}

func TestResolveUnknownType(t *testing.T) {
	t.Parallel()

	types := NewBuiltinTypeRegistry()

	_, err := types.ResolveType("spark.SparkDataSet")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestRegisterCustomType(t *testing.T) {
	t.Parallel()

	types := NewBuiltinTypeRegistry()

	// User-supplied variants register under fully-qualified identifiers.
	err := types.RegisterType("example.com/datasets.Null", func(desc dataset.Descriptor) (dataset.DataSet, error) {
		return nullDataSet{desc: desc}, nil
	})
	require.NoError(t, err)

	factory, err := types.ResolveType("example.com/datasets.Null")
	require.NoError(t, err)

	ds, err := factory(dataset.Descriptor{Name: "n", Location: "nowhere"})
	require.NoError(t, err)
	assert.NotNil(t, ds)
}

func TestRegisterDuplicateType(t *testing.T) {
	t.Parallel()

	types := NewBuiltinTypeRegistry()

	err := types.RegisterType(TypeCSV, dataset.NewCSV)
	assert.Error(t, err)
}

func TestRegisterInvalidType(t *testing.T) {
	t.Parallel()

	types := NewTypeRegistry()

	assert.Error(t, types.RegisterType("", dataset.NewCSV))
	assert.Error(t, types.RegisterType("valid", nil))
}

// nullDataSet is a minimal dataset used to exercise custom registration.
type nullDataSet struct {
	desc dataset.Descriptor
}

func (nullDataSet) Load(context.Context) (any, error)    { return nil, nil }
func (nullDataSet) Save(context.Context, any) error      { return nil }
func (nullDataSet) Exists(context.Context) (bool, error) { return false, nil }
func (d nullDataSet) Describe() dataset.Description      { return d.desc.Describe() }
