package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/datacat-dev/datacat/pkg/config"
	"github.com/datacat-dev/datacat/pkg/dataset"
	"github.com/datacat-dev/datacat/pkg/registry"
)

// newTestCatalog builds a catalog over file-backed datasets rooted in a
// temporary directory.
func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	dir := t.TempDir()
	doc := fmt.Sprintf(`
datasets:
  companies:
    type: csv
    filepath: %s
  params:
    type: yaml
    filepath: %s
  notes:
    type: text
    filepath: %s
`, filepath.Join(dir, "companies.csv"), filepath.Join(dir, "params.yaml"), filepath.Join(dir, "notes.txt"))

	cfg, err := config.LoadConfig(config.WithConfigData([]byte(doc)))
	require.NoError(t, err)

	cat, err := FromConfig(cfg, registry.NewBuiltinTypeRegistry())
	require.NoError(t, err)
	return cat
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)
	ctx := context.Background()

	companies := dataset.NewTable(
		[]string{"id", "company_rating", "company_location"},
		[][]string{
			{"1", "90%", "Niue"},
			{"2", "77%", "Anguilla"},
		},
	)

	ok, err := cat.Exists(ctx, "companies")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cat.Save(ctx, "companies", companies))

	ok, err = cat.Exists(ctx, "companies")
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := cat.Load(ctx, "companies")
	require.NoError(t, err)

	table, isTable := loaded.(*dataset.Table)
	require.True(t, isTable)
	assert.True(t, companies.Equal(table))
}

func TestUnknownNameOnEveryOperation(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)
	ctx := context.Background()

	_, err := cat.Load(ctx, "missing")
	assert.ErrorIs(t, err, registry.ErrUnknownName)

	err = cat.Save(ctx, "missing", "data")
	assert.ErrorIs(t, err, registry.ErrUnknownName)

	_, err = cat.Exists(ctx, "missing")
	assert.ErrorIs(t, err, registry.ErrUnknownName)

	_, err = cat.Describe("missing")
	assert.ErrorIs(t, err, registry.ErrUnknownName)
}

func TestLoadBeforeSave(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)

	_, err := cat.Load(context.Background(), "companies")
	require.ErrorIs(t, err, dataset.ErrNotFound)
	assert.ErrorContains(t, err, "companies", "error must identify the dataset")
}

func TestSavesToDistinctNamesAreIsolated(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Save(ctx, "notes", "note content"))
	require.NoError(t, cat.Save(ctx, "params", map[string]any{"ratio": 0.8}))

	notes, err := cat.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "note content", notes)

	params, err := cat.Load(ctx, "params")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ratio": 0.8}, params)
}

func TestSaveIncompatibleData(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)

	err := cat.Save(context.Background(), "companies", 42)
	require.ErrorIs(t, err, dataset.ErrFormat)
}

func TestListAndDescribe(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)

	assert.Equal(t, []string{"companies", "notes", "params"}, cat.List())

	desc, err := cat.Describe("companies")
	require.NoError(t, err)
	assert.Equal(t, "csv", desc.Type)
	assert.NotEmpty(t, desc.Location)
}

func TestConcurrentSavesToSameName(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, cat.Save(ctx, "notes", fmt.Sprintf("writer %d", n)))
		}(i)
	}
	wg.Wait()

	// One writer wins; the content must be a complete write, not interleaved.
	loaded, err := cat.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Regexp(t, `^writer \d$`, loaded)
}

func TestTextRoundTripThroughCatalog(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.String().Draw(rt, "content")

		if err := cat.Save(ctx, "notes", content); err != nil {
			rt.Fatalf("save failed: %v", err)
		}
		loaded, err := cat.Load(ctx, "notes")
		if err != nil {
			rt.Fatalf("load failed: %v", err)
		}
		if loaded != content {
			rt.Fatalf("round trip mismatch: saved %q, loaded %q", content, loaded)
		}
	})
}
