package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	ds, err := NewText(Descriptor{Name: "notes", Location: filepath.Join(t.TempDir(), "notes.txt")})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, ds.Save(ctx, "first line\nsecond line\n"))

	loaded, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", loaded)
}

func TestTextRoundTripProperty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.String().Draw(rt, "content")

		ds, err := NewText(Descriptor{Name: "prop", Location: filepath.Join(dir, "prop.txt")})
		if err != nil {
			rt.Fatalf("constructor failed: %v", err)
		}

		ctx := context.Background()
		if err := ds.Save(ctx, content); err != nil {
			rt.Fatalf("save failed: %v", err)
		}
		loaded, err := ds.Load(ctx)
		if err != nil {
			rt.Fatalf("load failed: %v", err)
		}
		if loaded != content {
			rt.Fatalf("round trip mismatch: saved %q, loaded %q", content, loaded)
		}
	})
}

func TestTextSaveWrongShape(t *testing.T) {
	t.Parallel()

	ds, err := NewText(Descriptor{Name: "notes", Location: filepath.Join(t.TempDir(), "notes.txt")})
	require.NoError(t, err)

	err = ds.Save(context.Background(), 42)
	require.ErrorIs(t, err, ErrFormat)
}

func TestTextLoadMissingFile(t *testing.T) {
	t.Parallel()

	ds, err := NewText(Descriptor{Name: "notes", Location: filepath.Join(t.TempDir(), "absent.txt")})
	require.NoError(t, err)

	_, err = ds.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTwoDatasetsDoNotInterfere(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first, err := NewText(Descriptor{Name: "first", Location: filepath.Join(dir, "first.txt")})
	require.NoError(t, err)
	second, err := NewText(Descriptor{Name: "second", Location: filepath.Join(dir, "second.txt")})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, first.Save(ctx, "first content"))
	require.NoError(t, second.Save(ctx, "second content"))
	require.NoError(t, first.Save(ctx, "first content updated"))

	loaded, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second content", loaded, "writing one dataset must not alter the other")
}
