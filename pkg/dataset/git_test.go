package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGitLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		wantRepo string
		wantPath string
		wantErr  bool
	}{
		{
			name:     "https repository with path",
			location: "https://github.com/example/data.git//catalog/entries.txt",
			wantRepo: "https://github.com/example/data.git",
			wantPath: "catalog/entries.txt",
		},
		{
			name:     "nested path",
			location: "https://example.com/repo.git//a/b/c.json",
			wantRepo: "https://example.com/repo.git",
			wantPath: "a/b/c.json",
		},
		{
			name:     "missing separator",
			location: "https://github.com/example/data.git",
			wantErr:  true,
		},
		{
			name:     "empty path",
			location: "https://github.com/example/data.git//",
			wantErr:  true,
		},
		{
			name:     "empty location",
			location: "",
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo, path, err := splitGitLocation(tc.location)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRepo, repo)
			assert.Equal(t, tc.wantPath, path)
		})
	}
}

func TestGitRefOptionsAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	_, err := NewGit(Descriptor{
		Name:     "upstream",
		Type:     "git",
		Location: "https://example.com/repo.git//file.txt",
		LoadArgs: map[string]any{"branch": "main", "tag": "v1.0.0"},
	})
	assert.Error(t, err)
}

func TestGitLoadMissingRepository(t *testing.T) {
	t.Parallel()

	location := filepath.Join(t.TempDir(), "no-such-repo") + "//file.txt"
	ds, err := NewGit(Descriptor{
		Name:     "absent",
		Type:     "git",
		Location: location,
	})
	require.NoError(t, err)

	_, err = ds.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGitSaveIsReadOnly(t *testing.T) {
	t.Parallel()

	ds, err := NewGit(Descriptor{
		Name:     "upstream",
		Type:     "git",
		Location: "https://example.com/repo.git//file.txt",
	})
	require.NoError(t, err)

	err = ds.Save(context.Background(), "content")
	require.ErrorIs(t, err, ErrWrite)
}

func TestGitDescribeRedactsPassword(t *testing.T) {
	t.Parallel()

	ds, err := NewGit(Descriptor{
		Name:     "private",
		Type:     "git",
		Location: "https://example.com/repo.git//file.txt",
		LoadArgs: map[string]any{"username": "bot", "password": "secret"},
	})
	require.NoError(t, err)

	described := ds.Describe()
	assert.NotEqual(t, "secret", described.LoadArgs["password"])
}
