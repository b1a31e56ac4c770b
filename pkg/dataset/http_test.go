package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPLoad(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "hello"}`))
	}))
	defer server.Close()

	ds, err := NewHTTP(Descriptor{
		Name:     "motd",
		Type:     "http",
		Location: server.URL,
		LoadArgs: map[string]any{"authorization": "Bearer token-123"},
	})
	require.NoError(t, err)

	loaded, err := ds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "hello"}, loaded)
}

func TestHTTPLoadNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	ds, err := NewHTTP(Descriptor{Name: "motd", Type: "http", Location: server.URL})
	require.NoError(t, err)

	_, err = ds.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPLoadUnparsableBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	ds, err := NewHTTP(Descriptor{Name: "motd", Type: "http", Location: server.URL})
	require.NoError(t, err)

	_, err = ds.Load(context.Background())
	require.ErrorIs(t, err, ErrFormat)
}

func TestHTTPSaveIsReadOnly(t *testing.T) {
	t.Parallel()

	ds, err := NewHTTP(Descriptor{Name: "motd", Type: "http", Location: "https://example.com/motd.json"})
	require.NoError(t, err)

	err = ds.Save(context.Background(), map[string]any{})
	require.ErrorIs(t, err, ErrWrite)
}

func TestHTTPExists(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/present" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	present, err := NewHTTP(Descriptor{Name: "p", Type: "http", Location: server.URL + "/present"})
	require.NoError(t, err)
	absent, err := NewHTTP(Descriptor{Name: "a", Type: "http", Location: server.URL + "/absent"})
	require.NoError(t, err)

	ctx := context.Background()

	ok, err := present.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = absent.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHTTPRejectsNonHTTPLocation(t *testing.T) {
	t.Parallel()

	tests := []string{"", "data/companies.csv", "ftp://example.com/data"}
	for _, location := range tests {
		_, err := NewHTTP(Descriptor{Name: "bad", Type: "http", Location: location})
		assert.Error(t, err, "location %q must be rejected", location)
	}
}
