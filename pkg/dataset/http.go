package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/datacat-dev/datacat/internal/httpclient"
)

// httpDataSet is a read-only dataset backed by a remote JSON document.
// Load GETs the location with retry on transient failures; Exists is a
// HEAD probe. Save always fails: the remote end is not writable through
// the catalog.
//
// Load options:
//   - authorization: sent as the Authorization header (redacted in
//     Describe output).
//   - timeout: per-request timeout as a duration string (default 10s).
type httpDataSet struct {
	desc    Descriptor
	client  httpclient.Client
	headers map[string]string
}

// NewHTTP creates a remote JSON dataset from its descriptor.
func NewHTTP(desc Descriptor) (DataSet, error) {
	if desc.Location == "" {
		return nil, fmt.Errorf("http dataset %q: location is required", desc.Name)
	}
	parsed, err := url.Parse(desc.Location)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("http dataset %q: location must be an http(s) URL, got %q", desc.Name, desc.Location)
	}

	timeoutStr, err := stringArg(desc.LoadArgs, "timeout", "")
	if err != nil {
		return nil, fmt.Errorf("http dataset %q: %w", desc.Name, err)
	}
	var timeout time.Duration
	if timeoutStr != "" {
		timeout, err = time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("http dataset %q: option \"timeout\" must be a duration: %w", desc.Name, err)
		}
	}

	authorization, err := stringArg(desc.LoadArgs, "authorization", "")
	if err != nil {
		return nil, fmt.Errorf("http dataset %q: %w", desc.Name, err)
	}
	headers := map[string]string{}
	if authorization != "" {
		headers["Authorization"] = authorization
	}

	return &httpDataSet{
		desc:    desc,
		client:  httpclient.NewDefaultClient(timeout),
		headers: headers,
	}, nil
}

func (d *httpDataSet) Load(ctx context.Context) (any, error) {
	body, err := d.client.Get(ctx, d.desc.Location, d.headers)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, d.desc.Location, err)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", d.desc.Location, err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing response from %s: %w", ErrFormat, d.desc.Location, err)
	}
	return doc, nil
}

func (d *httpDataSet) Save(_ context.Context, _ any) error {
	return fmt.Errorf("%w: http dataset %q is read-only", ErrWrite, d.desc.Name)
}

func (d *httpDataSet) Exists(ctx context.Context) (bool, error) {
	ok, err := d.client.Head(ctx, d.desc.Location, d.headers)
	if err != nil {
		// Exists reports presence; an unreachable endpoint is reported as
		// absent rather than failing the probe.
		return false, nil
	}
	return ok, nil
}

func (d *httpDataSet) Describe() Description {
	return d.desc.Describe()
}
