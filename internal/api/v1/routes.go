// Package v1 provides the REST API handlers for catalog dataset access.
package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datacat-dev/datacat/pkg/catalog"
	"github.com/datacat-dev/datacat/pkg/dataset"
	"github.com/datacat-dev/datacat/internal/logger"
	"github.com/datacat-dev/datacat/pkg/registry"
)

// maxBodySize bounds save request bodies (100MB).
const maxBodySize = 100 * 1024 * 1024

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DatasetSummary describes one catalog entry in list responses
type DatasetSummary struct {
	Name string `json:"name"`
	dataset.Description
}

// ListResponse is the response of the dataset listing endpoint
type ListResponse struct {
	Datasets []DatasetSummary `json:"datasets"`
	Total    int              `json:"total"`
}

// LoadResponse wraps loaded dataset content
type LoadResponse struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// SaveRequest wraps content to persist
type SaveRequest struct {
	Data json.RawMessage `json:"data"`
}

// ExistsResponse reports dataset presence
type ExistsResponse struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// Routes defines the routes for the catalog API
type Routes struct {
	catalog *catalog.Catalog
}

// NewRoutes creates a new Routes instance over the provided catalog
func NewRoutes(cat *catalog.Catalog) *Routes {
	return &Routes{catalog: cat}
}

// Router creates a new router for the catalog API
func Router(cat *catalog.Catalog) http.Handler {
	routes := NewRoutes(cat)

	r := chi.NewRouter()

	r.Get("/", routes.listDatasets)
	r.Get("/{name}", routes.loadDataset)
	r.Put("/{name}", routes.saveDataset)
	r.Get("/{name}/exists", routes.datasetExists)
	r.Get("/{name}/description", routes.describeDataset)

	return r
}

// listDatasets handles GET /v1/datasets
func (rr *Routes) listDatasets(w http.ResponseWriter, _ *http.Request) {
	names := rr.catalog.List()

	summaries := make([]DatasetSummary, 0, len(names))
	for _, name := range names {
		desc, err := rr.catalog.Describe(name)
		if err != nil {
			continue
		}
		summaries = append(summaries, DatasetSummary{Name: name, Description: desc})
	}

	rr.writeJSONResponse(w, ListResponse{Datasets: summaries, Total: len(summaries)})
}

// loadDataset handles GET /v1/datasets/{name}
func (rr *Routes) loadDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, err := rr.catalog.Load(r.Context(), name)
	if err != nil {
		rr.writeDatasetError(w, name, err)
		return
	}

	rr.writeJSONResponse(w, LoadResponse{Name: name, Data: data})
}

// saveDataset handles PUT /v1/datasets/{name}
func (rr *Routes) saveDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		rr.writeErrorResponse(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var req SaveRequest
	if err := json.Unmarshal(body, &req); err != nil || len(req.Data) == 0 {
		rr.writeErrorResponse(w, "request body must be a JSON object with a \"data\" field", http.StatusBadRequest)
		return
	}

	data, err := decodeData(req.Data)
	if err != nil {
		rr.writeErrorResponse(w, "invalid data payload", http.StatusBadRequest)
		return
	}

	if err := rr.catalog.Save(r.Context(), name, data); err != nil {
		rr.writeDatasetError(w, name, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// datasetExists handles GET /v1/datasets/{name}/exists
func (rr *Routes) datasetExists(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ok, err := rr.catalog.Exists(r.Context(), name)
	if err != nil {
		rr.writeDatasetError(w, name, err)
		return
	}

	rr.writeJSONResponse(w, ExistsResponse{Name: name, Exists: ok})
}

// describeDataset handles GET /v1/datasets/{name}/description
func (rr *Routes) describeDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	desc, err := rr.catalog.Describe(name)
	if err != nil {
		rr.writeDatasetError(w, name, err)
		return
	}

	rr.writeJSONResponse(w, DatasetSummary{Name: name, Description: desc})
}

// decodeData interprets a save payload. Tabular payloads (objects with
// exactly columns/records fields) decode to *dataset.Table so tabular
// datasets receive their native representation; everything else stays a
// generic JSON value.
func decodeData(raw json.RawMessage) (any, error) {
	var table dataset.Table
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&table); err == nil && table.Columns != nil {
		return &table, nil
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// writeDatasetError maps the catalog error taxonomy to HTTP status codes
func (rr *Routes) writeDatasetError(w http.ResponseWriter, name string, err error) {
	logger.Debugf("Dataset %q request failed: %v", name, err)

	switch {
	case errors.Is(err, registry.ErrUnknownName):
		rr.writeErrorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, dataset.ErrNotFound):
		rr.writeErrorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, dataset.ErrFormat):
		rr.writeErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, dataset.ErrWrite):
		rr.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
	default:
		rr.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeJSONResponse writes a JSON response with the given data
func (rr *Routes) writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func (rr *Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		logger.Errorf("Failed to encode error response: %v", err)
	}
}
