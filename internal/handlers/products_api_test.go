package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/iheb2525/boutique/internal/handlers"
	"github.com/iheb2525/boutique/internal/models"
	"github.com/iheb2525/boutique/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIMux(t *testing.T) *http.ServeMux {
	t.Helper()

	catalog, err := store.NewCatalog(filepath.Join(t.TempDir(), "products.json"))
	require.NoError(t, err)

	api := &handlers.ProductAPI{Store: catalog}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", api.List)
	mux.HandleFunc("GET /api/products/{id}", api.Get)
	mux.HandleFunc("POST /api/products", api.Create)
	mux.HandleFunc("PUT /api/products/{id}", api.Update)
	mux.HandleFunc("DELETE /api/products/{id}", api.Delete)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeProduct(t *testing.T, rec *httptest.ResponseRecorder) models.Product {
	t.Helper()
	var p models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestProductLifecycle(t *testing.T) {
	mux := newAPIMux(t)

	// Create
	rec := doJSON(t, mux, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Widget",
		"description": "A simple widget",
		"price":       9.99,
		"stock":       5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeProduct(t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 5, created.Stock)
	assert.Nil(t, created.ImageURL)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	// The response body carries imageUrl as an explicit null.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["imageUrl"]))

	// Get returns the same record
	rec = doJSON(t, mux, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeProduct(t, rec)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)

	// Partial update: only stock changes, updatedAt advances
	rec = doJSON(t, mux, http.MethodPut, "/api/products/"+created.ID, map[string]interface{}{
		"stock": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeProduct(t, rec)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Price, updated.Price)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// Delete, then Get is a 404
	rec = doJSON(t, mux, http.MethodDelete, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")

	rec = doJSON(t, mux, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Second delete also a 404
	rec = doJSON(t, mux, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{
			name:     "missing name",
			body:     map[string]interface{}{"description": "d", "price": 1.0},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing description",
			body:     map[string]interface{}{"name": "n", "price": 1.0},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing price",
			body:     map[string]interface{}{"name": "n", "description": "d"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative price",
			body:     map[string]interface{}{"name": "n", "description": "d", "price": -1.0},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "zero price is valid",
			body:     map[string]interface{}{"name": "n", "description": "d", "price": 0.0},
			wantCode: http.StatusCreated,
		},
		{
			name:     "empty description is valid",
			body:     map[string]interface{}{"name": "n", "description": "", "price": 1.0},
			wantCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newAPIMux(t)
			rec := doJSON(t, mux, http.MethodPost, "/api/products", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if rec.Code >= 400 {
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestCreateDefaultsStockToZero(t *testing.T) {
	mux := newAPIMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "n", "description": "d", "price": 1.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 0, decodeProduct(t, rec).Stock)
}

func TestListNewestFirst(t *testing.T) {
	mux := newAPIMux(t)

	var ids []string
	for i := 0; i < 3; i++ {
		rec := doJSON(t, mux, http.MethodPost, "/api/products", map[string]interface{}{
			"name":        fmt.Sprintf("Product %d", i),
			"description": "d",
			"price":       1.0,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decodeProduct(t, rec).ID)
	}

	rec := doJSON(t, mux, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 3)

	// Most recently created comes first.
	assert.Equal(t, ids[2], listed[0].ID)
	assert.Equal(t, ids[1], listed[1].ID)
	assert.Equal(t, ids[0], listed[2].ID)
}

func TestListEmptyCatalogIsAnArray(t *testing.T) {
	mux := newAPIMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestUpdateImageURLNullClears(t *testing.T) {
	mux := newAPIMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "n",
		"description": "d",
		"price":       1.0,
		"imageUrl":    "/static/uploads/x.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeProduct(t, rec)
	require.NotNil(t, created.ImageURL)

	rec = doJSON(t, mux, http.MethodPut, "/api/products/"+created.ID, map[string]interface{}{
		"imageUrl": nil,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeProduct(t, rec)
	assert.Nil(t, updated.ImageURL)
}

func TestUpdateNotFound(t *testing.T) {
	mux := newAPIMux(t)

	rec := doJSON(t, mux, http.MethodPut, "/api/products/missing", map[string]interface{}{
		"stock": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRejectsNegativeValues(t *testing.T) {
	mux := newAPIMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "n", "description": "d", "price": 1.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeProduct(t, rec).ID

	rec = doJSON(t, mux, http.MethodPut, "/api/products/"+id, map[string]interface{}{"price": -5.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPut, "/api/products/"+id, map[string]interface{}{"stock": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
