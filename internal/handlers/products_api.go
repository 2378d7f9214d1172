package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/iheb2525/boutique/internal/models"
	"github.com/iheb2525/boutique/internal/store"
)

// ProductAPI serves the JSON catalog endpoints consumed by the storefront
// and the admin panel.
type ProductAPI struct {
	Store *store.Catalog
}

// List returns the whole catalog, newest first.
func (h *ProductAPI) List(w http.ResponseWriter, r *http.Request) {
	products := h.Store.List()
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductAPI) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("Failed to fetch product", "id", r.PathValue("id"), "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "Error fetching product", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductAPI) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Presence checks, not truthiness: an empty description or a free
	// product is still a valid submission.
	if input.Name == nil || input.Description == nil || input.Price == nil {
		writeError(w, http.StatusBadRequest, "All required fields must be provided: name, description, price")
		return
	}
	if *input.Price < 0 {
		writeError(w, http.StatusBadRequest, "Price must not be negative")
		return
	}
	if input.Stock != nil && *input.Stock < 0 {
		writeError(w, http.StatusBadRequest, "Stock must not be negative")
		return
	}

	product := models.Product{
		Name:        *input.Name,
		Description: *input.Description,
		Price:       *input.Price,
		ImageURL:    input.ImageURL,
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	created, err := h.Store.Create(product)
	if err != nil {
		slog.Error("Failed to create product", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "Error creating product", err)
		return
	}

	slog.Info("Product created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductAPI) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var upd models.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if upd.Price.Set && !upd.Price.Null && upd.Price.Value < 0 {
		writeError(w, http.StatusBadRequest, "Price must not be negative")
		return
	}
	if upd.Stock.Set && !upd.Stock.Null && upd.Stock.Value < 0 {
		writeError(w, http.StatusBadRequest, "Stock must not be negative")
		return
	}

	updated, err := h.Store.Update(id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("Failed to update product", "id", id, "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "Error updating product", err)
		return
	}

	slog.Info("Product updated", "id", id)
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("Failed to delete product", "id", id, "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "Error deleting product", err)
		return
	}

	slog.Info("Product deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
