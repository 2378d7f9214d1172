package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iheb2525/boutique/internal/models"
)

// ErrNotFound is returned when no product with the requested id exists.
var ErrNotFound = errors.New("product not found")

// Catalog persists the full product list in a single JSON file. Every
// mutation reads the whole file, modifies the list in memory and rewrites
// the file in full. A mutex serializes access within this process; across
// processes the last writer still wins.
type Catalog struct {
	path string
	mu   sync.Mutex
}

func NewCatalog(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Catalog{path: path}, nil
}

// load reads and decodes the backing file. A missing, unreadable or
// malformed file yields an empty catalog; no repair is attempted.
func (c *Catalog) load() []models.Product {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("Failed to read products file", "path", c.path, "error", err)
		}
		return nil
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		slog.Error("Products file is malformed", "path", c.path, "error", err)
		return nil
	}
	return products
}

// save rewrites the entire backing file. The write is the last step of every
// mutation, so a failure here leaves the previous file content intact.
func (c *Catalog) save(products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write products file: %w", err)
	}
	return nil
}

// List returns every product in file order. Callers sort by recency as
// needed.
func (c *Catalog) List() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Catalog) Get(id string) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.load() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// Create assigns a fresh id and timestamps, appends the product and rewrites
// the file. Field validation is the caller's job; the store only fills in
// what is generated server-side.
func (c *Catalog) Create(p models.Product) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	products := append(c.load(), p)
	if err := c.save(products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update merges the present fields of upd over the stored record. Absent
// fields keep their current values; an explicit null imageUrl clears it.
func (c *Catalog) Update(id string, upd models.ProductUpdate) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := c.load()
	for i, p := range products {
		if p.ID != id {
			continue
		}

		if upd.Name.Set && !upd.Name.Null {
			p.Name = upd.Name.Value
		}
		if upd.Description.Set && !upd.Description.Null {
			p.Description = upd.Description.Value
		}
		if upd.Price.Set && !upd.Price.Null {
			p.Price = upd.Price.Value
		}
		if upd.Stock.Set && !upd.Stock.Null {
			p.Stock = upd.Stock.Value
		}
		if upd.ImageURL.Set {
			if upd.ImageURL.Null {
				p.ImageURL = nil
			} else {
				v := upd.ImageURL.Value
				p.ImageURL = &v
			}
		}

		// updatedAt must strictly increase even when two updates land
		// within the clock's resolution.
		now := time.Now().UTC()
		if !now.After(p.UpdatedAt) {
			now = p.UpdatedAt.Add(time.Nanosecond)
		}
		p.UpdatedAt = now

		products[i] = p
		if err := c.save(products); err != nil {
			return models.Product{}, err
		}
		return p, nil
	}
	return models.Product{}, ErrNotFound
}

// Delete removes the product with the given id. Deleting an unknown id is
// reported as ErrNotFound, which makes a second delete of the same id fail.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := c.load()
	kept := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return ErrNotFound
	}
	return c.save(kept)
}
