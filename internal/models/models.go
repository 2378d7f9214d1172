package models

import (
	"time"
)

// Product is one catalog record as persisted in the products file.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"imageUrl"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductInput carries the fields a client supplies when creating a product.
// Required fields are pointers so "missing" and "zero" stay distinguishable:
// a price of 0 is a valid price, an absent price is not.
type ProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Stock       *int     `json:"stock"`
}

// ProductUpdate is a partial update. Every field is wrapped in Optional so the
// merge can tell "absent, keep current value" apart from "present, overwrite",
// including overwrites with zero values. An explicit JSON null for imageUrl
// clears the image.
type ProductUpdate struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[string]  `json:"description"`
	Price       Optional[float64] `json:"price"`
	ImageURL    Optional[string]  `json:"imageUrl"`
	Stock       Optional[int]     `json:"stock"`
}
