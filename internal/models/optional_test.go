package models_test

import (
	"encoding/json"
	"testing"

	"github.com/iheb2525/boutique/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUpdateDistinguishesAbsentNullAndZero(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, upd models.ProductUpdate)
	}{
		{
			name: "absent fields stay unset",
			body: `{}`,
			check: func(t *testing.T, upd models.ProductUpdate) {
				assert.False(t, upd.Name.Set)
				assert.False(t, upd.Price.Set)
				assert.False(t, upd.ImageURL.Set)
			},
		},
		{
			name: "zero values are present, not absent",
			body: `{"price": 0, "stock": 0, "description": ""}`,
			check: func(t *testing.T, upd models.ProductUpdate) {
				require.True(t, upd.Price.Set)
				assert.False(t, upd.Price.Null)
				assert.Equal(t, 0.0, upd.Price.Value)

				require.True(t, upd.Stock.Set)
				assert.Equal(t, 0, upd.Stock.Value)

				require.True(t, upd.Description.Set)
				assert.Equal(t, "", upd.Description.Value)
			},
		},
		{
			name: "explicit null is present and null",
			body: `{"imageUrl": null}`,
			check: func(t *testing.T, upd models.ProductUpdate) {
				require.True(t, upd.ImageURL.Set)
				assert.True(t, upd.ImageURL.Null)
			},
		},
		{
			name: "value fields carry the value",
			body: `{"name": "Widget", "price": 9.99}`,
			check: func(t *testing.T, upd models.ProductUpdate) {
				require.True(t, upd.Name.Set)
				assert.Equal(t, "Widget", upd.Name.Value)
				require.True(t, upd.Price.Set)
				assert.Equal(t, 9.99, upd.Price.Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var upd models.ProductUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &upd))
			tt.check(t, upd)
		})
	}
}
