package cart_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iheb2525/boutique/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widget() cart.Snapshot {
	return cart.Snapshot{ProductID: "p1", Name: "Widget", Price: 9.99}
}

func gadget() cart.Snapshot {
	return cart.Snapshot{ProductID: "p2", Name: "Gadget", Price: 24.50}
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	var c cart.Cart

	c.Add(widget())
	c.Add(widget())

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2, c.ItemCount())
}

func TestTotalIsExact(t *testing.T) {
	var c cart.Cart

	c.Add(widget())
	c.Add(widget())
	c.Add(widget())
	c.Add(gadget())

	// 3 * 9.99 + 1 * 24.50, computed without float drift
	assert.Equal(t, "54.47", c.Total().StringFixed(2))
	assert.Equal(t, 4, c.ItemCount())
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantItems int
		wantQty   int
	}{
		{name: "set to a positive value", quantity: 7, wantItems: 1, wantQty: 7},
		{name: "set to zero removes the entry", quantity: 0, wantItems: 0},
		{name: "set to a negative value removes the entry", quantity: -3, wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c cart.Cart
			c.Add(widget())

			c.SetQuantity("p1", tt.quantity)

			require.Len(t, c.Items, tt.wantItems)
			if tt.wantItems > 0 {
				assert.Equal(t, tt.wantQty, c.Items[0].Quantity)
			}
		})
	}
}

func TestSetQuantityUnknownProductIsNoop(t *testing.T) {
	var c cart.Cart
	c.Add(widget())

	c.SetQuantity("unknown", 5)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemove(t *testing.T) {
	var c cart.Cart
	c.Add(widget())
	c.Add(gadget())

	c.Remove("p1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	// Removing something absent is a no-op.
	c.Remove("p1")
	assert.Len(t, c.Items, 1)
}

func TestClear(t *testing.T) {
	var c cart.Cart
	c.Add(widget())
	c.Add(gadget())

	c.Clear()

	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, "0.00", c.Total().StringFixed(2))
}

func TestCookieRoundTrip(t *testing.T) {
	var c cart.Cart
	c.Add(widget())
	c.Add(widget())
	c.Add(gadget())

	rec := httptest.NewRecorder()
	c.Write(rec, false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cart.CookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])

	decoded := cart.FromRequest(req)
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, 2, decoded.Items[0].Quantity)
	assert.Equal(t, "44.48", decoded.Total().StringFixed(2))
}

func TestCorruptCookieYieldsEmptyCart(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not base64", value: "%%%not-base64%%%"},
		{name: "base64 of garbage", value: "bm90IGpzb24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			req.AddCookie(&http.Cookie{Name: cart.CookieName, Value: tt.value})

			c := cart.FromRequest(req)
			assert.Empty(t, c.Items)
		})
	}
}

func TestNoCookieYieldsEmptyCart(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	c := cart.FromRequest(req)
	assert.Empty(t, c.Items)
}
