package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one cart line: a weak reference to a product plus a snapshot of
// its name, price and image taken at add time. Quantity is always >= 1; an
// item whose quantity drops below 1 is removed, never stored at 0.
type Item struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// Snapshot is what gets captured from a product when it is added.
type Snapshot struct {
	ProductID string
	Name      string
	Price     float64
	ImageURL  *string
}

// Cart holds one browser's cart. It is a plain value type; persistence is
// handled by the cookie codec in this package.
type Cart struct {
	Items []Item
}

// Add puts a product in the cart. Adding a product that is already present
// increments its quantity instead of creating a duplicate entry.
func (c *Cart) Add(s Snapshot) {
	for i := range c.Items {
		if c.Items[i].ProductID == s.ProductID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: s.ProductID,
		Name:      s.Name,
		Price:     s.Price,
		ImageURL:  s.ImageURL,
		Quantity:  1,
	})
}

// Remove deletes the entry for productID. Removing an absent product is a
// no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity for productID. A quantity below 1 removes
// the entry. No upper bound is enforced and no stock check happens here.
func (c *Cart) SetQuantity(productID string, n int) {
	if n < 1 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = n
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total recomputes the cart total on every call rather than keeping a
// running sum that could drift. Decimal arithmetic keeps price*quantity
// exact.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total
}

// ItemCount is the sum of quantities over all entries.
func (c *Cart) ItemCount() int {
	count := 0
	for _, it := range c.Items {
		count += it.Quantity
	}
	return count
}
