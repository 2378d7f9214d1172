package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/sessions"
	"github.com/iheb2525/boutique/internal/cart"
	"github.com/iheb2525/boutique/internal/config"
	"github.com/iheb2525/boutique/internal/store"
)

// checkoutDelay is the artificial pause of the simulated checkout. There is
// no payment backend; the only side effect is clearing the cart.
const checkoutDelay = 1500 * time.Millisecond

// CartHandler renders the cart page and applies cart mutations. The cart
// itself lives in a cookie the browser owns; every action decodes it,
// mutates it and writes the whole thing back.
type CartHandler struct {
	Store        *store.Catalog
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Config       *config.Config
}

func (h *CartHandler) CartPage(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	basket := cart.FromRequest(r)
	session, _ := h.SessionStore.Get(r, "flash-session")
	data := map[string]interface{}{
		"Items":      basket.Items,
		"Total":      basket.Total().StringFixed(2),
		"CartCount":  basket.ItemCount(),
		"Flashes":    GetFlash(session),
		"IsLoggedIn": IsLoggedIn(r),
		"CsrfField":  csrfField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Add snapshots the product's name, price and image into the cart. Adding
// the same product again only bumps the quantity.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "flash-session")
	defer session.Save(r, w)

	id := r.FormValue("product_id")
	product, err := h.Store.Get(id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	basket := cart.FromRequest(r)
	basket.Add(cart.Snapshot{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
	})
	basket.Write(w, h.Config.CookieSecure)

	session.AddFlash(FlashMessage{Type: "success", Message: product.Name + " added to cart."})
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("product_id")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	basket := cart.FromRequest(r)
	basket.SetQuantity(id, quantity)
	basket.Write(w, h.Config.CookieSecure)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	basket := cart.FromRequest(r)
	basket.Remove(r.FormValue("product_id"))
	basket.Write(w, h.Config.CookieSecure)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	basket := cart.Cart{}
	basket.Write(w, h.Config.CookieSecure)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Checkout simulates an order: a fixed artificial delay, then the cart is
// cleared. Nothing is persisted and nothing can fail.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "flash-session")

	basket := cart.FromRequest(r)
	if basket.ItemCount() == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	time.Sleep(checkoutDelay)

	slog.Info("Simulated checkout", "items", basket.ItemCount(), "total", basket.Total().StringFixed(2))

	basket.Clear()
	basket.Write(w, h.Config.CookieSecure)

	session.AddFlash(FlashMessage{Type: "success", Message: "Order placed! Thank you for your purchase."})
	session.Save(r, w)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// redirectTarget sends the user back where they came from, defaulting to
// the storefront.
func redirectTarget(r *http.Request) string {
	if ref := r.FormValue("return_to"); ref != "" {
		return ref
	}
	return "/"
}
