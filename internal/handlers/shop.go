package handlers

import (
	"net/http"
	"sort"

	"github.com/gorilla/sessions"
	"github.com/iheb2525/boutique/internal/cart"
	"github.com/iheb2525/boutique/internal/store"
)

// ShopHandler renders the public storefront pages.
type ShopHandler struct {
	Store        *store.Catalog
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	products := h.Store.List()
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "flash-session")
	basket := cart.FromRequest(r)
	data := map[string]interface{}{
		"Products":   products,
		"Flashes":    GetFlash(session),
		"IsLoggedIn": IsLoggedIn(r),
		"CartCount":  basket.ItemCount(),
		"CsrfField":  csrfField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "flash-session")
	basket := cart.FromRequest(r)
	data := map[string]interface{}{
		"Product":    product,
		"Flashes":    GetFlash(session),
		"IsLoggedIn": IsLoggedIn(r),
		"CartCount":  basket.ItemCount(),
		"CsrfField":  csrfField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Account shows the remembered username flag. The page sits behind the
// session gate.
func (h *ShopHandler) Account(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("account.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	username := ""
	if ck, err := r.Cookie(UsernameCookie); err == nil {
		username = ck.Value
	}

	session, _ := h.SessionStore.Get(r, "flash-session")
	basket := cart.FromRequest(r)
	data := map[string]interface{}{
		"Username":   username,
		"Flashes":    GetFlash(session),
		"IsLoggedIn": true,
		"CartCount":  basket.ItemCount(),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
