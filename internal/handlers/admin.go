package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/iheb2525/boutique/internal/models"
	"github.com/iheb2525/boutique/internal/store"
)

// AdminHandler serves the product management pages. The routes sit behind
// the session gate; the handlers themselves do no further auth.
type AdminHandler struct {
	Store        *store.Catalog
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Uploads      *UploadHandler
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.Store.List()
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "flash-session")
	data := map[string]interface{}{
		"Products":   products,
		"Flashes":    GetFlash(session),
		"CsrfField":  csrfField(r),
		"IsLoggedIn": true,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_new_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "flash-session")
	data := map[string]interface{}{
		"Flashes":    GetFlash(session),
		"CsrfField":  csrfField(r),
		"IsLoggedIn": true,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "flash-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	product, ok := h.productFromForm(w, r, session, "/admin/products/new")
	if !ok {
		return
	}

	created, err := h.Store.Create(product)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: created.Name + " added to the catalog!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	product, err := h.Store.Get(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_edit_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "flash-session")
	data := map[string]interface{}{
		"Product":    product,
		"Flashes":    GetFlash(session),
		"CsrfField":  csrfField(r),
		"IsLoggedIn": true,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "flash-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	editURL := "/admin/products/edit?id=" + id

	product, ok := h.productFromForm(w, r, session, editURL)
	if !ok {
		return
	}

	// The form always submits every field, so the update sets all of them.
	// The image is only replaced when a new file was uploaded.
	upd := models.ProductUpdate{
		Name:        models.Some(product.Name),
		Description: models.Some(product.Description),
		Price:       models.Some(product.Price),
		Stock:       models.Some(product.Stock),
	}
	if product.ImageURL != nil {
		upd.ImageURL = models.Some(*product.ImageURL)
	} else if r.FormValue("remove_image") == "on" {
		upd.ImageURL = models.Null[string]()
	}

	if _, err := h.Store.Update(id, upd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		}
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "flash-session")
	defer session.Save(r, w)

	if err := h.Store.Delete(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// productFromForm validates the shared create/edit form fields and handles
// the optional image upload through the same path the JSON API uses. On a
// validation failure it flashes the messages, redirects to backURL and
// returns ok=false.
func (h *AdminHandler) productFromForm(w http.ResponseWriter, r *http.Request, session *sessions.Session, backURL string) (models.Product, bool) {
	name := r.FormValue("name")
	description := r.FormValue("description")
	priceStr := r.FormValue("price")
	stockStr := r.FormValue("stock")

	formErrors := []string{}
	if name == "" {
		formErrors = append(formErrors, "Name is required.")
	}
	if priceStr == "" {
		formErrors = append(formErrors, "Price is required.")
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if priceStr != "" && err != nil {
		formErrors = append(formErrors, "Invalid price format.")
	} else if price < 0 {
		formErrors = append(formErrors, "Price must not be negative.")
	}

	stock := 0
	if stockStr != "" {
		stock, err = strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			formErrors = append(formErrors, "Stock must be a non-negative number.")
		}
	}

	var imageURL *string
	file, header, fileErr := r.FormFile("image")
	if fileErr == nil {
		defer file.Close()
		url, err := h.Uploads.saveImage(file, header)
		if err != nil {
			var vErr *uploadValidationError
			if errors.As(err, &vErr) {
				formErrors = append(formErrors, vErr.Message)
			} else {
				formErrors = append(formErrors, "Error saving the image.")
			}
		} else {
			imageURL = &url
		}
	}

	if len(formErrors) > 0 {
		for _, msg := range formErrors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, backURL, http.StatusSeeOther)
		return models.Product{}, false
	}

	return models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageURL:    imageURL,
	}, true
}
