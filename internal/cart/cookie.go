package cart

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
)

// CookieName is the single storage key the whole cart lives under.
const CookieName = "ecommerce_cart"

// cookieMaxAge is deliberately long; the cart has no expiry semantics.
const cookieMaxAge = 365 * 24 * 60 * 60

// FromRequest decodes the cart cookie. The cookie is client-owned and
// unsigned, so anything unreadable simply yields an empty cart.
func FromRequest(r *http.Request) Cart {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return Cart{}
	}

	raw, err := base64.URLEncoding.DecodeString(ck.Value)
	if err != nil {
		slog.Debug("Discarding undecodable cart cookie", "error", err)
		return Cart{}
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Debug("Discarding malformed cart cookie", "error", err)
		return Cart{}
	}
	return Cart{Items: items}
}

// Write re-serializes the whole cart into the cookie. Every mutation goes
// through here, mirroring the whole-file rewrite the catalog store does on
// the server side.
func (c Cart) Write(w http.ResponseWriter, secure bool) {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		slog.Error("Failed to encode cart cookie", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.URLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
