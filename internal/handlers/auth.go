package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"
	"github.com/iheb2525/boutique/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler implements the login flow. There is exactly one hardcoded
// credential; success only sets client-side cookie flags that the session
// gate reads back. Anyone can set those cookies themselves; this is a demo
// login, not access control.
type AuthHandler struct {
	Config       *config.Config
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	callbackURL := r.URL.Query().Get("callbackUrl")
	if callbackURL == "" {
		callbackURL = "/"
	}

	// Already logged in? Go straight back.
	if IsLoggedIn(r) {
		http.Redirect(w, r, callbackURL, http.StatusSeeOther)
		return
	}

	// Prefill the username when "remember me" was used before.
	remembered := ""
	if ck, err := r.Cookie(RememberCookie); err == nil {
		remembered = ck.Value
	}

	session, _ := h.SessionStore.Get(r, "flash-session")
	data := map[string]interface{}{
		"CsrfField":   csrfField(r),
		"Flashes":     GetFlash(session),
		"CallbackURL": callbackURL,
		"Username":    remembered,
		"RememberMe":  remembered != "",
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "flash-session")

	username := r.FormValue("username")
	password := r.FormValue("password")
	rememberMe := r.FormValue("remember_me") == "on"

	callbackURL := r.FormValue("callback_url")
	if callbackURL == "" {
		callbackURL = "/"
	}

	if username != h.Config.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(h.Config.AdminPasswordHash), []byte(password)) != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Incorrect username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login?callbackUrl="+url.QueryEscape(callbackURL), http.StatusSeeOther)
		return
	}

	h.setFlag(w, LoginCookie, "true", h.Config.LoginMaxAge)
	h.setFlag(w, UsernameCookie, username, h.Config.LoginMaxAge)
	if rememberMe {
		h.setFlag(w, RememberCookie, username, h.Config.RememberMaxAge)
	} else {
		h.setFlag(w, RememberCookie, "", -1)
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + username + "!"})
	session.Save(r, w)

	slog.Info("Login successful", "username", username, "callbackUrl", callbackURL)
	http.Redirect(w, r, callbackURL, http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, LoginCookie, "", -1)
	h.setFlag(w, UsernameCookie, "", -1)

	session, _ := h.SessionStore.Get(r, "flash-session")
	session.AddFlash(FlashMessage{Type: "success", Message: "Logged out successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setFlag(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Domain:   h.Config.CookieDomain,
		Secure:   h.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
