package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/iheb2525/boutique/internal/config"
	"github.com/iheb2525/boutique/internal/handlers"
	"github.com/iheb2525/boutique/internal/store"
)

func main() {
	// Configure slog to output DEBUG level messages, as early as possible.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init Catalog Store
	catalog, err := store.NewCatalog(cfg.DataPath)
	if err != nil {
		slog.Error("Failed to initialize catalog store", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup (flash messages only; login state is a plain
	// client-side cookie flag, see handlers.SessionGate)
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	uploads := &handlers.UploadHandler{
		Dir:        cfg.UploadDir,
		PublicPath: "/static/uploads",
	}
	productAPI := &handlers.ProductAPI{Store: catalog}
	shopHandler := &handlers.ShopHandler{
		Store:        catalog,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	cartHandler := &handlers.CartHandler{
		Store:        catalog,
		Templates:    templates,
		SessionStore: sessionStore,
		Config:       cfg,
	}
	authHandler := &handlers.AuthHandler{
		Config:       cfg,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        catalog,
		Templates:    templates,
		SessionStore: sessionStore,
		Uploads:      uploads,
	}

	// JSON API (no CSRF; consumed by arbitrary clients)
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/products", productAPI.List)
	apiMux.HandleFunc("GET /api/products/{id}", productAPI.Get)
	apiMux.HandleFunc("POST /api/products", productAPI.Create)
	apiMux.HandleFunc("PUT /api/products/{id}", productAPI.Update)
	apiMux.HandleFunc("DELETE /api/products/{id}", productAPI.Delete)
	apiMux.HandleFunc("POST /api/upload", uploads.Upload)

	// Rate limiter on login attempts (1 request per 2 seconds per IP)
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// HTML pages
	uiMux := http.NewServeMux()
	uiMux.HandleFunc("/{$}", shopHandler.Index)
	uiMux.HandleFunc("GET /products/{id}", shopHandler.ProductDetail)

	uiMux.HandleFunc("GET /cart", cartHandler.CartPage)
	uiMux.HandleFunc("POST /cart/add", cartHandler.Add)
	uiMux.HandleFunc("POST /cart/update", cartHandler.UpdateQuantity)
	uiMux.HandleFunc("POST /cart/remove", cartHandler.Remove)
	uiMux.HandleFunc("POST /cart/clear", cartHandler.Clear)
	uiMux.HandleFunc("POST /cart/checkout", cartHandler.Checkout)

	uiMux.HandleFunc("GET /login", authHandler.LoginGet)
	uiMux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.LoginPost))
	uiMux.HandleFunc("/logout", authHandler.Logout)

	// Protected routes (session gate checks the /admin and /account prefixes)
	uiMux.HandleFunc("GET /account", shopHandler.Account)
	uiMux.HandleFunc("GET /admin/products", adminHandler.ListProducts)
	uiMux.HandleFunc("GET /admin/products/new", adminHandler.NewProductForm)
	uiMux.HandleFunc("POST /admin/products", adminHandler.CreateProduct)
	uiMux.HandleFunc("GET /admin/products/edit", adminHandler.EditProductForm)
	uiMux.HandleFunc("POST /admin/products/update", adminHandler.UpdateProduct)
	uiMux.HandleFunc("POST /admin/products/delete", adminHandler.DeleteProduct)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	root := http.NewServeMux()
	root.Handle("/api/", apiMux)
	root.Handle("/static/", http.StripPrefix("/static", http.FileServer(http.Dir("./static"))))
	root.Handle("/", handlers.SessionGate(CSRF(uiMux)))

	// Chain: Logger -> Security Headers -> Root
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(root),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
