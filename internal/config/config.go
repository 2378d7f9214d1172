package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8585"`
	DataPath     string `envconfig:"DATA_PATH" default:"./data/products.json"`
	UploadDir    string `envconfig:"UPLOAD_DIR" default:"./static/uploads"`
	CookieDomain string `envconfig:"COOKIE_DOMAIN"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE" default:"false"`

	// Login is a single hardcoded credential check; this is a demo shop,
	// not an account system. The defaults reproduce the well-known demo
	// login. When ADMIN_PASSWORD_HASH is set it takes precedence over
	// ADMIN_PASSWORD.
	AdminUsername     string `envconfig:"ADMIN_USERNAME" default:"iheb"`
	AdminPassword     string `envconfig:"ADMIN_PASSWORD" default:"iheb"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	// Cookie lifetimes, in seconds. Session flag lasts a week, the
	// remembered-username convenience cookie a month.
	LoginMaxAge    int `envconfig:"LOGIN_MAX_AGE" default:"604800"`
	RememberMaxAge int `envconfig:"REMEMBER_MAX_AGE" default:"2592000"`

	SessionKey []byte `ignored:"true"`
	CSRFKey    []byte `ignored:"true"`
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	cfg.SessionKey = loadKey("SESSION_KEY")
	cfg.CSRFKey = loadKey("CSRF_KEY")

	if cfg.AdminPasswordHash == "" {
		slog.Warn("ADMIN_PASSWORD_HASH not set. Hashing ADMIN_PASSWORD at startup; set a real hash in production (see cmd/cli hash-password).")
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		cfg.AdminPasswordHash = string(hash)
	}

	return &cfg, nil
}

// loadKey reads a base64 key from the environment, falling back to a fresh
// random key when it is missing or too short. Random keys invalidate cookies
// on every restart, which is fine for development only.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn("Key not set in environment. Generating a random key for development; it will change on each restart.", "key", name)
		return randomBytes(32)
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Key is invalid or shorter than 32 bytes. Generating a random key for development.", "key", name)
		return randomBytes(32)
	}
	return decoded
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; give up loudly.
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	return b
}
