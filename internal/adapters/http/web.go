package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"chamaweb/internal/adapters/api"
	"chamaweb/internal/adapters/email"
	"chamaweb/internal/adapters/http/middleware"
	sessionStore "chamaweb/internal/adapters/storage/session"
	"chamaweb/internal/config"
)

// Deps holds the adapters the handlers talk to: the chama API gateway and
// the persisted session store.
type Deps struct {
	API      *api.Client
	Sessions sessionStore.Store
}

// Global deps instance (set by NewMux)
var deps *Deps

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Enquiry email configuration
var emailFromAddress string
var enquiryToAddress string

// SetEmailSender sets the global email sender for landing-page enquiries.
func SetEmailSender(sender email.Sender, from, to string) {
	emailSender = sender
	emailFromAddress = from
	enquiryToAddress = to
}

// loadCSRFKey decodes the hex CSRF secret from config. In production, the
// key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey(cfg *config.Config) []byte {
	if cfg.CSRFKey != "" {
		key, err := hex.DecodeString(cfg.CSRFKey)
		if err != nil || len(key) != 32 {
			log.Fatal("CHAMA_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if cfg.IsProduction() {
		log.Fatal("CHAMA_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set CHAMA_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the console.
func NewMux(d *Deps, cfg *config.Config) http.Handler {
	deps = d
	contentDir = cfg.ContentPath
	middleware.SecureCookies = cfg.IsProduction()

	csrfKey := loadCSRFKey(cfg)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
	)
	r.Use(
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, cfg.IsProduction()),
		middleware.Attach(d.Sessions),
		middleware.RateLimit(limiter),
	)

	registerRoutes(r)
	return r
}
