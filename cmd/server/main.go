package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"chamaweb/internal/adapters/api"
	emailPkg "chamaweb/internal/adapters/email"
	web "chamaweb/internal/adapters/http"
	"chamaweb/internal/adapters/storage"
	sessionStore "chamaweb/internal/adapters/storage/session"
	"chamaweb/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	sessions := sessionStore.NewSQLiteStore(db)
	apiClient := api.New(cfg.APIBaseURL)

	// Configure email sender for landing-page enquiries
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom), cfg.EmailFrom, cfg.EmailTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.EmailFrom, cfg.EmailTo)
		if cfg.IsProduction() {
			log.Println("WARNING: CHAMA_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set CHAMA_RESEND_KEY for real delivery)")
		}
	}

	// Expired session rows are swept in the background so the table does
	// not grow unbounded; expiry itself is enforced on read.
	sweepStop := make(chan struct{})
	go sweepExpiredSessions(sessions, time.Hour, sweepStop)
	defer close(sweepStop)

	mux := web.NewMux(&web.Deps{API: apiClient, Sessions: sessions}, cfg)

	log.Printf("Chama console %s starting on %s (env=%s, api=%s)", version, cfg.Addr, cfg.Env, cfg.APIBaseURL)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func sweepExpiredSessions(sessions sessionStore.Store, every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired(context.Background())
			if err != nil {
				log.Printf("session sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("session sweep removed %d expired sessions", n)
			}
		}
	}
}
