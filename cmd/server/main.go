package main // Entry point package

import (
	"context" // Context for the boot-time seed query
	"log"     // Logging library
	"time"    // Timeout for the seed query

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/joifzeio/interfac/internal/config"     // Internal config loader
	"github.com/joifzeio/interfac/internal/database"   // MySQL pool constructor
	"github.com/joifzeio/interfac/internal/handler"    // HTTP handlers and store interfaces
	"github.com/joifzeio/interfac/internal/localstore" // JSON-file storage driver
	"github.com/joifzeio/interfac/internal/model"      // Past policy selection
	"github.com/joifzeio/interfac/internal/queue"      // Newsletter signup consumer
	"github.com/joifzeio/interfac/internal/repository" // MySQL repositories
	"github.com/joifzeio/interfac/internal/router"     // Route registration
	queue_publisher "github.com/joifzeio/interfac/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	// Pick the storage driver.  Both drivers satisfy the handler-side
	// store interfaces; nothing below this block cares which one runs.
	var (
		events handler.EventStore
		tours  handler.TourStore
		admins handler.AdminStore
		tokens handler.TokenStore
		subs   handler.SubscriberSink
	)
	switch cfg.StoreDriver {
	case "local":
		st, err := localstore.Open(cfg.LocalDataDir)
		if err != nil {
			log.Fatalf("open local store: %v", err)
		}
		events, tours, admins, tokens = st.Events, st.Tours, st.Admins, st.Tokens
		// The local driver keeps no subscriber table; signups go to the queue only.
	case "mysql":
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		events = repository.NewEventRepo(db)
		tours = repository.NewTourRepo(db)
		admins = repository.NewAdminRepo(db)
		tokens = repository.NewTokenRepo(db)
		subs = repository.NewSubscriberRepo(db)
	default:
		log.Fatalf("unknown STORE_DRIVER: %q", cfg.StoreDriver)
	}

	seedSuperAdmin(cfg, admins) // First boot creates the SUPER_ADMIN account

	rdb := config.NewRedisClient() // May be nil; cache and limiter degrade gracefully
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	policy := model.PolicyFromName(cfg.PastPolicy) // "flag" unless PAST_POLICY=grace

	authH := handler.NewAuthHandler(cfg, admins, tokens)
	adminH := handler.NewAdminHandler(events, tours)
	publicH := handler.NewPublicHandler(events, policy)
	newsH := handler.NewNewsletterHandler(subs, queue_publisher.PublishSubscriberSignup)

	go func() { // Background consumer; logs signups to logs/newsletter.log
		if err := queue.StartSignupConsumer(); err != nil {
			log.Printf("signup consumer stopped: %v", err)
		}
	}()

	e := echo.New()     // Create Echo instance
	e.HideBanner = true // Keep startup output to our own log lines

	router.RegisterRoutes(e)                        // Health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)    // Login, refresh, logout, me
	router.RegisterPublic(e, publicH, newsH, rdb)   // Marketing-page endpoints
	router.RegisterAdmin(e, adminH, authH, cfg.JWTSecret) // Dashboard endpoints

	addr := ":" + cfg.Port                                                           // Address string with port
	log.Printf("listening on %s (env=%s driver=%s)", addr, cfg.Env, cfg.StoreDriver) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

// seedSuperAdmin creates the configured SUPER_ADMIN account when the store
// holds no accounts at all.  Without it a fresh deployment has no way to log
// in to the dashboard.
func seedSuperAdmin(cfg config.Config, admins handler.AdminStore) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPass == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := admins.Count(ctx)
	if err != nil {
		log.Fatalf("count admins: %v", err)
	}
	if n > 0 {
		return
	}
	if _, err := admins.Create(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPass, repository.RoleSuperAdmin, cfg.BcryptCost); err != nil {
		log.Fatalf("seed super admin: %v", err)
	}
	log.Printf("seeded SUPER_ADMIN account %s", cfg.SeedAdminEmail)
}
