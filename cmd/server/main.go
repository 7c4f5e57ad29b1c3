package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cix-storefront/internal/booking"
	"github.com/iliyamo/cix-storefront/internal/config"
	"github.com/iliyamo/cix-storefront/internal/database"
	"github.com/iliyamo/cix-storefront/internal/handler"
	"github.com/iliyamo/cix-storefront/internal/ledger"
	"github.com/iliyamo/cix-storefront/internal/middleware"
	"github.com/iliyamo/cix-storefront/internal/model"
	"github.com/iliyamo/cix-storefront/internal/omdb"
	"github.com/iliyamo/cix-storefront/internal/queue"
	"github.com/iliyamo/cix-storefront/internal/repository"
	"github.com/iliyamo/cix-storefront/internal/router"
	queuepublisher "github.com/iliyamo/cix-storefront/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Ledger storage: MySQL when configured, in-memory otherwise.
	// The in-memory fallback keeps local development booting without
	// a database, at the cost of bookings not surviving a restart.
	var (
		store     ledger.Store
		sqlLedger *repository.BookingLedger
	)
	var userRepo *repository.UserRepo
	var tokenRepo *repository.TokenRepo
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("mysql connect failed: %v", err)
		}
		sqlLedger = repository.NewBookingLedger(db)
		store = sqlLedger
		userRepo = repository.NewUserRepo(db)
		tokenRepo = repository.NewTokenRepo(db)
	} else {
		log.Printf("DB_HOST not set; using in-memory ledger (bookings are not durable)")
		store = ledger.NewMemoryStore()
	}

	// Redis backs the response cache and the rate limiter on the
	// OMDB-fronted browse routes. nil client disables both.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	omdbClient := omdb.NewClient(nil, cfg.OMDBAPIKey)

	manager := booking.NewManager(store, booking.FlowOptions{
		Fee:             cfg.BookingFee,
		SettlementDelay: cfg.PaymentDelay,
		Publish: func(b model.Booking) {
			ev := queue.NewBookingCompletedEvent(b)
			_ = queuepublisher.PublishBookingCompleted(context.Background(), ev)
		},
	})

	router.RegisterRoutes(e)
	router.RegisterBrowse(e, handler.NewMovieHandler(omdbClient, cfg.NowShowing, cfg.ComingSoon), cacheMW, rateMW)
	if userRepo != nil {
		router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	} else {
		log.Printf("auth endpoints disabled without a database")
	}
	router.RegisterBooking(e, handler.NewBookingHandler(manager, omdbClient), handler.NewTicketHandler(store), cfg.JWTSecret)
	if sqlLedger != nil {
		router.RegisterAdmin(e, handler.NewAdminHandler(sqlLedger), cfg.JWTSecret)
	}

	// Background consumer mirrors completed bookings into logs/tickets.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
