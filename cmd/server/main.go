package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/availability"
	"github.com/iliyamo/office-seat-reservation/internal/broadcast"
	"github.com/iliyamo/office-seat-reservation/internal/config"
	"github.com/iliyamo/office-seat-reservation/internal/database"
	"github.com/iliyamo/office-seat-reservation/internal/engine"
	"github.com/iliyamo/office-seat-reservation/internal/handler"
	"github.com/iliyamo/office-seat-reservation/internal/logger"
	"github.com/iliyamo/office-seat-reservation/internal/queue"
	"github.com/iliyamo/office-seat-reservation/internal/repository"
	"github.com/iliyamo/office-seat-reservation/internal/router"
	"github.com/iliyamo/office-seat-reservation/internal/schedule"
	queue_publisher "github.com/iliyamo/office-seat-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logg := logger.New(cfg.Env)

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatalf("invalid TIME_ZONE %q: %v", cfg.TimeZone, err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	employees := repository.NewEmployeeRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db)
	leaves := repository.NewLeaveRepo(db)
	tokens := repository.NewTokenRepo(db)
	store := repository.NewStore(employees, seats, bookings, leaves)

	// Seed the fixed seat set; idempotent across restarts.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seats.Ensure(ctx, cfg.TotalSeats); err != nil {
		cancel()
		log.Fatalf("seat seeding failed: %v", err)
	}
	cancel()

	cap := availability.Capacity{
		Total:   cfg.TotalSeats,
		Regular: cfg.RegularSeats,
		Floater: cfg.FloaterSeats,
	}
	strategy := schedule.ParseStrategy(cfg.ScheduleStrategy)
	oracle := schedule.New(strategy, cfg.RefMonday(loc), loc)

	hub := broadcast.NewHub(32, logg)
	sink := queue_publisher.NewSink(hub, logg)
	eng := engine.New(store, oracle, cap, sink)

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logg.Warn().Msg("redis unavailable; rate limiting and caching disabled")
	}

	// Background consumer mirrors seat activity into logs/activity.log.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			logg.Error().Err(err).Msg("activity consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, employees, tokens),
		Seats:    handler.NewSeatHandler(oracle, cap, seats, bookings, leaves),
		Bookings: handler.NewBookingHandler(eng, oracle),
		Leaves:   handler.NewLeaveHandler(eng, oracle, leaves),
		Stream:   handler.NewStreamHandler(hub),
		Activity: handler.NewActivityHandler(bookings),
		Schedule: handler.NewScheduleHandler(oracle, strategy),
		Admin:    handler.NewAdminHandler(cfg, oracle, employees, bookings, leaves),
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterAPI(e, h, cfg, rdb)
	router.RegisterAdmin(e, h.Admin, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logg.Info().Str("addr", addr).Str("env", cfg.Env).
		Str("strategy", string(strategy)).Str("tz", loc.String()).
		Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
