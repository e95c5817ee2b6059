package main // Entry point package

import (
	"context"
	"errors"
	"log" // Logging library
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iliyamo/library-membership/internal/config"   // Internal config loader
	"github.com/iliyamo/library-membership/internal/database" // MySQL / SQLite connections
	"github.com/iliyamo/library-membership/internal/handler"
	"github.com/iliyamo/library-membership/internal/middleware"
	"github.com/iliyamo/library-membership/internal/queue"
	"github.com/iliyamo/library-membership/internal/repository"
	"github.com/iliyamo/library-membership/internal/repository/memory"
	"github.com/iliyamo/library-membership/internal/router" // Internal router setup
	"github.com/iliyamo/library-membership/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	var (
		members  service.MemberStore
		seats    service.SeatStore
		payments service.PaymentStore
	)
	if cfg.DBDriver == config.DriverMemory {
		log.Printf("using in-memory stores; data is lost on exit")
		members, seats, payments = memory.NewMemberStore(), memory.NewSeatStore(), memory.NewPaymentStore()
	} else {
		db, err := database.Connect(context.Background(), cfg)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		members, seats, payments = repository.NewMemberRepo(db), repository.NewSeatRepo(db), repository.NewPaymentRepo(db)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(reg)

	// A nil *QueuePublisher must not end up in the interface.
	var events service.EventPublisher
	if cfg.QueueEnabled {
		events = service.NewQueuePublisher(cfg.RabbitMQURL)
		go queue.StartMembershipConsumer(cfg.RabbitMQURL, cfg.LogDir)
	}

	reconciler := service.NewReconciler(seats, payments, metrics)
	memberSvc := service.NewMemberService(members, reconciler, events)
	seatSvc := service.NewSeatService(seats, memberSvc, reconciler)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	if cfg.Env == "dev" {
		e.Logger.SetLevel(gommonlog.DEBUG)
	} else {
		e.Logger.SetLevel(gommonlog.INFO)
	}

	router.RegisterRoutes(e, reg)
	api := router.NewAPIGroup(e, router.APIOptions{
		AuthEnabled: cfg.AuthEnabled,
		JWTSecret:   cfg.JWTSecret,
		RateLimit:   middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:       middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})
	router.RegisterMembers(api, handler.NewMemberHandler(memberSvc))
	router.RegisterSeats(api, handler.NewSeatHandler(seatSvc))

	addr := ":" + cfg.Port                                                     // Address string with port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
