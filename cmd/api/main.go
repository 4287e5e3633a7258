package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "restaurantdb/docs"
	"restaurantdb/pkg/backend"
	"restaurantdb/pkg/config"
	"restaurantdb/pkg/customer"
	"restaurantdb/pkg/events"
	"restaurantdb/pkg/feedback"
	"restaurantdb/pkg/logger"
	"restaurantdb/pkg/menu"
	"restaurantdb/pkg/order"
	"restaurantdb/pkg/otel"
	"restaurantdb/pkg/session"
)

const serviceName = "restaurantdb"

// @title Restaurant API
// @version 1.0
// @description API for managing menu items, customers, orders and feedback
// @host localhost:8443
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Cookie
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), serviceName, otel.GetTraceID)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: serviceName, Host: cfg.OTELHost, Probability: cfg.OTELProbability})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())

	db, closeDB, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	var pub events.Publisher = events.Nop{}
	if cfg.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer kp.Close()
		pub = kp
		log.Info(ctx, "publishing events", "broker", cfg.KafkaBroker, "topic", cfg.KafkaTopic)
	}

	a := &api{
		menu:      menu.NewStore(db),
		customers: customer.NewStore(db),
		orders:    order.NewStore(db),
		feedback:  feedback.NewStore(db),
		sessions:  session.NewStore(rdb, cfg.SessionTTL),
		events:    pub,
		log:       log,
		tracer:    tp.Tracer(serviceName),

		corsOrigins: cfg.CORSOrigins,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.HTTPAddr, "tls", cfg.TLSCert != "")
		if cfg.TLSCert != "" {
			errc <- srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server closed: %w", err)
		}
	case <-ctx.Done():
		log.Info(context.Background(), "shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
