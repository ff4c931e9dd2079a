// Command server wires the data access services behind the HTTP API. All
// business logic lives in internal packages; main only assembles them.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	auditmetrics "github.com/mjza/mra-core-sub001/internal/auditlog/metrics"
	"github.com/mjza/mra-core-sub001/internal/auditlog/publisher"
	auditservice "github.com/mjza/mra-core-sub001/internal/auditlog/service"
	auditstore "github.com/mjza/mra-core-sub001/internal/auditlog/store"
	auditworker "github.com/mjza/mra-core-sub001/internal/auditlog/worker"
	"github.com/mjza/mra-core-sub001/internal/authclient"
	"github.com/mjza/mra-core-sub001/internal/dataaccess"
	geometrics "github.com/mjza/mra-core-sub001/internal/geo/metrics"
	geoservice "github.com/mjza/mra-core-sub001/internal/geo/service"
	geostore "github.com/mjza/mra-core-sub001/internal/geo/store"
	"github.com/mjza/mra-core-sub001/internal/platform/config"
	"github.com/mjza/mra-core-sub001/internal/platform/httpserver"
	"github.com/mjza/mra-core-sub001/internal/platform/logger"
	platformredis "github.com/mjza/mra-core-sub001/internal/platform/redis"
	ratelimitmetrics "github.com/mjza/mra-core-sub001/internal/ratelimit/metrics"
	ratelimitservice "github.com/mjza/mra-core-sub001/internal/ratelimit/service"
	ratelimitstore "github.com/mjza/mra-core-sub001/internal/ratelimit/store"
	refservice "github.com/mjza/mra-core-sub001/internal/reference/service"
	refstore "github.com/mjza/mra-core-sub001/internal/reference/store"
	transporthttp "github.com/mjza/mra-core-sub001/internal/transport/http"
	udmetrics "github.com/mjza/mra-core-sub001/internal/userdetails/metrics"
	udservice "github.com/mjza/mra-core-sub001/internal/userdetails/service"
	udstore "github.com/mjza/mra-core-sub001/internal/userdetails/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.DefaultRegisterer

	// Geo data is seeded in memory; the relational stores take over for the
	// other tables when a database is configured.
	geoStore := geostore.NewInMemory()

	var referenceStore refservice.Store = refstore.NewInMemory()
	var userDetailsStore udservice.Store = udstore.NewInMemory()
	var auditStore auditservice.Store = auditstore.NewInMemory()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		referenceStore = refstore.NewPostgres(pool)
		userDetailsStore = udstore.NewPostgres(pool)

		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		auditStore = auditstore.NewPostgres(db)
	}

	var rateLimitStore ratelimitservice.Store = ratelimitstore.NewInMemory()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		rateLimitStore = ratelimitstore.NewRedis(redisClient.Client)
	}

	auditMetrics := auditmetrics.New(registry)
	inbox := auditworker.NewInbox(256, auditMetrics)

	var sink publisher.Publisher = publisher.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := publisher.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		sink = kafka
	}

	referenceService := refservice.New(referenceStore, refservice.WithLogger(log))
	geoService := geoservice.New(geoStore,
		geoservice.WithLogger(log),
		geoservice.WithMetrics(geometrics.New(registry)),
	)
	auditService := auditservice.New(auditStore,
		auditservice.WithLogger(log),
		auditservice.WithMetrics(auditMetrics),
		auditservice.WithPublisher(inbox),
	)
	userDetailsService := udservice.New(userDetailsStore, referenceService,
		udservice.WithLogger(log),
		udservice.WithMetrics(udmetrics.New(registry)),
	)
	limiter := ratelimitservice.New(rateLimitStore,
		ratelimitservice.WithWindow(cfg.RateLimitWindow),
		ratelimitservice.WithLimit(cfg.RateLimitMax),
		ratelimitservice.WithLogger(log),
		ratelimitservice.WithMetrics(ratelimitmetrics.New(registry)),
	)

	facade := dataaccess.New(referenceService, geoService, auditService, userDetailsService)
	resolver := authclient.New(cfg.AuthServiceURL, log)
	server := transporthttp.NewServer(facade, limiter, resolver, log)

	srv := httpserver.New(cfg.Addr, server.Router())

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return auditworker.New(inbox, sink, log).Run(ctx)
	})

	group.Go(func() error {
		log.Info("starting server", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
