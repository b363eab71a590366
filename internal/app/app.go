package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Priyanka-kale21/webhack/configs"
	"github.com/Priyanka-kale21/webhack/internal/analyzer"
	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/handler"
	"github.com/Priyanka-kale21/webhack/internal/logging"
	"github.com/Priyanka-kale21/webhack/internal/repository"
	"github.com/Priyanka-kale21/webhack/internal/server"
	"github.com/Priyanka-kale21/webhack/internal/service"
)

// ServiceName is reported by the health endpoints.
const ServiceName = "webhack"

const shutdownTimeout = 10 * time.Second

// hookable functions for dependency injection
var (
	LoadConfig = configs.Load
	NewDB      = repository.NewDB
	MigrateDB  = repository.Migrate
)

// NewAuditService wires the fetcher, crawler and analyzers into an audit
// service. repo may be nil to run without history.
func NewAuditService(cfg *configs.Config, repo repository.AuditRepository, log logrus.FieldLogger) service.AuditService {
	fetcher := crawler.NewHTTPFetcher()
	c := crawler.New(fetcher,
		crawler.WithLogger(log),
		crawler.WithRateLimit(cfg.CrawlRatePerSecond),
	)
	robots := func(ctx context.Context, site string) *robotstxt.RobotsData {
		return analyzer.FetchRobots(ctx, fetcher.Client(), site)
	}
	return service.NewAuditService(service.AuditConfig{
		DefaultMaxPages: cfg.DefaultMaxPages,
		MaxPagesLimit:   cfg.MaxPagesLimit,
		MaxConcurrent:   cfg.MaxConcurrentAudits,
		Timeout:         cfg.AuditTimeout,
	}, c, analyzer.New(), robots, repo, log)
}

// NewRouter builds the gin engine serving the HTTP API.
func NewRouter(cfg *configs.Config, db *gorm.DB, audits service.AuditService, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	health := handler.NewHealthHandler(service.NewHealthService(db, ServiceName))
	server.RegisterRoutes(r,
		server.Options{CORSOrigins: cfg.CORSOrigins, Logger: log},
		[]server.RouteRegistrar{health},
		[]server.RouteRegistrar{handler.NewAuditHandler(audits)},
	)
	return r
}

// Run loads config, opens the DB when one is configured, runs migrations and
// serves the API until ctx is done.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.ServerMode)

	var (
		db   *gorm.DB
		repo repository.AuditRepository
	)
	if cfg.DatabaseEnabled() {
		db, err = NewDB(cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("db init error: %w", err)
		}
		if err := MigrateDB(db); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		repo = repository.NewAuditRepo(db)
	} else {
		log.Warn("no database configured, audit history is disabled")
	}

	audits := NewAuditService(cfg, repo, log)
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           NewRouter(cfg, db, audits, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
