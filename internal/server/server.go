package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "winsbygroup.com/brvalida/internal/middleware"

	"winsbygroup.com/brvalida/internal/cep"
	"winsbygroup.com/brvalida/internal/config"
	"winsbygroup.com/brvalida/internal/customer"
	"winsbygroup.com/brvalida/internal/demodata"
	"winsbygroup.com/brvalida/internal/sqlite"
	"winsbygroup.com/brvalida/internal/validation"

	apihttp "winsbygroup.com/brvalida/internal/http/api"
)

type Server struct {
	Echo  *echo.Echo
	HTTP  *http.Server
	DB    *sqlx.DB      // nil with the memory store
	Redis *redis.Client // nil without a CEP cache
}

func Build(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	s := &Server{}

	//
	// Customer store
	//
	var store customer.Store
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := openDB(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		s.DB = db
		store = customer.NewSQLStore(db)
		logger.Info().Str("db_path", cfg.DBPath).Msg("using sqlite customer store")
	default:
		store = customer.NewMemoryStore()
		logger.Info().Msg("using in-memory customer store")
	}

	//
	// CEP lookup
	//
	var cache cep.Cache
	if cfg.Redis.Addr != "" {
		s.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = cep.NewRedisCache(s.Redis, cfg.CEP.CacheTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.CEP.CacheTTL).Msg("cep cache enabled")
	}

	hc := &http.Client{}
	cepClient := cep.NewClient(
		[]cep.Provider{
			cep.NewViaCEP(cfg.CEP.ViaCEPURL, hc),
			cep.NewBrasilAPI(cfg.CEP.BrasilAPIURL, hc),
		},
		cep.Options{
			Timeout:  cfg.CEP.Timeout,
			Cache:    cache,
			Logger:   logger,
			OnResult: mwsvc.RecordCEPLookup,
		},
	)

	//
	// Domain services
	//
	validationSvc := validation.NewService(cepClient, mwsvc.RecordValidation)
	customerSvc := customer.NewService(store)

	if cfg.Seed {
		n, err := demodata.Load(context.Background(), customerSvc)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to load seed customers: %w", err)
		}
		logger.Info().Int("customers", n).Msg("seed data loaded")
	}

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = mwsvc.ErrorHandler

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		ctx := c.Request().Context()
		if s.DB != nil {
			if err := s.DB.PingContext(ctx); err != nil {
				return c.String(http.StatusServiceUnavailable, "DB not ready")
			}
		}
		if s.Redis != nil {
			if err := s.Redis.Ping(ctx).Err(); err != nil {
				return c.String(http.StatusServiceUnavailable, "Redis not ready")
			}
		}
		return c.String(http.StatusOK, "Ready")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Middleware
	e.Use(mwsvc.RequestID())
	e.Use(mwsvc.Logger(logger))
	e.Use(mwsvc.RequestLogger())
	e.Use(mwsvc.Metrics())
	e.Use(mwecho.Recover())

	apihttp.RegisterRoutes(e, apihttp.NewHandler(validationSvc, customerSvc))

	//
	// HTTP server
	//
	s.Echo = e
	s.HTTP = &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// Close releases the database and Redis connections.
func (s *Server) Close() error {
	var errs []error
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	return errors.Join(errs...)
}

func openDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// A single connection keeps a shared-cache memory database alive and
	// serializes writers.
	db.SetMaxOpenConns(1)

	if err := sqlite.RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
