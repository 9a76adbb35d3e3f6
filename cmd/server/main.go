package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	_ "github.com/joaomluz/desafio-teddy-open-finance/docs" // swagger docs

	"github.com/joaomluz/desafio-teddy-open-finance/internal/auth"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/cache"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/config"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/db"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/handler"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/logging"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/metrics"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/repository"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/router"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/service"
)

// @title Client Management API
// @version 1.0
// @description REST API for client record management with JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	// Monetary fields serialize as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	gormDB, err := db.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.ViewCount{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	registry := metrics.NewRegistry()

	userRepo := repository.NewUserRepository(gormDB)
	clientRepo := repository.NewClientRepository(gormDB)
	viewCountRepo := repository.NewViewCountRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	authService := service.NewAuthService(userRepo, jwtService, log)
	clientService := service.NewClientService(clientRepo, cacheClient)
	viewService := service.NewViewService(viewCountRepo, registry)
	statsService := service.NewStatsService(clientRepo)

	healthHandler := handler.NewHealthHandler()
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService, viewService, log)
	dashboardHandler := handler.NewDashboardHandler(statsService, log)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		jwtService,
		registry,
		healthHandler,
		authHandler,
		clientHandler,
		dashboardHandler,
	)

	// The database may not be ready yet; the seed user is created in the
	// background and never blocks startup.
	go authService.BootstrapSeedUser(context.Background())

	addr := ":" + cfg.ServerPort
	log.WithField("addr", addr).Info("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server start")
	}
}
