package handler_test

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/auth"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/config"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/handler"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/logging"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/metrics"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/repository"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/router"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/service"
)

type testEnv struct {
	e             *echo.Echo
	db            *gorm.DB
	authService   service.AuthService
	clientService service.ClientService
	registry      *metrics.Registry
}

// setupTestEnv wires the full route table against an in-memory database
// so handler tests exercise binding, validation, auth middleware and
// JSON shapes end to end.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.ViewCount{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	cfg := config.Load()
	log := logging.New("error")
	registry := metrics.NewRegistry()

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	viewCountRepo := repository.NewViewCountRepository(db)

	jwtService := auth.NewJWTService("test-secret", time.Hour)

	authService := service.NewAuthService(userRepo, jwtService, log)
	clientService := service.NewClientService(clientRepo, nil)
	viewService := service.NewViewService(viewCountRepo, registry)
	statsService := service.NewStatsService(clientRepo)

	e := echo.New()
	router.Register(
		e,
		cfg,
		jwtService,
		registry,
		handler.NewHealthHandler(),
		handler.NewAuthHandler(authService),
		handler.NewClientHandler(clientService, viewService, log),
		handler.NewDashboardHandler(statsService, log),
	)

	require.NoError(t, authService.EnsureSeedUser(context.Background()))

	return &testEnv{
		e:             e,
		db:            db,
		authService:   authService,
		clientService: clientService,
		registry:      registry,
	}
}

// bearerToken issues a token for the seed user.
func (env *testEnv) bearerToken(t *testing.T) string {
	t.Helper()

	result, err := env.authService.Login(context.Background(), service.SeedUserEmail, "admin123")
	require.NoError(t, err)
	return result.AccessToken
}
