package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/auth"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/config"
	apperrors "github.com/joaomluz/desafio-teddy-open-finance/internal/errors"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/handler"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	registry *metrics.Registry,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/healthz" || p == "/metrics"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins(cfg),
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = NewValidator()

	// Public routes
	e.GET("/healthz", healthHandler.Healthz)
	e.GET("/metrics", echo.WrapHandler(registry.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid bearer token)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	secured.GET("/auth/profile", authHandler.Profile)

	secured.POST("/clients", clientHandler.Create)
	secured.GET("/clients", clientHandler.List)
	secured.GET("/clients/:id", clientHandler.Get)
	secured.PUT("/clients/:id", clientHandler.Update)
	secured.DELETE("/clients/:id", clientHandler.Delete)

	secured.GET("/dashboard/stats", dashboardHandler.Stats)
}

func allowedOrigins(cfg *config.Config) []string {
	origins := []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	for _, o := range origins {
		if o == cfg.FrontendOrigin {
			return origins
		}
	}
	return append(origins, cfg.FrontendOrigin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the domain rules
// registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	// maxdecimals rejects numbers with more than two decimal places.
	_ = v.RegisterValidation("maxdecimals", func(fl validator.FieldLevel) bool {
		value := decimal.NewFromFloat(fl.Field().Float())
		return value.Equal(value.Round(2))
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
