package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "github.com/joaomluz/desafio-teddy-open-finance/internal/errors"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/service"
)

// DashboardHandler serves aggregated statistics.
type DashboardHandler struct {
	statsService service.StatsService
	log          *logrus.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(statsService service.StatsService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
		log:          log,
	}
}

// Stats godoc
// @Summary Get dashboard statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.statsService.ComputeStats(c.Request().Context())
	if err != nil {
		h.log.WithError(err).Error("compute stats failed")
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, stats)
}
