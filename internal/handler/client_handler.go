package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	apperrors "github.com/joaomluz/desafio-teddy-open-finance/internal/errors"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/service"
)

// ClientHandler handles client record endpoints.
type ClientHandler struct {
	clientService service.ClientService
	viewService   service.ViewService
	log           *logrus.Logger
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService service.ClientService, viewService service.ViewService, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		viewService:   viewService,
		log:           log,
	}
}

// CreateClientRequest represents a client creation request.
type CreateClientRequest struct {
	Name         string  `json:"name" validate:"required,min=3"`
	Salary       float64 `json:"salary" validate:"gte=0,maxdecimals"`
	CompanyValue float64 `json:"companyValue" validate:"gte=0,maxdecimals"`
}

// UpdateClientRequest represents a partial client update. Absent fields
// keep their prior values.
type UpdateClientRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=3"`
	Salary       *float64 `json:"salary" validate:"omitempty,gte=0,maxdecimals"`
	CompanyValue *float64 `json:"companyValue" validate:"omitempty,gte=0,maxdecimals"`
}

// ClientDetailResponse is a client record plus its view tally.
type ClientDetailResponse struct {
	model.Client
	ViewCount int64 `json:"viewCount"`
}

// Create godoc
// @Summary Create a new client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateClientRequest true "Client data"
// @Success 201 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.Create(c.Request().Context(), service.CreateClientInput{
		Name:         req.Name,
		Salary:       decimal.NewFromFloat(req.Salary),
		CompanyValue: decimal.NewFromFloat(req.CompanyValue),
	})
	if err != nil {
		h.log.WithError(err).Error("create client failed")
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, client)
}

// List godoc
// @Summary List all clients, soft-deleted included
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Client
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		h.log.WithError(err).Error("list clients failed")
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, clients)
}

// Get godoc
// @Summary Get client details; increments the view counter
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} ClientDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseClientID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	client, err := h.clientService.GetByID(ctx, id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.viewService.RecordView(ctx, id); err != nil {
		// A lost increment is acceptable; the detail read still succeeds.
		h.log.WithError(err).WithField("client_id", id).Warn("record view failed")
	}

	count, err := h.viewService.Count(ctx, id)
	if err != nil {
		h.log.WithError(err).WithField("client_id", id).Warn("read view count failed")
	}

	return c.JSON(http.StatusOK, ClientDetailResponse{
		Client:    *client,
		ViewCount: count,
	})
}

// Update godoc
// @Summary Partially update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body UpdateClientRequest true "Fields to update"
// @Success 200 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseClientID(c)
	if err != nil {
		return err
	}

	var req UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.UpdateClientInput{Name: req.Name}
	if req.Salary != nil {
		salary := decimal.NewFromFloat(*req.Salary)
		input.Salary = &salary
	}
	if req.CompanyValue != nil {
		companyValue := decimal.NewFromFloat(*req.CompanyValue)
		input.CompanyValue = &companyValue
	}

	client, err := h.clientService.Update(c.Request().Context(), id, input)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, client)
}

// Delete godoc
// @Summary Soft-delete a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseClientID(c)
	if err != nil {
		return err
	}

	if err := h.clientService.SoftDelete(c.Request().Context(), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "client deleted",
	})
}

func parseClientID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid client ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}
