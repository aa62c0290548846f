package handler

import (
	"log/slog"
	"net/http"

	"crawl/internal/delivery/api/response"
	"crawl/internal/delivery/api/validator"
	"crawl/internal/domain/entity"
	domainerrors "crawl/internal/domain/errors"
	"crawl/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CrawlHandlerParams holds dependencies for CrawlHandler, injected by Fx.
type CrawlHandlerParams struct {
	fx.In

	CrawlUC usecase.CrawlUsecase
	Logger  *slog.Logger
}

// CrawlHandler serves crawl planning requests
type CrawlHandler struct {
	crawlUC usecase.CrawlUsecase
	logger  *slog.Logger
}

// NewCrawlHandler is the constructor for CrawlHandler
func NewCrawlHandler(params CrawlHandlerParams) *CrawlHandler {
	return &CrawlHandler{
		crawlUC: params.CrawlUC,
		logger:  params.Logger,
	}
}

// PlanCrawlRequest is the body of POST /crawl. Coordinates are pointers so a missing
// value is told apart from zero.
type PlanCrawlRequest struct {
	Lat           *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Long          *float64 `json:"long" validate:"required,min=-180,max=180"`
	RadiusKm      *float64 `json:"radiusKm,omitempty" validate:"omitempty,gt=0"`
	LowestQuality bool     `json:"lowestQuality"`
}

// PlanCrawl plans the best and worst crawls around the given point
func (h *CrawlHandler) PlanCrawl(c echo.Context) error {
	var req PlanCrawlRequest
	if err := c.Bind(&req); err != nil {
		return response.HandleAppError(c, domainerrors.ErrInvalidInput)
	}
	if req.Lat == nil || req.Long == nil {
		return response.HandleAppError(c, domainerrors.ErrInvalidInput)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			validator.FieldErrors(err),
		)
	}

	input := usecase.PlanInput{
		Centre:        entity.Coordinate{Lat: *req.Lat, Lng: *req.Long},
		LowestQuality: req.LowestQuality,
	}
	if req.RadiusKm != nil {
		input.RadiusKm = *req.RadiusKm
	}

	result, err := h.crawlUC.Plan(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}
