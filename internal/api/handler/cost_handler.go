package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

// MaxBatchItems caps the number of calculations in one batch request.
const MaxBatchItems = 100

// BatchCalculator runs many calculations concurrently.
type BatchCalculator interface {
	Calculate(ctx context.Context, inputs []ports.CalculateCostsInput) ([]ports.BatchItemResult, error)
}

// CostHandler serves the landed cost endpoints.
type CostHandler struct {
	service ports.CostService
	batch   BatchCalculator
}

func NewCostHandler(service ports.CostService, batch BatchCalculator) *CostHandler {
	return &CostHandler{service: service, batch: batch}
}

// Calculate handles POST /v1/landed-cost.
//
// @Summary      Calculate the landed cost of a shipment
// @Tags         landed-cost
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      calculateRequest  true  "Product and shipping details"
// @Success      200   {object}  costResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/landed-cost [post]
func (h *CostHandler) Calculate(c echo.Context) error {
	var req calculateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, shipping := req.toDomain()
	res, err := h.service.CalculateCosts(c.Request().Context(), product, shipping)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCostResponse(res))
}

// CalculateBatch handles POST /v1/landed-cost/batch. Items are validated and
// calculated independently; one bad item does not fail the others.
//
// @Summary      Calculate landed costs for many shipments
// @Tags         landed-cost
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []calculateRequest  true  "Up to 100 calculations"
// @Success      200   {object}  batchResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/landed-cost/batch [post]
func (h *CostHandler) CalculateBatch(c echo.Context) error {
	var reqs []calculateRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "batch must contain at least one item")
	}
	if len(reqs) > MaxBatchItems {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("batch exceeds %d items", MaxBatchItems))
	}

	resp := batchResponse{Results: make([]batchItemResponse, len(reqs))}
	inputs := make([]ports.CalculateCostsInput, 0, len(reqs))
	positions := make([]int, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			resp.Results[i] = batchItemResponse{Index: i, Error: err.Error()}
			continue
		}
		product, shipping := req.toDomain()
		inputs = append(inputs, ports.CalculateCostsInput{Product: product, Shipping: shipping})
		positions = append(positions, i)
	}

	if len(inputs) > 0 {
		results, err := h.batch.Calculate(c.Request().Context(), inputs)
		if err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "batch calculation interrupted")
		}
		for _, r := range results {
			i := positions[r.Index]
			item := batchItemResponse{Index: i}
			if r.Err != nil {
				item.Error = itemError(r.Err)
			} else {
				item.Result = toCostResponse(r.Result)
			}
			resp.Results[i] = item
		}
	}

	for _, r := range resp.Results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// DutyRate handles GET /v1/duty-rates.
//
// @Summary      Resolve the duty rate for an HS code and trade lane
// @Tags         landed-cost
// @Produce      json
// @Security     BearerAuth
// @Param        hs_code      query     string  true   "HS code (e.g. 8517.62)"
// @Param        origin       query     string  true   "Origin country (ISO alpha-2)"
// @Param        destination  query     string  true   "Destination country (ISO alpha-2)"
// @Param        category     query     string  false  "Product category, used by the estimate"
// @Success      200          {object}  dutyRateResponse
// @Failure      401          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /v1/duty-rates [get]
func (h *CostHandler) DutyRate(c echo.Context) error {
	var q dutyRateQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	origin := domain.NormalizeCountry(q.Origin)
	destination := domain.NormalizeCountry(q.Destination)
	rate := h.service.ResolveDutyRate(c.Request().Context(), q.HSCode, origin, destination, q.Category)
	return c.JSON(http.StatusOK, dutyRateResponse{
		HSCode:      strings.TrimSpace(q.HSCode),
		Origin:      origin,
		Destination: destination,
		Rate:        rate.Rate,
		Source:      rate.Source,
		Description: rate.Description,
	})
}

// itemError keeps batch items from leaking internal error text.
func itemError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, domain.ErrCalculationFailed):
		return domain.ErrCalculationFailed.Error()
	default:
		return "internal server error"
	}
}
