package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/landed-cost/internal/core/ports"
)

// CacheHandler exposes administrative cache operations.
type CacheHandler struct {
	cache ports.Cache
}

func NewCacheHandler(cache ports.Cache) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Clear handles DELETE /v1/cache.
//
// @Summary      Drop every cached rate
// @Tags         cache
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/cache [delete]
func (h *CacheHandler) Clear(c echo.Context) error {
	if err := h.cache.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cache cleared"})
}

// Delete handles DELETE /v1/cache/:key. Deleting an absent key succeeds.
//
// @Summary      Drop one cache entry
// @Tags         cache
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "Cache key (e.g. duty_8517.62_CN_US)"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/cache/{key} [delete]
func (h *CacheHandler) Delete(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil || key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cache key")
	}
	if err := h.cache.Delete(c.Request().Context(), key); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cache entry removed"})
}
