package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// AnalyticsHandler serves the read-only dashboard aggregation.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard returns appointment statistics scoped to the caller; admins
// additionally receive case totals.
//
// @Summary      Dashboard statistics
// @Tags         analytics
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  errorResponse
// @Router       /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Dashboard(c.Request().Context(), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
