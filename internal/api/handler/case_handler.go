package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// CaseHandler handles support-case management. The admin-only routes are
// gated by the RBAC middleware in the router.
type CaseHandler struct {
	service ports.CaseService
}

func NewCaseHandler(service ports.CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// Create opens a new case. Admin only.
//
// @Summary      Create a case
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createCaseRequest  true  "Case details"
// @Success      201   {object}  domain.Case
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /cases [post]
func (h *CaseHandler) Create(c echo.Context) error {
	var req createCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Assign links a case to a user. Admin only.
//
// @Summary      Assign a case to a user
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "Case id"
// @Param        body  body      assignCaseRequest  true  "Assignee"
// @Success      200   {object}  ports.CaseWithAssignee
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cases/{id}/assign [put]
func (h *CaseHandler) Assign(c echo.Context) error {
	var req assignCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assigned, err := h.service.Assign(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assigned)
}

// List returns all cases with their assignees.
//
// @Summary      List cases
// @Tags         cases
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   ports.CaseWithAssignee
// @Failure      401  {object}  errorResponse
// @Router       /cases [get]
func (h *CaseHandler) List(c echo.Context) error {
	cases, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if cases == nil {
		cases = []*ports.CaseWithAssignee{}
	}
	return c.JSON(http.StatusOK, cases)
}

// Delete soft-deletes a case. Admin only.
//
// @Summary      Delete a case
// @Tags         cases
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  string  true  "Case id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /cases/{id} [delete]
func (h *CaseHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "case deleted"})
}
