package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// AppointmentHandler handles appointment CRUD. Ownership scoping happens in
// the service; the handler only maps HTTP to DTOs.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create books an appointment for the authenticated caller.
//
// @Summary      Create an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date format")
	}

	appointment, err := h.service.Create(c.Request().Context(), ports.CreateAppointmentInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appointment)
}

// Update mutates an appointment owned by the caller (admins: any).
//
// @Summary      Update an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string                    true  "Appointment id"
// @Param        body  body      updateAppointmentRequest  true  "Fields to update"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /appointments/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateAppointmentInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date format")
		}
		input.Date = &date
	}
	if req.Status != nil {
		status := domain.AppointmentStatus(*req.Status)
		input.Status = &status
	}

	appointment, err := h.service.Update(c.Request().Context(), ports.UpdateAppointmentRequest{
		ID:     c.Param("id"),
		UserID: userID,
		Role:   role,
		Input:  input,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointment)
}

// Delete soft-deletes an appointment owned by the caller (admins: any).
//
// @Summary      Delete an appointment
// @Tags         appointments
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  string  true  "Appointment id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "appointment deleted"})
}

// List returns a page of appointments scoped by role.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     CookieAuth
// @Param        page     query     int     false  "Page number (1-based)"
// @Param        limit    query     int     false  "Rows per page (max 100)"
// @Param        search   query     string  false  "Partial match on title"
// @Param        status   query     string  false  "Filter by status"
// @Param        date     query     string  false  "Filter by calendar day (yyyy-mm-dd)"
// @Param        user_id  query     string  false  "Filter by owner (admin only)"
// @Success      200      {object}  listAppointmentsResponse
// @Failure      401      {object}  errorResponse
// @Router       /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	filter := ports.ListAppointmentsFilter{
		UserID: c.QueryParam("user_id"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}
	if raw := c.QueryParam("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date format")
		}
		filter.Date = date
	}

	page, err := h.service.List(c.Request().Context(), filter, userID, role)
	if err != nil {
		return err
	}

	data := page.Data
	if data == nil {
		data = []*domain.Appointment{}
	}
	return c.JSON(http.StatusOK, listAppointmentsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	})
}
