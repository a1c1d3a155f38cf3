package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// AuthHandler exposes the session lifecycle over HTTP. Tokens travel as
// HTTP-only cookies; the response body is a bare confirmation envelope.
type AuthHandler struct {
	sessions ports.SessionService
	cookies  CookieSettings
}

func NewAuthHandler(sessions ports.SessionService, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

// Register creates a new account and starts a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	setTokenCookies(c, pair, h.cookies)
	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: "registration successful"})
}

// Login verifies credentials and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setTokenCookies(c, pair, h.cookies)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "login successful"})
}

// Refresh exchanges the refresh cookie for a brand-new pair.
//
// @Summary      Refresh the token pair
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.sessions.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	setTokenCookies(c, pair, h.cookies)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "token refreshed"})
}

// Logout revokes the presented refresh token and clears both cookies.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.sessions.Logout(c.Request().Context(), refreshToken); err != nil {
		return err
	}

	clearTokenCookies(c, h.cookies)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "logged out"})
}
