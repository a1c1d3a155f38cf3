package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk-api/internal/api/middleware"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// RefreshCookieName is the cookie carrying the refresh token.
const RefreshCookieName = "refresh_token"

// CookieSettings controls the attributes applied to both token cookies.
type CookieSettings struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool // true in production: cookies only travel over HTTPS
}

// setTokenCookies hands the pair to the browser as two HTTP-only cookies.
func setTokenCookies(c echo.Context, pair *ports.TokenPair, settings CookieSettings) {
	c.SetCookie(tokenCookie(middleware.AccessCookieName, pair.AccessToken, int(settings.AccessTTL.Seconds()), settings.Secure))
	c.SetCookie(tokenCookie(RefreshCookieName, pair.RefreshToken, int(settings.RefreshTTL.Seconds()), settings.Secure))
}

// clearTokenCookies instructs the browser to discard both artifacts.
func clearTokenCookies(c echo.Context, settings CookieSettings) {
	c.SetCookie(tokenCookie(middleware.AccessCookieName, "", -1, settings.Secure))
	c.SetCookie(tokenCookie(RefreshCookieName, "", -1, settings.Secure))
}

func tokenCookie(name, value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
