package handlers

import (
	"net/http"

	"foreclosure_flow_go/config"
	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/services"

	"github.com/labstack/echo/v4"
)

// LoginPostHandler authenticates a user and opens a session
func LoginPostHandler(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return c.String(http.StatusBadRequest, "Email and password are required")
	}

	user, err := services.Authenticate(db.DB, email, password)
	if err != nil {
		return c.String(http.StatusUnauthorized, "Invalid email or password")
	}

	session, err := services.CreateSession(db.DB, user, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error creating session")
	}

	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/dashboard")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// LogoutHandler closes the current session
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, "/login")
}

// GetCurrentUserHandler returns the authenticated user along with the CSRF
// token clients must echo back on state-changing requests
func GetCurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":       user,
		"csrf_token": middleware.GetCSRFToken(c),
	})
}
