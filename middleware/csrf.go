package middleware

import (
	"github.com/labstack/echo/v4"
)

// GetCSRFToken returns the CSRF token echo's CSRF middleware stored on the
// context, or an empty string when none is present
func GetCSRFToken(c echo.Context) string {
	token, ok := c.Get("csrf").(string)
	if !ok {
		return ""
	}
	return token
}
