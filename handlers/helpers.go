package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseFloatForm parses a numeric form value, returning 0 for anything
// unparseable. Validation of required fields happens before parsing.
func parseFloatForm(c echo.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.FormValue(name), 64)
	if err != nil {
		return 0
	}
	return v
}

// formValueSet reports whether a form field was present at all,
// distinguishing "clear this field" from "field not submitted".
func formValueSet(c echo.Context, name string) (string, bool) {
	form, err := c.FormParams()
	if err != nil {
		return "", false
	}
	values, ok := form[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
