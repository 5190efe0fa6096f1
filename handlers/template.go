package handlers

import (
	"net/http"
	"strconv"

	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// templatePolicy sanitizes editor-authored HTML before it is stored.
// UGCPolicy keeps the formatting tags the flattener understands and strips
// scripts and event handlers.
var templatePolicy = bluemonday.UGCPolicy().
	AllowAttrs("style", "align").OnElements("p", "div", "span", "h1", "h2", "h3", "li", "td").
	AllowAttrs("face", "size", "color").OnElements("font")

// GetTemplatesHandler returns the firm's document templates
func GetTemplatesHandler(c echo.Context) error {
	query := middleware.GetFirmScopedQuery(c, db.DB).
		Model(&models.DocumentTemplate{}).
		Order("name ASC")
	if c.QueryParam("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var templates []models.DocumentTemplate
	if err := query.Find(&templates).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching templates")
	}
	return c.JSON(http.StatusOK, templates)
}

// GetTemplateHandler returns a single template
func GetTemplateHandler(c echo.Context) error {
	var template models.DocumentTemplate
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&template, "id = ?", c.Param("id")).Error; err != nil {
		return c.String(http.StatusNotFound, "Template not found")
	}
	return c.JSON(http.StatusOK, template)
}

// CreateTemplateHandler creates a document template
func CreateTemplateHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	name := c.FormValue("name")
	content := c.FormValue("content")
	if name == "" || content == "" {
		return c.String(http.StatusBadRequest, "Name and content are required")
	}

	template := models.DocumentTemplate{
		FirmID:          *user.FirmID,
		Name:            name,
		Content:         templatePolicy.Sanitize(content),
		Version:         1,
		IsActive:        true,
		CreatedByID:     user.ID,
		PageOrientation: models.OrientationPortrait,
		PageSize:        models.PageSizeLetter,
		MarginTop:       72,
		MarginBottom:    72,
		MarginLeft:      72,
		MarginRight:     72,
	}
	if v := c.FormValue("description"); v != "" {
		template.Description = &v
	}
	if err := applyPageSettings(c, &template); err != nil {
		return err
	}

	if err := db.DB.Create(&template).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error creating template")
	}
	return c.JSON(http.StatusCreated, template)
}

// UpdateTemplateHandler edits a template. Content edits bump the version;
// documents already generated keep their substituted snapshot.
func UpdateTemplateHandler(c echo.Context) error {
	var template models.DocumentTemplate
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&template, "id = ?", c.Param("id")).Error; err != nil {
		return c.String(http.StatusNotFound, "Template not found")
	}

	if name := c.FormValue("name"); name != "" {
		template.Name = name
	}
	if v, ok := formValueSet(c, "description"); ok {
		template.Description = optional(v)
	}
	if content, ok := formValueSet(c, "content"); ok && content != "" {
		sanitized := templatePolicy.Sanitize(content)
		if sanitized != template.Content {
			template.Content = sanitized
			template.Version++
		}
	}
	if v, ok := formValueSet(c, "is_active"); ok {
		template.IsActive = v == "true" || v == "on"
	}
	if err := applyPageSettings(c, &template); err != nil {
		return err
	}

	if err := db.DB.Save(&template).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating template")
	}
	return c.JSON(http.StatusOK, template)
}

// DeleteTemplateHandler soft deletes a template. Documents generated from it
// keep their content; only the template reference dangles.
func DeleteTemplateHandler(c echo.Context) error {
	result := middleware.GetFirmScopedQuery(c, db.DB).Delete(&models.DocumentTemplate{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		return c.String(http.StatusInternalServerError, "Error deleting template")
	}
	if result.RowsAffected == 0 {
		return c.String(http.StatusNotFound, "Template not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetVariableDictionaryHandler returns the substitution tokens available to
// template authors, grouped by category
func GetVariableDictionaryHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.GetVariableDictionary())
}

func applyPageSettings(c echo.Context, template *models.DocumentTemplate) error {
	if v := c.FormValue("page_orientation"); v != "" {
		if !models.IsValidOrientation(v) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid page orientation")
		}
		template.PageOrientation = v
	}
	if v := c.FormValue("page_size"); v != "" {
		if !models.IsValidPageSize(v) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid page size")
		}
		template.PageSize = v
	}
	for name, field := range map[string]*int{
		"margin_top":    &template.MarginTop,
		"margin_bottom": &template.MarginBottom,
		"margin_left":   &template.MarginLeft,
		"margin_right":  &template.MarginRight,
	} {
		if v := c.FormValue(name); v != "" {
			margin, err := strconv.Atoi(v)
			if err != nil || margin < 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid margin")
			}
			*field = margin
		}
	}
	return nil
}
