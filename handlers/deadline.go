package handlers

import (
	"net/http"
	"time"

	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// GetDeadlinesHandler returns upcoming deadlines across the firm's cases,
// soonest first
func GetDeadlinesHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	query := db.DB.Model(&models.Deadline{}).
		Joins("JOIN cases ON cases.id = deadlines.case_id").
		Where("cases.firm_id = ? AND cases.deleted_at IS NULL", *user.FirmID).
		Preload("Case").
		Order("deadlines.date ASC")

	if c.QueryParam("pending") == "true" {
		query = query.Where("deadlines.completed = ?", false)
	}

	var deadlines []models.Deadline
	if err := query.Find(&deadlines).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching deadlines")
	}
	return c.JSON(http.StatusOK, deadlines)
}

// GetCaseDeadlinesHandler returns one case's deadlines, soonest first
func GetCaseDeadlinesHandler(c echo.Context) error {
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	var deadlines []models.Deadline
	if err := db.DB.Where("case_id = ?", caseID).Order("date ASC").Find(&deadlines).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching deadlines")
	}

	if c.Request().Header.Get("HX-Request") == "true" {
		return partials.DeadlinesList(deadlines).Render(c.Request().Context(), c.Response().Writer)
	}
	return c.JSON(http.StatusOK, deadlines)
}

// CreateDeadlineHandler adds a deadline to a case
func CreateDeadlineHandler(c echo.Context) error {
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	title := c.FormValue("title")
	if title == "" {
		return c.String(http.StatusBadRequest, "Title is required")
	}
	date, err := time.Parse("2006-01-02", c.FormValue("date"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid date")
	}
	deadlineType := c.FormValue("type")
	if deadlineType == "" {
		deadlineType = models.DeadlineTypeInternal
	}
	if !models.IsValidDeadlineType(deadlineType) {
		return c.String(http.StatusBadRequest, "Invalid deadline type")
	}

	deadline := models.Deadline{
		FirmID: caseRecord.FirmID,
		CaseID: caseID,
		Title:  title,
		Type:   deadlineType,
		Date:   date,
	}
	if v := c.FormValue("description"); v != "" {
		deadline.Description = &v
	}

	if err := db.DB.Create(&deadline).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error creating deadline")
	}
	return c.JSON(http.StatusCreated, deadline)
}

// UpdateDeadlineHandler edits a deadline
func UpdateDeadlineHandler(c echo.Context) error {
	deadline, err := findCaseDeadline(c)
	if err != nil {
		return err
	}

	if title := c.FormValue("title"); title != "" {
		deadline.Title = title
	}
	if v := c.FormValue("type"); v != "" {
		if !models.IsValidDeadlineType(v) {
			return c.String(http.StatusBadRequest, "Invalid deadline type")
		}
		deadline.Type = v
	}
	if v := c.FormValue("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid date")
		}
		deadline.Date = date
	}
	if v, ok := formValueSet(c, "description"); ok {
		deadline.Description = optional(v)
	}

	if err := db.DB.Save(deadline).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating deadline")
	}
	return c.JSON(http.StatusOK, deadline)
}

// ToggleDeadlineHandler flips a deadline's completed flag
func ToggleDeadlineHandler(c echo.Context) error {
	deadline, err := findCaseDeadline(c)
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	deadline.Completed = !deadline.Completed
	if deadline.Completed {
		now := time.Now()
		deadline.CompletedAt = &now
		deadline.CompletedBy = &user.ID
	} else {
		deadline.CompletedAt = nil
		deadline.CompletedBy = nil
	}

	if err := db.DB.Save(deadline).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating deadline")
	}
	return c.JSON(http.StatusOK, deadline)
}

// DeleteDeadlineHandler removes a deadline from a case
func DeleteDeadlineHandler(c echo.Context) error {
	deadline, err := findCaseDeadline(c)
	if err != nil {
		return err
	}
	if err := db.DB.Delete(deadline).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error deleting deadline")
	}
	return c.NoContent(http.StatusNoContent)
}

func findCaseDeadline(c echo.Context) (*models.Deadline, error) {
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}

	var deadline models.Deadline
	if err := db.DB.First(&deadline, "id = ? AND case_id = ?", c.Param("deadlineId"), caseID).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Deadline not found")
	}
	return &deadline, nil
}
