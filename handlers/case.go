package handlers

import (
	"net/http"
	"time"

	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetCasesHandler returns the list of cases for the current firm
func GetCasesHandler(c echo.Context) error {
	status := c.QueryParam("status")
	search := c.QueryParam("search")

	query := middleware.GetFirmScopedQuery(c, db.DB).
		Model(&models.Case{}).
		Preload("Property").
		Preload("Mortgage").
		Preload("AssignedTo").
		Order("opened_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		likeSearch := "%" + search + "%"
		query = query.Where("file_number LIKE ? OR title LIKE ?", likeSearch, likeSearch)
	}

	var cases []models.Case
	if err := query.Find(&cases).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching cases")
	}
	return c.JSON(http.StatusOK, cases)
}

// GetCaseHandler returns a single case with its full relations
func GetCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseRecord, err := services.GetCaseWithRelations(db.DB, *user.FirmID, c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}
	return c.JSON(http.StatusOK, caseRecord)
}

// CreateCaseHandler creates a new case with its property and mortgage.
// Property and mortgage details arrive on the same form; a case always has
// exactly one of each.
func CreateCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	firmID := *user.FirmID

	fileNumber := c.FormValue("file_number")
	if fileNumber == "" {
		return c.String(http.StatusBadRequest, "File number is required")
	}
	address := c.FormValue("property_address")
	if address == "" {
		return c.String(http.StatusBadRequest, "Property address is required")
	}
	regNumber := c.FormValue("mortgage_registration_number")
	if regNumber == "" {
		return c.String(http.StatusBadRequest, "Mortgage registration number is required")
	}

	principal := parseFloatForm(c, "mortgage_principal")
	rate := parseFloatForm(c, "mortgage_interest_rate")
	balance := parseFloatForm(c, "mortgage_balance")
	perDiem := parseFloatForm(c, "mortgage_per_diem")
	startDate, err := time.Parse("2006-01-02", c.FormValue("mortgage_start_date"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid mortgage start date")
	}

	caseRecord := models.Case{
		FirmID:     firmID,
		FileNumber: fileNumber,
		Status:     models.CaseStatusNew,
		Notes:      c.FormValue("notes"),
	}
	if title := c.FormValue("title"); title != "" {
		caseRecord.Title = &title
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&caseRecord).Error; err != nil {
			return err
		}
		property := models.Property{
			CaseID:  caseRecord.ID,
			Address: address,
			City:    c.FormValue("property_city"),
		}
		if err := tx.Create(&property).Error; err != nil {
			return err
		}
		mortgage := models.Mortgage{
			CaseID:             caseRecord.ID,
			RegistrationNumber: regNumber,
			Principal:          principal,
			InterestRate:       rate,
			StartDate:          startDate,
			CurrentBalance:     balance,
			PerDiemInterest:    perDiem,
		}
		return tx.Create(&mortgage).Error
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error creating case")
	}

	return c.JSON(http.StatusCreated, caseRecord)
}

// UpdateCaseHandler updates a case's editable fields
func UpdateCaseHandler(c echo.Context) error {
	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", c.Param("id")).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	if title := c.FormValue("title"); title != "" {
		caseRecord.Title = &title
	}
	if notes, ok := formValueSet(c, "notes"); ok {
		caseRecord.Notes = notes
	}
	if v := c.FormValue("court_file_number"); v != "" {
		caseRecord.CourtFileNumber = &v
	}
	if v := c.FormValue("court_registry"); v != "" {
		caseRecord.CourtRegistry = &v
	}
	if v := c.FormValue("judge_name"); v != "" {
		caseRecord.JudgeName = &v
	}
	if v := c.FormValue("hearing_date"); v != "" {
		hearing, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid hearing date")
		}
		caseRecord.HearingDate = &hearing
	}

	if err := db.DB.Save(&caseRecord).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating case")
	}
	return c.JSON(http.StatusOK, caseRecord)
}

// UpdateCaseStatusHandler advances a case along the foreclosure lifecycle.
// Transitions are forward-only; stages may be skipped but never revisited.
func UpdateCaseStatusHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", c.Param("id")).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	status := c.FormValue("status")
	if !models.IsValidCaseStatus(status) {
		return c.String(http.StatusBadRequest, "Invalid status")
	}
	if !caseRecord.CanTransitionTo(status) {
		return c.String(http.StatusBadRequest, "Case status can only move forward in the lifecycle")
	}

	now := time.Now()
	caseRecord.Status = status
	caseRecord.StatusChangedAt = &now
	caseRecord.StatusChangedBy = &user.ID
	if status == models.CaseStatusClosed {
		caseRecord.ClosedAt = &now
	}

	if err := db.DB.Save(&caseRecord).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating status")
	}
	return c.JSON(http.StatusOK, caseRecord)
}

// DeleteCaseHandler soft deletes a case
func DeleteCaseHandler(c echo.Context) error {
	result := middleware.GetFirmScopedQuery(c, db.DB).Delete(&models.Case{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		return c.String(http.StatusInternalServerError, "Error deleting case")
	}
	if result.RowsAffected == 0 {
		return c.String(http.StatusNotFound, "Case not found")
	}
	return c.NoContent(http.StatusNoContent)
}
