package handlers

import (
	"net/http"
	"time"

	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"

	"github.com/labstack/echo/v4"
)

// UpdateMortgageHandler edits the mortgage attached to a case. Edits land on
// the existing record; generated documents keep the values they were
// substituted with.
func UpdateMortgageHandler(c echo.Context) error {
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	var mortgage models.Mortgage
	if err := db.DB.First(&mortgage, "case_id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Mortgage not found")
	}

	if v := c.FormValue("registration_number"); v != "" {
		mortgage.RegistrationNumber = v
	}
	if v, ok := formValueSet(c, "principal"); ok && v != "" {
		mortgage.Principal = parseFloatForm(c, "principal")
	}
	if v, ok := formValueSet(c, "interest_rate"); ok && v != "" {
		mortgage.InterestRate = parseFloatForm(c, "interest_rate")
	}
	if v, ok := formValueSet(c, "current_balance"); ok && v != "" {
		mortgage.CurrentBalance = parseFloatForm(c, "current_balance")
	}
	if v, ok := formValueSet(c, "arrears"); ok && v != "" {
		arrears := parseFloatForm(c, "arrears")
		mortgage.Arrears = &arrears
	}
	if v, ok := formValueSet(c, "per_diem_interest"); ok && v != "" {
		mortgage.PerDiemInterest = parseFloatForm(c, "per_diem_interest")
	}
	if v, ok := formValueSet(c, "payment_amount"); ok && v != "" {
		amount := parseFloatForm(c, "payment_amount")
		mortgage.PaymentAmount = &amount
	}
	if v := c.FormValue("payment_frequency"); v != "" {
		if !models.IsValidPaymentFrequency(v) {
			return c.String(http.StatusBadRequest, "Invalid payment frequency")
		}
		mortgage.PaymentFrequency = &v
	}
	if v := c.FormValue("start_date"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid start date")
		}
		mortgage.StartDate = start
	}

	if err := db.DB.Save(&mortgage).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating mortgage")
	}
	return c.JSON(http.StatusOK, mortgage)
}

// UpdatePropertyHandler edits the property attached to a case
func UpdatePropertyHandler(c echo.Context) error {
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	var property models.Property
	if err := db.DB.First(&property, "case_id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Property not found")
	}

	if v := c.FormValue("address"); v != "" {
		property.Address = v
	}
	if v, ok := formValueSet(c, "city"); ok {
		property.City = v
	}
	if v, ok := formValueSet(c, "legal_description"); ok {
		property.LegalDescription = optional(v)
	}
	if v, ok := formValueSet(c, "parcel_identifier"); ok {
		property.ParcelIdentifier = optional(v)
	}
	if v, ok := formValueSet(c, "assessed_value"); ok && v != "" {
		assessed := parseFloatForm(c, "assessed_value")
		property.AssessedValue = &assessed
	}

	if err := db.DB.Save(&property).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating property")
	}
	return c.JSON(http.StatusOK, property)
}
