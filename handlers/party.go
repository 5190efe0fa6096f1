package handlers

import (
	"net/http"

	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"

	"github.com/labstack/echo/v4"
)

// GetPartiesHandler returns the firm's parties
func GetPartiesHandler(c echo.Context) error {
	search := c.QueryParam("search")

	query := middleware.GetFirmScopedQuery(c, db.DB).Model(&models.Party{}).Order("name ASC")
	if search != "" {
		likeSearch := "%" + search + "%"
		query = query.Where("name LIKE ? OR party_type LIKE ?", likeSearch, likeSearch)
	}

	var parties []models.Party
	if err := query.Find(&parties).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching parties")
	}
	return c.JSON(http.StatusOK, parties)
}

// CreatePartyHandler creates a party independent of any case
func CreatePartyHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	name := c.FormValue("name")
	partyType := c.FormValue("party_type")
	if name == "" || partyType == "" {
		return c.String(http.StatusBadRequest, "Name and party type are required")
	}

	party := models.Party{
		FirmID:    *user.FirmID,
		Name:      name,
		PartyType: partyType,
	}
	if v := c.FormValue("email"); v != "" {
		party.Email = &v
	}
	if v := c.FormValue("phone"); v != "" {
		party.Phone = &v
	}
	if v := c.FormValue("address"); v != "" {
		party.Address = &v
	}

	if err := db.DB.Create(&party).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error creating party")
	}
	return c.JSON(http.StatusCreated, party)
}

// UpdatePartyHandler edits a party in place; the change is visible on every
// case the party is attached to
func UpdatePartyHandler(c echo.Context) error {
	var party models.Party
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&party, "id = ?", c.Param("id")).Error; err != nil {
		return c.String(http.StatusNotFound, "Party not found")
	}

	if name := c.FormValue("name"); name != "" {
		party.Name = name
	}
	if partyType := c.FormValue("party_type"); partyType != "" {
		party.PartyType = partyType
	}
	if v, ok := formValueSet(c, "email"); ok {
		party.Email = optional(v)
	}
	if v, ok := formValueSet(c, "phone"); ok {
		party.Phone = optional(v)
	}
	if v, ok := formValueSet(c, "address"); ok {
		party.Address = optional(v)
	}

	if err := db.DB.Save(&party).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error updating party")
	}
	return c.JSON(http.StatusOK, party)
}

// AttachPartyHandler attaches an existing party to a case. The attach is a
// separate write from party creation; if it fails the party remains as an
// unattached firm record and the user retries from the case screen.
func AttachPartyHandler(c echo.Context) error {
	caseID := c.Param("id")
	partyID := c.FormValue("party_id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}
	var party models.Party
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&party, "id = ?", partyID).Error; err != nil {
		return c.String(http.StatusNotFound, "Party not found")
	}

	var count int64
	db.DB.Model(&models.CasePartyLink{}).Where("case_id = ?", caseID).Count(&count)

	link := models.CasePartyLink{
		CaseID:    caseID,
		PartyID:   partyID,
		SortOrder: int(count),
	}
	if err := db.DB.Create(&link).Error; err != nil {
		return c.String(http.StatusConflict, "Party is already attached to this case")
	}
	return c.JSON(http.StatusCreated, link)
}

// DetachPartyHandler removes a party from a case without deleting the party
func DetachPartyHandler(c echo.Context) error {
	caseID := c.Param("id")
	partyID := c.Param("partyId")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	result := db.DB.Where("case_id = ? AND party_id = ?", caseID, partyID).Delete(&models.CasePartyLink{})
	if result.Error != nil {
		return c.String(http.StatusInternalServerError, "Error detaching party")
	}
	if result.RowsAffected == 0 {
		return c.String(http.StatusNotFound, "Party is not attached to this case")
	}
	return c.NoContent(http.StatusNoContent)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
