package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"foreclosure_flow_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndAttachParty(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	// Party creation stands alone.
	form := url.Values{
		"name":       {"Second Lender Corp"},
		"party_type": {"Second Mortgagee"},
		"email":      {"legal@secondlender.com"},
	}
	_, c, rec := setupForm(http.MethodPost, "/api/parties", form)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, CreatePartyHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var party models.Party
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &party))
	assert.Equal(t, firm.ID, party.FirmID)

	// Attaching is a second, separate write.
	form = url.Values{"party_id": {party.ID}}
	_, c, rec = setupForm(http.MethodPost, "/api/cases/:id/parties", form)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, AttachPartyHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var link models.CasePartyLink
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
	// The seeded case already has two parties; the new one goes last.
	assert.Equal(t, 2, link.SortOrder)

	// Attaching the same party twice is rejected by the unique link.
	_, c, rec = setupForm(http.MethodPost, "/api/cases/:id/parties", form)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, AttachPartyHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDetachPartyHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	var link models.CasePartyLink
	assert.NoError(t, database.First(&link, "case_id = ?", caseRecord.ID).Error)

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/:id/parties/:partyId", nil)
	c.SetParamNames("id", "partyId")
	c.SetParamValues(caseRecord.ID, link.PartyID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, DetachPartyHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The party record itself survives the detach.
	var party models.Party
	assert.NoError(t, database.First(&party, "id = ?", link.PartyID).Error)

	var count int64
	database.Model(&models.CasePartyLink{}).
		Where("case_id = ? AND party_id = ?", caseRecord.ID, link.PartyID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdatePartyVisibleAcrossCases(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	first := seedFullCase(t, database, firm)
	second := seedFullCase(t, database, firm)

	// Attach the first case's borrower to the second case too.
	var link models.CasePartyLink
	assert.NoError(t, database.Joins("Party").
		First(&link, "case_party_links.case_id = ? AND Party.party_type = ?", first.ID, models.PartyTypeBorrower).Error)
	assert.NoError(t, database.Create(&models.CasePartyLink{
		CaseID: second.ID, PartyID: link.PartyID, SortOrder: 2,
	}).Error)

	form := url.Values{"name": {"John Q. Doe"}}
	_, c, rec := setupForm(http.MethodPut, "/api/parties/:id", form)
	c.SetParamNames("id")
	c.SetParamValues(link.PartyID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, UpdatePartyHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, caseID := range []string{first.ID, second.ID} {
		var links []models.CasePartyLink
		assert.NoError(t, database.Preload("Party").Find(&links, "case_id = ?", caseID).Error)
		found := false
		for _, l := range links {
			if l.PartyID == link.PartyID {
				found = true
				assert.Equal(t, "John Q. Doe", l.Party.Name)
			}
		}
		assert.True(t, found)
	}
}
