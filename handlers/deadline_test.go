package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"foreclosure_flow_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateDeadlineHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	form := url.Values{
		"title": {"File petition"},
		"date":  {"2026-04-15"},
		"type":  {models.DeadlineTypeCourt},
	}
	_, c, rec := setupForm(http.MethodPost, "/api/cases/:id/deadlines", form)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, CreateDeadlineHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var deadline models.Deadline
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deadline))
	assert.Equal(t, firm.ID, deadline.FirmID)
	assert.Equal(t, models.DeadlineTypeCourt, deadline.Type)
	assert.False(t, deadline.Completed)

	// Omitting the type falls back to an internal deadline.
	form = url.Values{"title": {"Call client"}, "date": {"2026-04-20"}}
	_, c, rec = setupForm(http.MethodPost, "/api/cases/:id/deadlines", form)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, CreateDeadlineHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deadline))
	assert.Equal(t, models.DeadlineTypeInternal, deadline.Type)
}

func TestToggleDeadlineHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	deadline := &models.Deadline{
		FirmID: firm.ID,
		CaseID: caseRecord.ID,
		Title:  "Serve demand letter",
		Type:   models.DeadlineTypeStatutory,
		Date:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, database.Create(deadline).Error)

	toggle := func() *models.Deadline {
		_, c, rec := setupEcho(http.MethodPut, "/api/cases/:id/deadlines/:deadlineId/toggle", nil)
		c.SetParamNames("id", "deadlineId")
		c.SetParamValues(caseRecord.ID, deadline.ID)
		c.Set("user", user)
		c.Set("firm", firm)
		assert.NoError(t, ToggleDeadlineHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var out models.Deadline
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return &out
	}

	done := toggle()
	assert.True(t, done.Completed)
	assert.NotNil(t, done.CompletedAt)
	assert.Equal(t, user.ID, *done.CompletedBy)

	undone := toggle()
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)
	assert.Nil(t, undone.CompletedBy)
}

func TestGetCaseDeadlinesHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	for i, title := range []string{"Later", "Sooner"} {
		assert.NoError(t, database.Create(&models.Deadline{
			FirmID: firm.ID,
			CaseID: caseRecord.ID,
			Title:  title,
			Type:   models.DeadlineTypeInternal,
			Date:   time.Date(2026, time.May, 20-i*10, 0, 0, 0, 0, time.UTC),
		}).Error)
	}

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/:id/deadlines", nil)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, GetCaseDeadlinesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var deadlines []models.Deadline
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deadlines))
	assert.Len(t, deadlines, 2)
	assert.Equal(t, "Sooner", deadlines[0].Title)

	// HTMX requests get the rendered list instead of JSON.
	_, c, rec = setupEcho(http.MethodGet, "/api/cases/:id/deadlines", nil)
	c.Request().Header.Set("HX-Request", "true")
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, GetCaseDeadlinesHandler(c))
	assert.Contains(t, rec.Body.String(), "<ul class=\"deadlines-list\">")
	assert.Contains(t, rec.Body.String(), "Sooner")
}

func TestDeleteDeadlineHandlerScopedToCase(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)
	otherCase := seedFullCase(t, database, firm)

	deadline := &models.Deadline{
		FirmID: firm.ID,
		CaseID: caseRecord.ID,
		Title:  "Hearing",
		Type:   models.DeadlineTypeCourt,
		Date:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, database.Create(deadline).Error)

	// Deleting through the wrong case 404s and leaves the deadline alone.
	_, c, _ := setupEcho(http.MethodDelete, "/api/cases/:id/deadlines/:deadlineId", nil)
	c.SetParamNames("id", "deadlineId")
	c.SetParamValues(otherCase.ID, deadline.ID)
	c.Set("user", user)
	c.Set("firm", firm)
	assert.Error(t, DeleteDeadlineHandler(c))

	var count int64
	database.Model(&models.Deadline{}).Where("id = ?", deadline.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/:id/deadlines/:deadlineId", nil)
	c.SetParamNames("id", "deadlineId")
	c.SetParamValues(caseRecord.ID, deadline.ID)
	c.Set("user", user)
	c.Set("firm", firm)
	assert.NoError(t, DeleteDeadlineHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	database.Model(&models.Deadline{}).Where("id = ?", deadline.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
