package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestCreateTemplateHandlerSanitizes(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)

	form := url.Values{
		"name":    {"Demand Letter"},
		"content": {`<p>Dear {borrower.name}</p><script>alert("x")</script><b onclick="evil()">now</b>`},
	}
	_, c, rec := setupForm(http.MethodPost, "/api/templates", form)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, CreateTemplateHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var template models.DocumentTemplate
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &template))
	assert.Contains(t, template.Content, "{borrower.name}")
	assert.Contains(t, template.Content, "<b>now</b>")
	assert.NotContains(t, template.Content, "script")
	assert.NotContains(t, template.Content, "onclick")
	assert.Equal(t, 1, template.Version)
	assert.Equal(t, models.PageSizeLetter, template.PageSize)
}

func TestUpdateTemplateHandlerBumpsVersion(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)

	template := &models.DocumentTemplate{
		FirmID:          firm.ID,
		Name:            "Petition",
		Content:         "<p>v1</p>",
		Version:         1,
		IsActive:        true,
		CreatedByID:     user.ID,
		PageOrientation: models.OrientationPortrait,
		PageSize:        models.PageSizeLetter,
	}
	assert.NoError(t, database.Create(template).Error)

	form := url.Values{"content": {"<p>v2</p>"}}
	_, c, rec := setupForm(http.MethodPut, "/api/templates/:id", form)
	c.SetParamNames("id")
	c.SetParamValues(template.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, UpdateTemplateHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.DocumentTemplate
	assert.NoError(t, database.First(&updated, "id = ?", template.ID).Error)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "<p>v2</p>", updated.Content)

	// Unchanged content does not bump the version.
	form = url.Values{"content": {"<p>v2</p>"}}
	_, c, _ = setupForm(http.MethodPut, "/api/templates/:id", form)
	c.SetParamNames("id")
	c.SetParamValues(template.ID)
	c.Set("user", user)
	c.Set("firm", firm)
	assert.NoError(t, UpdateTemplateHandler(c))

	assert.NoError(t, database.First(&updated, "id = ?", template.ID).Error)
	assert.Equal(t, 2, updated.Version)
}

func TestUpdateTemplateHandlerValidatesPageSettings(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)

	template := &models.DocumentTemplate{
		FirmID: firm.ID, Name: "Order", Content: "<p>x</p>",
		Version: 1, CreatedByID: user.ID,
		PageOrientation: models.OrientationPortrait, PageSize: models.PageSizeLetter,
	}
	assert.NoError(t, database.Create(template).Error)

	form := url.Values{"page_size": {"tabloid"}}
	_, c, _ := setupForm(http.MethodPut, "/api/templates/:id", form)
	c.SetParamNames("id")
	c.SetParamValues(template.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	err := UpdateTemplateHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetVariableDictionaryHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/api/templates/variables", nil)

	assert.NoError(t, GetVariableDictionaryHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var categories []services.VariableCategory
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.NotEmpty(t, categories)
}
