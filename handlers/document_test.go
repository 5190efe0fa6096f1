package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"foreclosure_flow_go/models"

	"github.com/stretchr/testify/assert"
)

func TestPreviewDocumentHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	template := &models.DocumentTemplate{
		FirmID:          firm.ID,
		Name:            "Demand Letter",
		Content:         "<p>Dear {borrower.name}, balance {mortgage.balance}. {unknown.token}</p>",
		CreatedByID:     user.ID,
		PageOrientation: models.OrientationPortrait,
		PageSize:        models.PageSizeLetter,
	}
	assert.NoError(t, database.Create(template).Error)

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/:id/preview/:templateId", nil)
	c.SetParamNames("id", "templateId")
	c.SetParamValues(caseRecord.ID, template.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, PreviewDocumentHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Dear John Doe")
	assert.Contains(t, body, "750,000")
	// Unknown tokens survive so template typos stay visible.
	assert.Contains(t, body, "{unknown.token}")
}

func TestGenerateDocumentHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	template := &models.DocumentTemplate{
		FirmID:          firm.ID,
		Name:            "Demand Letter",
		Content:         "<h1>Demand Letter</h1><p>Dear {borrower.name},</p>",
		CreatedByID:     user.ID,
		PageOrientation: models.OrientationPortrait,
		PageSize:        models.PageSizeLetter,
		MarginTop:       72, MarginBottom: 72, MarginLeft: 72, MarginRight: 72,
	}
	assert.NoError(t, database.Create(template).Error)

	form := url.Values{
		"template_id": {template.ID},
		"type":        {models.DocumentTypeDemandLetter},
	}
	_, c, rec := setupForm(http.MethodPost, "/api/cases/:id/documents/generate", form)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, GenerateDocumentHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var doc models.Document
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, models.DocumentStatusDraft, doc.Status)
	assert.Contains(t, doc.Content, "Dear John Doe")
	assert.Equal(t, template.ID, *doc.TemplateID)

	var stored models.Document
	assert.NoError(t, database.First(&stored, "id = ?", doc.ID).Error)
	assert.NotEmpty(t, stored.FilePath)
	assert.NotZero(t, stored.FileSize)
}

func TestDocumentLifecycleHandlers(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	doc := &models.Document{
		FirmID:  firm.ID,
		CaseID:  caseRecord.ID,
		Title:   "Petition",
		Type:    models.DocumentTypePetition,
		Status:  models.DocumentStatusDraft,
		Content: "<p>Petition body</p>",
	}
	assert.NoError(t, database.Create(doc).Error)

	// Filing a draft is rejected.
	_, c, rec := setupEcho(http.MethodPut, "/api/cases/:id/documents/:documentId/filed", nil)
	c.SetParamNames("id", "documentId")
	c.SetParamValues(caseRecord.ID, doc.ID)
	c.Set("user", user)
	c.Set("firm", firm)
	assert.NoError(t, MarkDocumentFiledHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Finalize succeeds from draft.
	_, c, rec = setupEcho(http.MethodPut, "/api/cases/:id/documents/:documentId/finalize", nil)
	c.SetParamNames("id", "documentId")
	c.SetParamValues(caseRecord.ID, doc.ID)
	c.Set("user", user)
	c.Set("firm", firm)
	assert.NoError(t, FinalizeDocumentHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Editing after finalize is rejected.
	form := url.Values{"content": {"<p>Too late</p>"}}
	_, c, rec = setupForm(http.MethodPut, "/api/cases/:id/documents/:documentId", form)
	c.SetParamNames("id", "documentId")
	c.SetParamValues(caseRecord.ID, doc.ID)
	c.Set("user", user)
	c.Set("firm", firm)
	assert.NoError(t, UpdateDraftHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Marking filed now succeeds.
	_, c, rec = setupEcho(http.MethodPut, "/api/cases/:id/documents/:documentId/filed", nil)
	c.SetParamNames("id", "documentId")
	c.SetParamValues(caseRecord.ID, doc.ID)
	c.Set("user", user)
	c.Set("firm", firm)
	assert.NoError(t, MarkDocumentFiledHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.Document
	database.First(&stored, "id = ?", doc.ID)
	assert.Equal(t, models.DocumentStatusFiled, stored.Status)
	assert.NotNil(t, stored.FinalizedAt)
	assert.NotNil(t, stored.FiledAt)
}

func TestSaveDraftHandlerSanitizesContent(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	form := url.Values{
		"title":   {"Notes to file"},
		"content": {`<p>Safe</p><script>alert("x")</script>`},
	}
	_, c, rec := setupForm(http.MethodPost, "/api/cases/:id/documents", form)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, SaveDraftHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var doc models.Document
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc.Content, "<p>Safe</p>")
	assert.NotContains(t, doc.Content, "<script>")
	assert.Equal(t, models.DocumentTypeOther, doc.Type)
}

func TestCaseSummaryPDFHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/:id/summary.pdf", nil)
	c.SetParamNames("id")
	c.SetParamValues(caseRecord.ID)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, CaseSummaryPDFHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, len(rec.Body.Bytes()) > 4)
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}
