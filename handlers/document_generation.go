package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"foreclosure_flow_go/config"
	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"
	"foreclosure_flow_go/templates/partials"

	"github.com/labstack/echo/v4"
)

func firmFormatter(c echo.Context) services.Formatter {
	if firm := middleware.GetCurrentFirm(c); firm != nil {
		return services.NewFormatter(firm.Locale, firm.CurrencySymbol)
	}
	return services.DefaultFormatter()
}

func pdfConfig(c echo.Context) (engine, chromePath string) {
	engine = services.PDFEngineNative
	if cfg, ok := c.Get("config").(*config.Config); ok {
		if cfg.PDFEngine != "" {
			engine = cfg.PDFEngine
		}
		chromePath = cfg.ChromePath
	}
	return engine, chromePath
}

func templateOptions(t *models.DocumentTemplate) services.PDFOptions {
	return services.PDFOptions{
		PageOrientation: t.PageOrientation,
		PageSize:        t.PageSize,
		MarginTop:       t.MarginTop,
		MarginBottom:    t.MarginBottom,
		MarginLeft:      t.MarginLeft,
		MarginRight:     t.MarginRight,
	}
}

// PreviewDocumentHandler substitutes a template against a case and renders
// the result as an HTML fragment. Unknown tokens stay verbatim so authors can
// spot typos; missing data shows as N/A.
func PreviewDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	caseRecord, err := services.GetCaseWithRelations(db.DB, *user.FirmID, c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	var template models.DocumentTemplate
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&template, "id = ?", c.Param("templateId")).Error; err != nil {
		return c.String(http.StatusNotFound, "Template not found")
	}

	vars := services.ResolveVariables(caseRecord, firmFormatter(c))
	content := services.Substitute(template.Content, vars)

	return partials.TemplatePreview(content).Render(c.Request().Context(), c.Response().Writer)
}

// GenerateDocumentHandler substitutes a template, renders it to PDF, stores
// the PDF, and records a draft document carrying the substituted snapshot.
func GenerateDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID := c.Param("id")

	caseRecord, err := services.GetCaseWithRelations(db.DB, *user.FirmID, caseID)
	if err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	templateID := c.FormValue("template_id")
	var template models.DocumentTemplate
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&template, "id = ?", templateID).Error; err != nil {
		return c.String(http.StatusNotFound, "Template not found")
	}

	vars := services.ResolveVariables(caseRecord, firmFormatter(c))
	content := services.Substitute(template.Content, vars)

	engine, chromePath := pdfConfig(c)
	pdfBytes, err := services.GenerateDocumentPDF(content, templateOptions(&template), engine, chromePath)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error generating PDF")
	}

	title := c.FormValue("title")
	if title == "" {
		title = fmt.Sprintf("%s - %s", template.Name, caseRecord.FileNumber)
	}

	doc := models.Document{
		FirmID:      *user.FirmID,
		CaseID:      caseID,
		Title:       title,
		Type:        c.FormValue("type"),
		Content:     content,
		TemplateID:  &template.ID,
		CreatedByID: &user.ID,
	}
	if err := services.SaveDraft(db.DB, &doc); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	fileName := fmt.Sprintf("%s.pdf", doc.ID)
	key := services.GenerateGeneratedDocumentKey(*user.FirmID, caseID, fileName)
	ctx := c.Request().Context()
	if err := services.Storage.UploadReader(ctx, bytes.NewReader(pdfBytes), key, "application/pdf", int64(len(pdfBytes))); err != nil {
		return c.String(http.StatusInternalServerError, "Error storing PDF")
	}
	if err := db.DB.Model(&doc).Updates(map[string]interface{}{
		"file_path": key,
		"file_size": int64(len(pdfBytes)),
	}).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error saving document")
	}

	return c.JSON(http.StatusCreated, doc)
}

// SaveDraftHandler records edited document content as a draft without
// producing a PDF
func SaveDraftHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	title := c.FormValue("title")
	content := c.FormValue("content")
	if title == "" || content == "" {
		return c.String(http.StatusBadRequest, "Title and content are required")
	}

	doc := models.Document{
		FirmID:      *user.FirmID,
		CaseID:      caseID,
		Title:       title,
		Type:        c.FormValue("type"),
		Content:     templatePolicy.Sanitize(content),
		CreatedByID: &user.ID,
	}
	if templateID := c.FormValue("template_id"); templateID != "" {
		doc.TemplateID = &templateID
	}

	if err := services.SaveDraft(db.DB, &doc); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, doc)
}

// UpdateDraftHandler replaces the content of a draft document
func UpdateDraftHandler(c echo.Context) error {
	doc, err := findCaseDocument(c)
	if err != nil {
		return err
	}

	content := c.FormValue("content")
	if content == "" {
		return c.String(http.StatusBadRequest, "Content is required")
	}
	if err := services.UpdateDraftContent(db.DB, doc, templatePolicy.Sanitize(content)); err != nil {
		return c.String(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}

// FinalizeDocumentHandler locks a draft; finalized content is immutable
func FinalizeDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	doc, err := findCaseDocument(c)
	if err != nil {
		return err
	}
	if err := services.FinalizeDocument(db.DB, doc, user.ID); err != nil {
		return c.String(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}

// MarkDocumentFiledHandler records court filing of a finalized document
func MarkDocumentFiledHandler(c echo.Context) error {
	doc, err := findCaseDocument(c)
	if err != nil {
		return err
	}
	if err := services.MarkFiled(db.DB, doc); err != nil {
		return c.String(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}

// MarkDocumentServedHandler records service of a finalized document
func MarkDocumentServedHandler(c echo.Context) error {
	doc, err := findCaseDocument(c)
	if err != nil {
		return err
	}
	if err := services.MarkServed(db.DB, doc); err != nil {
		return c.String(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}

// GetCaseDocumentsHandler lists the documents on a case
func GetCaseDocumentsHandler(c echo.Context) error {
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	docs, err := services.GetCaseDocuments(db.DB, caseID)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching documents")
	}

	if c.Request().Header.Get("HX-Request") == "true" {
		return partials.DocumentsTable(docs, caseID).Render(c.Request().Context(), c.Response().Writer)
	}
	return c.JSON(http.StatusOK, docs)
}

// DownloadDocumentHandler streams a document's PDF. Stored PDFs come from
// storage; documents without one are rendered from their content snapshot.
func DownloadDocumentHandler(c echo.Context) error {
	doc, err := findCaseDocument(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if doc.FilePath != "" {
		if url, err := services.Storage.GetSignedURL(ctx, doc.FilePath, 15*time.Minute); err == nil {
			return c.Redirect(http.StatusTemporaryRedirect, url)
		}
		reader, contentType, err := services.Storage.Get(ctx, doc.FilePath)
		if err != nil {
			return c.String(http.StatusNotFound, "Stored file not found")
		}
		defer reader.Close()
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, doc.Title))
		return c.Stream(http.StatusOK, contentType, reader)
	}

	engine, chromePath := pdfConfig(c)
	pdfBytes, err := services.GenerateDocumentPDF(doc.Content, services.DefaultPDFOptions(), engine, chromePath)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error generating PDF")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, doc.Title))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// ServeDocumentEmailHandler emails a finalized document's PDF to a recipient
// and records service
func ServeDocumentEmailHandler(c echo.Context) error {
	doc, err := findCaseDocument(c)
	if err != nil {
		return err
	}

	to := c.FormValue("email")
	if to == "" {
		return c.String(http.StatusBadRequest, "Recipient email is required")
	}

	cfg, ok := c.Get("config").(*config.Config)
	if !ok {
		return c.String(http.StatusInternalServerError, "Server configuration unavailable")
	}

	var caseRecord models.Case
	if err := db.DB.First(&caseRecord, "id = ?", doc.CaseID).Error; err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	var pdfBytes []byte
	ctx := c.Request().Context()
	if doc.FilePath != "" {
		reader, _, err := services.Storage.Get(ctx, doc.FilePath)
		if err != nil {
			return c.String(http.StatusNotFound, "Stored file not found")
		}
		defer reader.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(reader); err != nil {
			return c.String(http.StatusInternalServerError, "Error reading stored file")
		}
		pdfBytes = buf.Bytes()
	} else {
		engine, chromePath := pdfConfig(c)
		pdfBytes, err = services.GenerateDocumentPDF(doc.Content, services.DefaultPDFOptions(), engine, chromePath)
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error generating PDF")
		}
	}

	if err := services.ServeDocumentByEmail(cfg, to, doc.Title, caseRecord.FileNumber, pdfBytes); err != nil {
		return c.String(http.StatusInternalServerError, "Error sending email")
	}
	if err := services.MarkServed(db.DB, doc); err != nil {
		return c.String(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}

// CaseSummaryPDFHandler renders a fixed-layout summary PDF of the case
func CaseSummaryPDFHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	caseRecord, err := services.GetCaseWithRelations(db.DB, *user.FirmID, c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Case not found")
	}

	pdfBytes, err := services.RenderCaseSummaryPDF(caseRecord, firmFormatter(c), services.DefaultPDFOptions())
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error generating PDF")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="case-%s-summary.pdf"`, caseRecord.FileNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func findCaseDocument(c echo.Context) (*models.Document, error) {
	caseID := c.Param("id")

	var caseRecord models.Case
	if err := middleware.GetFirmScopedQuery(c, db.DB).First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}

	var doc models.Document
	if err := db.DB.First(&doc, "id = ? AND case_id = ?", c.Param("documentId"), caseID).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	return &doc, nil
}
