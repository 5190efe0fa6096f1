package handlers

import (
	"net/http"

	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/services"

	"github.com/labstack/echo/v4"
)

// DownloadImportTemplateHandler serves the Excel template for bulk case import
func DownloadImportTemplateHandler(c echo.Context) error {
	buf, err := services.GenerateImportTemplate()
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error generating template")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="case-import-template.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportCasesHandler creates cases in bulk from an uploaded Excel file.
// Rows are independent; a failed row is reported without blocking the rest.
func ImportCasesHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.String(http.StatusBadRequest, "No file uploaded")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.String(http.StatusBadRequest, "Unable to read uploaded file")
	}
	defer file.Close()

	result, err := services.BulkCreateFromExcel(db.DB, *user.FirmID, file)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
