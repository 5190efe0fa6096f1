package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestExportCasesCSVHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	_, c, rec := setupEcho(http.MethodGet, "/api/reports/cases.csv", nil)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, ExportCasesCSVHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, services.CaseReportHeaders, records[0])
	assert.Equal(t, caseRecord.FileNumber, records[1][0])
	assert.Equal(t, "750,000", records[1][7])
}

func TestExportDeadlinesCSVHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	caseRecord := seedFullCase(t, database, firm)

	assert.NoError(t, database.Create(&models.Deadline{
		FirmID: firm.ID,
		CaseID: caseRecord.ID,
		Title:  "Serve demand letter",
		Type:   models.DeadlineTypeStatutory,
		Date:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}).Error)

	_, c, rec := setupEcho(http.MethodGet, "/api/reports/deadlines.csv", nil)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, ExportDeadlinesCSVHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, services.DeadlineReportHeaders, records[0])
	assert.Equal(t, "Serve demand letter", records[1][1])
	assert.Equal(t, "no", records[1][4])
}

func TestExportCasesXLSXHandler(t *testing.T) {
	database := setupTestDB(t)
	firm, user := seedFirmAndUser(t, database)
	seedFullCase(t, database, firm)

	_, c, rec := setupEcho(http.MethodGet, "/api/reports/cases.xlsx", nil)
	c.Set("user", user)
	c.Set("firm", firm)

	assert.NoError(t, ExportCasesXLSXHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, rec.Body.Len())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")
}
