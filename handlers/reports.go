package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"foreclosure_flow_go/db"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"

	"github.com/labstack/echo/v4"
)

// ExportCasesCSVHandler streams the firm's cases as a CSV report
func ExportCasesCSVHandler(c echo.Context) error {
	cases, err := reportCases(c)
	if err != nil {
		return err
	}
	f := firmFormatter(c)

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="cases-%s.csv"`, time.Now().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response().Writer)
	if err := w.Write(services.CaseReportHeaders); err != nil {
		return err
	}
	for i := range cases {
		if err := w.Write(services.CaseReportRow(&cases[i], f)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportCasesXLSXHandler streams the firm's cases as an Excel workbook
func ExportCasesXLSXHandler(c echo.Context) error {
	cases, err := reportCases(c)
	if err != nil {
		return err
	}

	buf, err := services.BuildCasesWorkbook(cases, firmFormatter(c))
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error building workbook")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="cases-%s.xlsx"`, time.Now().Format("2006-01-02")))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportDeadlinesCSVHandler streams the firm's deadlines as a CSV report
func ExportDeadlinesCSVHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var deadlines []models.Deadline
	query := db.DB.Model(&models.Deadline{}).
		Where("firm_id = ?", *user.FirmID).
		Preload("Case").
		Order("date ASC")
	if c.QueryParam("pending") == "true" {
		query = query.Where("completed = ?", false)
	}
	if err := query.Find(&deadlines).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching deadlines")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="deadlines-%s.csv"`, time.Now().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response().Writer)
	if err := w.Write(services.DeadlineReportHeaders); err != nil {
		return err
	}
	for i := range deadlines {
		if err := w.Write(services.DeadlineReportRow(&deadlines[i])); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func reportCases(c echo.Context) ([]models.Case, error) {
	query := middleware.GetFirmScopedQuery(c, db.DB).
		Model(&models.Case{}).
		Preload("Property").
		Preload("Mortgage").
		Preload("AssignedTo").
		Order("opened_at DESC")
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var cases []models.Case
	if err := query.Find(&cases).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Error fetching cases")
	}
	return cases, nil
}
