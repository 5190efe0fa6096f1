package services

import (
	"bytes"
	"fmt"

	"foreclosure_flow_go/models"

	"github.com/xuri/excelize/v2"
)

// CaseReportHeaders is the column set shared by the CSV and XLSX case reports
var CaseReportHeaders = []string{
	"File Number", "Title", "Status", "Opened At", "Closed At",
	"Property Address", "Mortgage Reg. No.", "Current Balance", "Arrears",
	"Assigned To", "Notes",
}

// CaseReportRow flattens a case into report columns. The case should be
// loaded with its property, mortgage and assignee.
func CaseReportRow(c *models.Case, f Formatter) []string {
	row := make([]string, len(CaseReportHeaders))
	row[0] = c.FileNumber
	if c.Title != nil {
		row[1] = *c.Title
	}
	row[2] = models.StatusDisplayName(c.Status)
	row[3] = c.OpenedAt.Format("2006-01-02")
	if c.ClosedAt != nil {
		row[4] = c.ClosedAt.Format("2006-01-02")
	}
	if c.Property != nil {
		row[5] = c.Property.Address
	}
	if c.Mortgage != nil {
		row[6] = c.Mortgage.RegistrationNumber
		row[7] = f.Amount(c.Mortgage.CurrentBalance)
		if c.Mortgage.Arrears != nil {
			row[8] = f.Amount(*c.Mortgage.Arrears)
		}
	}
	if c.AssignedTo != nil {
		row[9] = c.AssignedTo.Name
	}
	row[10] = c.Notes
	return row
}

// BuildCasesWorkbook renders cases into an XLSX workbook
func BuildCasesWorkbook(cases []models.Case, f Formatter) (*bytes.Buffer, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := "Cases"
	wb.SetSheetName("Sheet1", sheet)

	headerStyle, _ := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	for i, header := range CaseReportHeaders {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		wb.SetCellValue(sheet, cellName, header)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(CaseReportHeaders), 1)
	wb.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for r := range cases {
		row := CaseReportRow(&cases[r], f)
		for col, value := range row {
			cellName, _ := excelize.CoordinatesToCellName(col+1, r+2)
			wb.SetCellValue(sheet, cellName, value)
		}
	}
	wb.SetColWidth(sheet, "A", "K", 22)

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}

// DeadlineReportHeaders is the column set for the deadlines report
var DeadlineReportHeaders = []string{
	"Case File Number", "Title", "Type", "Date", "Completed", "Description",
}

// DeadlineReportRow flattens a deadline into report columns
func DeadlineReportRow(d *models.Deadline) []string {
	row := make([]string, len(DeadlineReportHeaders))
	row[0] = d.Case.FileNumber
	row[1] = d.Title
	row[2] = d.Type
	row[3] = d.Date.Format("2006-01-02")
	if d.Completed {
		row[4] = "yes"
	} else {
		row[4] = "no"
	}
	if d.Description != nil {
		row[5] = *d.Description
	}
	return row
}
