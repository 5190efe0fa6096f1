package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"foreclosure_flow_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Import sheet layout. One row per case; borrower and lender are created as
// parties and attached in order.
var importHeaders = []string{
	"File Number*",        // A
	"Title",               // B
	"Property Address*",   // C
	"Property City",       // D
	"Mortgage Reg. No.*",  // E
	"Principal*",          // F
	"Interest Rate (%)*",  // G
	"Start Date (YYYY-MM-DD)*", // H
	"Current Balance*",    // I
	"Per Diem Interest*",  // J
	"Borrower Name*",      // K
	"Borrower Email",      // L
	"Lender Name*",        // M
	"Lender Email",        // N
	"Notes",               // O
}

// ImportResult contains the summary of the import process
type ImportResult struct {
	TotalProcessed int
	SuccessCount   int
	FailedCount    int
	Errors         []string
}

// GenerateImportTemplate builds the Excel workbook firms fill in for bulk
// case import.
func GenerateImportTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cases"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	for i, header := range importHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(importHeaders), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)
	f.SetColWidth(sheet, "A", "O", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	return &buf, nil
}

// BulkCreateFromExcel imports cases from a filled template. Each row is
// processed independently; a failing row is reported and skipped rather
// than aborting the import.
func BulkCreateFromExcel(dbConn *gorm.DB, firmID string, file io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 { // header
			continue
		}
		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		if err := importCaseRow(dbConn, firmID, row); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

func importCaseRow(dbConn *gorm.DB, firmID string, row []string) error {
	fileNumber := cell(row, 0)
	address := cell(row, 2)
	regNumber := cell(row, 4)
	borrowerName := cell(row, 10)
	lenderName := cell(row, 12)
	if fileNumber == "" || address == "" || regNumber == "" || borrowerName == "" || lenderName == "" {
		return fmt.Errorf("missing required fields")
	}

	principal, err := parseAmount(cell(row, 5))
	if err != nil {
		return fmt.Errorf("invalid principal: %v", err)
	}
	rate, err := parseAmount(cell(row, 6))
	if err != nil {
		return fmt.Errorf("invalid interest rate: %v", err)
	}
	startDate, err := time.Parse("2006-01-02", cell(row, 7))
	if err != nil {
		return fmt.Errorf("invalid start date: %v", err)
	}
	balance, err := parseAmount(cell(row, 8))
	if err != nil {
		return fmt.Errorf("invalid balance: %v", err)
	}
	perDiem, err := parseAmount(cell(row, 9))
	if err != nil {
		return fmt.Errorf("invalid per diem: %v", err)
	}

	return dbConn.Transaction(func(tx *gorm.DB) error {
		caseRecord := models.Case{
			FirmID:     firmID,
			FileNumber: fileNumber,
			Status:     models.CaseStatusNew,
			Notes:      cell(row, 14),
		}
		if title := cell(row, 1); title != "" {
			caseRecord.Title = &title
		}
		if err := tx.Create(&caseRecord).Error; err != nil {
			return fmt.Errorf("failed to create case: %w", err)
		}

		property := models.Property{
			CaseID:  caseRecord.ID,
			Address: address,
			City:    cell(row, 3),
		}
		if err := tx.Create(&property).Error; err != nil {
			return fmt.Errorf("failed to create property: %w", err)
		}

		mortgage := models.Mortgage{
			CaseID:             caseRecord.ID,
			RegistrationNumber: regNumber,
			Principal:          principal,
			InterestRate:       rate,
			StartDate:          startDate,
			CurrentBalance:     balance,
			PerDiemInterest:    perDiem,
		}
		if err := tx.Create(&mortgage).Error; err != nil {
			return fmt.Errorf("failed to create mortgage: %w", err)
		}

		parties := []struct {
			name, email, partyType string
		}{
			{borrowerName, cell(row, 11), models.PartyTypeBorrower},
			{lenderName, cell(row, 13), models.PartyTypeLender},
		}
		for order, p := range parties {
			party := models.Party{
				FirmID:    firmID,
				Name:      p.name,
				PartyType: p.partyType,
			}
			if p.email != "" {
				email := p.email
				party.Email = &email
			}
			if err := tx.Create(&party).Error; err != nil {
				return fmt.Errorf("failed to create party %s: %w", p.name, err)
			}
			link := models.CasePartyLink{
				CaseID:    caseRecord.ID,
				PartyID:   party.ID,
				SortOrder: order,
			}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to attach party %s: %w", p.name, err)
			}
		}

		return nil
	})
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "$")
	return strconv.ParseFloat(s, 64)
}
