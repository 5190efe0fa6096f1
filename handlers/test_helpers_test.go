package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"foreclosure_flow_go/config"
	"foreclosure_flow_go/db"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests from each other.
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Firm{},
		&models.User{},
		&models.Session{},
		&models.Case{},
		&models.Property{},
		&models.Mortgage{},
		&models.Party{},
		&models.CasePartyLink{},
		&models.Deadline{},
		&models.DocumentTemplate{},
		&models.Document{},
	)
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	// Set global DB
	db.DB = testDB
	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		PDFEngine:     services.PDFEngineNative,
		EmailTestMode: true,
	})

	return e, c, rec
}

func stringToPtr(s string) *string {
	return &s
}

// seedFirmAndUser creates a firm plus an active lawyer bound to it.
func seedFirmAndUser(t *testing.T, database *gorm.DB) (*models.Firm, *models.User) {
	firm := &models.Firm{Name: "Test Firm", CurrencySymbol: "$", Locale: "en"}
	assert.NoError(t, database.Create(firm).Error)

	user := &models.User{
		Name:     "Jane Lawyer",
		Email:    uuid.New().String() + "@test.com",
		Password: "hash",
		FirmID:   &firm.ID,
		Role:     models.RoleLawyer,
		IsActive: true,
	}
	assert.NoError(t, database.Create(user).Error)
	return firm, user
}

func seedFullCase(t *testing.T, database *gorm.DB, firm *models.Firm) *models.Case {
	caseRecord := &models.Case{
		FirmID:     firm.ID,
		FileNumber: "FC-" + uuid.New().String()[:8],
		Status:     models.CaseStatusNew,
	}
	assert.NoError(t, database.Create(caseRecord).Error)
	assert.NoError(t, database.Create(&models.Property{
		CaseID: caseRecord.ID, Address: "123 Main St", City: "Springfield",
	}).Error)
	assert.NoError(t, database.Create(&models.Mortgage{
		CaseID:             caseRecord.ID,
		RegistrationNumber: "CA1234567",
		Principal:          820000,
		InterestRate:       5.25,
		CurrentBalance:     750000,
		PerDiemInterest:    76.71,
	}).Error)

	borrower := &models.Party{FirmID: firm.ID, Name: "John Doe", PartyType: models.PartyTypeBorrower}
	lender := &models.Party{FirmID: firm.ID, Name: "Acme Bank", PartyType: models.PartyTypeLender}
	assert.NoError(t, database.Create(borrower).Error)
	assert.NoError(t, database.Create(lender).Error)
	assert.NoError(t, database.Create(&models.CasePartyLink{CaseID: caseRecord.ID, PartyID: borrower.ID, SortOrder: 0}).Error)
	assert.NoError(t, database.Create(&models.CasePartyLink{CaseID: caseRecord.ID, PartyID: lender.ID, SortOrder: 1}).Error)

	return caseRecord
}
