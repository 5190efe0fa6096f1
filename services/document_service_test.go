package services

import (
	"testing"

	"foreclosure_flow_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDocumentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Firm{}, &models.User{}, &models.Case{}, &models.Property{},
		&models.Mortgage{}, &models.Party{}, &models.CasePartyLink{},
		&models.Deadline{}, &models.DocumentTemplate{}, &models.Document{},
	)
	assert.NoError(t, err)
	return db
}

func seedCase(t *testing.T, db *gorm.DB) (*models.Firm, *models.Case) {
	firm := &models.Firm{Name: "Test Firm"}
	assert.NoError(t, db.Create(firm).Error)

	caseRecord := &models.Case{
		FirmID:     firm.ID,
		FileNumber: "FC-2026-001",
		Status:     models.CaseStatusNew,
	}
	assert.NoError(t, db.Create(caseRecord).Error)
	return firm, caseRecord
}

func TestSaveDraft(t *testing.T) {
	db := setupDocumentTestDB(t)
	firm, caseRecord := seedCase(t, db)

	doc := &models.Document{
		FirmID:  firm.ID,
		CaseID:  caseRecord.ID,
		Title:   "Demand Letter - FC-2026-001",
		Type:    models.DocumentTypeDemandLetter,
		Content: "<p>Dear John Doe,</p>",
	}
	err := SaveDraft(db, doc)
	assert.NoError(t, err)
	assert.Equal(t, models.DocumentStatusDraft, doc.Status)
	assert.NotEmpty(t, doc.ID)
}

func TestSaveDraftDefaultsType(t *testing.T) {
	db := setupDocumentTestDB(t)
	firm, caseRecord := seedCase(t, db)

	doc := &models.Document{FirmID: firm.ID, CaseID: caseRecord.ID, Title: "Untitled"}
	assert.NoError(t, SaveDraft(db, doc))
	assert.Equal(t, models.DocumentTypeOther, doc.Type)
}

func TestSaveDraftRejectsUnknownType(t *testing.T) {
	db := setupDocumentTestDB(t)
	firm, caseRecord := seedCase(t, db)

	doc := &models.Document{FirmID: firm.ID, CaseID: caseRecord.ID, Title: "Bad", Type: "MEMO"}
	err := SaveDraft(db, doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document type")
}

func TestDocumentLifecycle(t *testing.T) {
	db := setupDocumentTestDB(t)
	firm, caseRecord := seedCase(t, db)

	doc := &models.Document{
		FirmID:  firm.ID,
		CaseID:  caseRecord.ID,
		Title:   "Petition",
		Type:    models.DocumentTypePetition,
		Content: "<p>Petition body</p>",
	}
	assert.NoError(t, SaveDraft(db, doc))

	// Draft content can be edited.
	assert.NoError(t, UpdateDraftContent(db, doc, "<p>Amended body</p>"))
	assert.Equal(t, "<p>Amended body</p>", doc.Content)

	// Filing or serving a draft is rejected.
	assert.Error(t, MarkFiled(db, doc))
	assert.Error(t, MarkServed(db, doc))

	// Finalize locks the document.
	assert.NoError(t, FinalizeDocument(db, doc, "user-1"))
	assert.Equal(t, models.DocumentStatusFinalized, doc.Status)
	assert.NotNil(t, doc.FinalizedAt)

	// No edits and no double finalize after that.
	assert.Error(t, UpdateDraftContent(db, doc, "<p>Too late</p>"))
	assert.Error(t, FinalizeDocument(db, doc, "user-1"))

	// Finalized documents can be marked filed.
	assert.NoError(t, MarkFiled(db, doc))
	assert.Equal(t, models.DocumentStatusFiled, doc.Status)

	// Once filed, marking served is no longer allowed; service is recorded
	// from the finalized state.
	assert.Error(t, MarkServed(db, doc))
}

func TestMarkServedFromFinalized(t *testing.T) {
	db := setupDocumentTestDB(t)
	firm, caseRecord := seedCase(t, db)

	doc := &models.Document{
		FirmID: firm.ID, CaseID: caseRecord.ID,
		Title: "Demand Letter", Type: models.DocumentTypeDemandLetter,
	}
	assert.NoError(t, SaveDraft(db, doc))
	assert.NoError(t, FinalizeDocument(db, doc, "user-1"))
	assert.NoError(t, MarkServed(db, doc))
	assert.Equal(t, models.DocumentStatusServed, doc.Status)

	var stored models.Document
	assert.NoError(t, db.First(&stored, "id = ?", doc.ID).Error)
	assert.Equal(t, models.DocumentStatusServed, stored.Status)
	assert.NotNil(t, stored.ServedAt)
}

func TestGetCaseDocumentsOrder(t *testing.T) {
	db := setupDocumentTestDB(t)
	firm, caseRecord := seedCase(t, db)

	for _, title := range []string{"first", "second"} {
		doc := &models.Document{FirmID: firm.ID, CaseID: caseRecord.ID, Title: title}
		assert.NoError(t, SaveDraft(db, doc))
	}

	docs, err := GetCaseDocuments(db, caseRecord.ID)
	assert.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestGetCaseWithRelations(t *testing.T) {
	db := setupDocumentTestDB(t)
	firm, caseRecord := seedCase(t, db)

	property := &models.Property{CaseID: caseRecord.ID, Address: "123 Main St"}
	assert.NoError(t, db.Create(property).Error)
	mortgage := &models.Mortgage{CaseID: caseRecord.ID, RegistrationNumber: "CA1", CurrentBalance: 1000}
	assert.NoError(t, db.Create(mortgage).Error)

	// Attach parties out of sort order to verify ordering on load.
	lender := &models.Party{FirmID: firm.ID, Name: "Acme Bank", PartyType: models.PartyTypeLender}
	borrower := &models.Party{FirmID: firm.ID, Name: "John Doe", PartyType: models.PartyTypeBorrower}
	assert.NoError(t, db.Create(lender).Error)
	assert.NoError(t, db.Create(borrower).Error)
	assert.NoError(t, db.Create(&models.CasePartyLink{CaseID: caseRecord.ID, PartyID: lender.ID, SortOrder: 1}).Error)
	assert.NoError(t, db.Create(&models.CasePartyLink{CaseID: caseRecord.ID, PartyID: borrower.ID, SortOrder: 0}).Error)

	loaded, err := GetCaseWithRelations(db, firm.ID, caseRecord.ID)
	assert.NoError(t, err)
	assert.NotNil(t, loaded.Property)
	assert.NotNil(t, loaded.Mortgage)
	assert.Len(t, loaded.Parties, 2)
	assert.Equal(t, "John Doe", loaded.Parties[0].Party.Name)
	assert.Equal(t, "Acme Bank", loaded.Parties[1].Party.Name)

	// Wrong firm does not see the case.
	_, err = GetCaseWithRelations(db, "other-firm", caseRecord.ID)
	assert.Error(t, err)
}
