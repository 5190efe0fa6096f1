package services

import (
	"fmt"
	"time"

	"foreclosure_flow_go/models"

	"gorm.io/gorm"
)

// SaveDraft persists substituted content as a Draft document on a case.
// The content snapshot is what was shown in the preview, with placeholders
// already substituted.
func SaveDraft(db *gorm.DB, doc *models.Document) error {
	doc.Status = models.DocumentStatusDraft
	if doc.Type == "" {
		doc.Type = models.DocumentTypeOther
	}
	if !models.IsValidDocumentType(doc.Type) {
		return fmt.Errorf("invalid document type: %s", doc.Type)
	}
	if err := db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// UpdateDraftContent replaces the stored content of a draft. Finalized
// documents are immutable.
func UpdateDraftContent(db *gorm.DB, doc *models.Document, content string) error {
	if !doc.IsDraft() {
		return fmt.Errorf("document %s is %s and can no longer be edited", doc.ID, doc.Status)
	}
	doc.Content = content
	if err := db.Model(doc).Update("content", content).Error; err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	return nil
}

// FinalizeDocument moves a document from Draft to Finalized. The transition
// is one-way and allowed only from Draft.
func FinalizeDocument(db *gorm.DB, doc *models.Document, userID string) error {
	if doc.Status != models.DocumentStatusDraft {
		return fmt.Errorf("cannot finalize document in status %s", doc.Status)
	}
	now := time.Now()
	doc.Status = models.DocumentStatusFinalized
	doc.FinalizedAt = &now
	if err := db.Model(doc).Updates(map[string]interface{}{
		"status":       models.DocumentStatusFinalized,
		"finalized_at": now,
	}).Error; err != nil {
		return fmt.Errorf("failed to finalize document: %w", err)
	}
	return nil
}

// MarkFiled records that a finalized document was filed with the court
func MarkFiled(db *gorm.DB, doc *models.Document) error {
	return advanceFinalized(db, doc, models.DocumentStatusFiled, "filed_at")
}

// MarkServed records that a finalized document was served on a party
func MarkServed(db *gorm.DB, doc *models.Document) error {
	return advanceFinalized(db, doc, models.DocumentStatusServed, "served_at")
}

func advanceFinalized(db *gorm.DB, doc *models.Document, status, timestampColumn string) error {
	if doc.Status != models.DocumentStatusFinalized {
		return fmt.Errorf("cannot mark document %s from status %s", status, doc.Status)
	}
	now := time.Now()
	doc.Status = status
	if err := db.Model(doc).Updates(map[string]interface{}{
		"status":        status,
		timestampColumn: now,
	}).Error; err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	return nil
}

// GetCaseDocuments retrieves all documents for a case, newest first
func GetCaseDocuments(db *gorm.DB, caseID string) ([]models.Document, error) {
	var documents []models.Document
	if err := db.Where("case_id = ?", caseID).
		Preload("Template").
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch case documents: %w", err)
	}
	return documents, nil
}

// GetCaseWithRelations loads a case with everything the template resolver
// needs: property, mortgage, parties in attach order, deadlines, documents.
func GetCaseWithRelations(db *gorm.DB, firmID, caseID string) (*models.Case, error) {
	var caseRecord models.Case
	if err := db.Where("firm_id = ?", firmID).
		Preload("Property").
		Preload("Mortgage").
		Preload("Parties", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Parties.Party").
		Preload("Deadlines", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("date ASC")
		}).
		Preload("AssignedTo").
		First(&caseRecord, "id = ?", caseID).Error; err != nil {
		return nil, fmt.Errorf("case not found: %w", err)
	}
	return &caseRecord, nil
}
