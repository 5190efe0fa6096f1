package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document status constants (forward-only lifecycle)
const (
	DocumentStatusDraft     = "DRAFT"
	DocumentStatusFinalized = "FINALIZED"
	DocumentStatusFiled     = "FILED"
	DocumentStatusServed    = "SERVED"
)

// Document type constants (legal document kinds)
const (
	DocumentTypeDemandLetter    = "DEMAND_LETTER"
	DocumentTypePetition        = "PETITION"
	DocumentTypeAffidavit       = "AFFIDAVIT"
	DocumentTypeOrderNisi       = "ORDER_NISI"
	DocumentTypeNoticeOfSale    = "NOTICE_OF_SALE"
	DocumentTypePayoutStatement = "PAYOUT_STATEMENT"
	DocumentTypeCorrespondence  = "CORRESPONDENCE"
	DocumentTypeOther           = "OTHER"
)

// Document represents a generated or drafted legal document on a case. The
// stored content is the substituted HTML; PDF bytes are generated on demand
// and, when archived, referenced through FilePath.
type Document struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirmID string `gorm:"type:uuid;not null;index" json:"firm_id"`
	Firm   Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	Title  string `gorm:"not null" json:"title"`
	Type   string `gorm:"size:30;not null;default:OTHER" json:"type"`
	Status string `gorm:"size:20;not null;default:DRAFT" json:"status"`

	// Substituted content (HTML). The source template is referenced for
	// provenance; the content is a snapshot and does not track later
	// template edits.
	Content    string            `gorm:"type:text" json:"content"`
	TemplateID *string           `gorm:"type:uuid" json:"template_id,omitempty"`
	Template   *DocumentTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`

	// Optional generated-PDF location in storage, and external URL for
	// documents that live elsewhere (court e-filing portals).
	FilePath    string  `json:"-"`
	FileSize    int64   `json:"file_size,omitempty"`
	ExternalURL *string `json:"external_url,omitempty"`

	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	FiledAt     *time.Time `json:"filed_at,omitempty"`
	ServedAt    *time.Time `json:"served_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// IsValidDocumentType checks if the document type is valid
func IsValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeDemandLetter, DocumentTypePetition, DocumentTypeAffidavit,
		DocumentTypeOrderNisi, DocumentTypeNoticeOfSale, DocumentTypePayoutStatement,
		DocumentTypeCorrespondence, DocumentTypeOther:
		return true
	}
	return false
}

// IsDraft reports whether the document is still editable
func (d *Document) IsDraft() bool {
	return d.Status == DocumentStatusDraft
}
