package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants (foreclosure lifecycle, in order)
const (
	CaseStatusNew              = "NEW"
	CaseStatusDemandLetterSent = "DEMAND_LETTER_SENT"
	CaseStatusPetitionFiled    = "PETITION_FILED"
	CaseStatusOrderNisiGranted = "ORDER_NISI_GRANTED"
	CaseStatusRedemptionPeriod = "REDEMPTION_PERIOD"
	CaseStatusSaleProcess      = "SALE_PROCESS"
	CaseStatusClosed           = "CLOSED"
)

// caseStatusOrder defines the forward-only progression of a foreclosure file
var caseStatusOrder = []string{
	CaseStatusNew,
	CaseStatusDemandLetterSent,
	CaseStatusPetitionFiled,
	CaseStatusOrderNisiGranted,
	CaseStatusRedemptionPeriod,
	CaseStatusSaleProcess,
	CaseStatusClosed,
}

// Case represents a foreclosure file
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Firm relationship
	FirmID string `gorm:"type:uuid;not null;index:idx_case_firm_status;uniqueIndex:idx_firm_file_number" json:"firm_id"`
	Firm   Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	// Case identification
	FileNumber string  `gorm:"size:100;not null;uniqueIndex:idx_firm_file_number" json:"file_number"`
	Title      *string `json:"title,omitempty"`

	// Status and lifecycle
	Status          string     `gorm:"not null;default:NEW;index:idx_case_firm_status" json:"status"`
	OpenedAt        time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
	StatusChangedBy *string    `gorm:"type:uuid" json:"status_changed_by,omitempty"`

	// Free-text notes
	Notes string `gorm:"type:text" json:"notes"`

	// Court sub-record (optional, filled once a petition is filed)
	CourtFileNumber *string    `gorm:"size:100" json:"court_file_number,omitempty"`
	CourtRegistry   *string    `json:"court_registry,omitempty"`
	HearingDate     *time.Time `json:"hearing_date,omitempty"`
	JudgeName       *string    `json:"judge_name,omitempty"`

	// Assignment
	AssignedToID *string `gorm:"type:uuid" json:"assigned_to_id,omitempty"`
	AssignedTo   *User   `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	// Relationships (exactly one property and one mortgage per case)
	Property  *Property       `gorm:"foreignKey:CaseID" json:"property,omitempty"`
	Mortgage  *Mortgage       `gorm:"foreignKey:CaseID" json:"mortgage,omitempty"`
	Parties   []CasePartyLink `gorm:"foreignKey:CaseID" json:"parties,omitempty"`
	Deadlines []Deadline      `gorm:"foreignKey:CaseID" json:"deadlines,omitempty"`
	Documents []Document      `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}

// BeforeCreate hook to generate UUID and set OpenedAt
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.OpenedAt.IsZero() {
		c.OpenedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsClosed checks if the case is closed
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// StatusRank returns the position of a status in the lifecycle, or -1 if unknown
func StatusRank(status string) int {
	for i, s := range caseStatusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	return StatusRank(status) >= 0
}

// CanTransitionTo reports whether the case may move to the given status.
// The lifecycle is forward-only; skipping intermediate stages is allowed.
func (c *Case) CanTransitionTo(status string) bool {
	target := StatusRank(status)
	if target < 0 {
		return false
	}
	return target > StatusRank(c.Status)
}

// StatusDisplayName returns a human-readable label for a case status
func StatusDisplayName(status string) string {
	switch status {
	case CaseStatusNew:
		return "New"
	case CaseStatusDemandLetterSent:
		return "Demand Letter Sent"
	case CaseStatusPetitionFiled:
		return "Petition Filed"
	case CaseStatusOrderNisiGranted:
		return "Order Nisi Granted"
	case CaseStatusRedemptionPeriod:
		return "Redemption Period"
	case CaseStatusSaleProcess:
		return "Sale Process"
	case CaseStatusClosed:
		return "Closed"
	default:
		return status
	}
}
