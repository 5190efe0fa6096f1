package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deadline type constants
const (
	DeadlineTypeStatutory = "STATUTORY"
	DeadlineTypeCourt     = "COURT"
	DeadlineTypeInternal  = "INTERNAL"
	DeadlineTypeClient    = "CLIENT"
)

// Deadline represents a dated obligation on a case. Deadlines are created by
// staff and toggled complete; they are never rescheduled automatically.
type Deadline struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirmID string `gorm:"type:uuid;not null;index" json:"firm_id"`
	Firm   Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	Title       string    `gorm:"not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Type        string    `gorm:"size:20;not null;default:INTERNAL" json:"type"`

	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy *string    `gorm:"type:uuid" json:"completed_by,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *Deadline) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Deadline model
func (Deadline) TableName() string {
	return "deadlines"
}

// IsValidDeadlineType checks if the deadline type is valid
func IsValidDeadlineType(t string) bool {
	switch t {
	case DeadlineTypeStatutory, DeadlineTypeCourt, DeadlineTypeInternal, DeadlineTypeClient:
		return true
	}
	return false
}

// IsOverdue reports whether the deadline has passed without completion
func (d *Deadline) IsOverdue(now time.Time) bool {
	return !d.Completed && d.Date.Before(now)
}
