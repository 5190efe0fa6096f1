package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property represents the real property secured by the mortgage under foreclosure.
// Each case has exactly one property.
type Property struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID string `gorm:"type:uuid;not null;uniqueIndex" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	Address          string  `gorm:"not null" json:"address"`
	City             string  `json:"city"`
	LegalDescription *string `gorm:"type:text" json:"legal_description,omitempty"`
	ParcelIdentifier *string `gorm:"size:100" json:"parcel_identifier,omitempty"`
	AssessedValue    *float64 `json:"assessed_value,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Property model
func (Property) TableName() string {
	return "properties"
}
