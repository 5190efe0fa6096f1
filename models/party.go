package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Canonical party type constants. PartyType is stored as free text so firms
// can use their own labels ("Mortgagee", "Guarantor"); these are the
// canonical values the UI offers and the template resolver recognizes.
const (
	PartyTypeBorrower   = "Borrower"
	PartyTypeLender     = "Lender"
	PartyTypeThirdParty = "ThirdParty"
	PartyTypeLawyer     = "Lawyer"
	PartyTypeClient     = "Client"
)

// Party represents a person or entity involved in one or more cases.
// Parties are created independently and attached to cases via CasePartyLink.
type Party struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirmID string `gorm:"type:uuid;not null;index" json:"firm_id"`
	Firm   Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	Name      string  `gorm:"not null" json:"name"`
	PartyType string  `gorm:"size:50;not null" json:"party_type"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Party) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Party model
func (Party) TableName() string {
	return "parties"
}

// CasePartyLink attaches a Party to a Case. A party may appear on multiple
// cases; SortOrder preserves the order parties were added to a case, which
// the template resolver relies on for first-match alias lookups.
type CasePartyLink struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_case_party" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	PartyID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_case_party" json:"party_id"`
	Party   Party  `gorm:"foreignKey:PartyID" json:"party,omitempty"`

	SortOrder int `gorm:"not null;default:0" json:"sort_order"`
}

// BeforeCreate hook to generate UUID
func (l *CasePartyLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CasePartyLink model
func (CasePartyLink) TableName() string {
	return "case_party_links"
}
