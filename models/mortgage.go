package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment frequency constants
const (
	PaymentFrequencyMonthly     = "MONTHLY"
	PaymentFrequencyBiweekly    = "BIWEEKLY"
	PaymentFrequencySemiMonthly = "SEMI_MONTHLY"
	PaymentFrequencyWeekly      = "WEEKLY"
)

// Mortgage represents the registered mortgage being foreclosed.
// Each case has exactly one mortgage. The registration number is its
// immutable identity; balance and arrears are mutated over the case
// lifecycle as payout figures are updated.
type Mortgage struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID string `gorm:"type:uuid;not null;uniqueIndex" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	RegistrationNumber string    `gorm:"size:100;not null" json:"registration_number"`
	Principal          float64   `gorm:"not null" json:"principal"`
	InterestRate       float64   `gorm:"not null" json:"interest_rate"` // annual, percent
	StartDate          time.Time `gorm:"not null" json:"start_date"`
	CurrentBalance     float64   `gorm:"not null" json:"current_balance"`
	PerDiemInterest    float64   `gorm:"not null" json:"per_diem_interest"`

	Arrears          *float64 `json:"arrears,omitempty"`
	PaymentAmount    *float64 `json:"payment_amount,omitempty"`
	PaymentFrequency *string  `gorm:"size:20" json:"payment_frequency,omitempty"`
}

// BeforeCreate hook to generate UUID
func (m *Mortgage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Mortgage model
func (Mortgage) TableName() string {
	return "mortgages"
}

// IsValidPaymentFrequency checks if the payment frequency is valid
func IsValidPaymentFrequency(f string) bool {
	switch f {
	case PaymentFrequencyMonthly, PaymentFrequencyBiweekly,
		PaymentFrequencySemiMonthly, PaymentFrequencyWeekly:
		return true
	}
	return false
}

// AccruedInterest returns the interest accrued since the mortgage start date
// at the stored per-diem rate. This ignores payments and principal
// reductions between the start date and now; it is a payout approximation,
// not an amortization calculation.
func (m *Mortgage) AccruedInterest(asOf time.Time) float64 {
	days := int(asOf.Sub(m.StartDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return float64(days) * m.PerDiemInterest
}
