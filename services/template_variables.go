package services

import (
	"strings"
	"time"

	"foreclosure_flow_go/models"
)

// MissingValue is substituted for any token whose source value is absent.
// It is deliberately visible output rather than an empty string, so gaps in
// case data can be spotted in a generated document.
const MissingValue = "N/A"

// VariableCategory represents a group of template variables
type VariableCategory struct {
	Name      string     `json:"name"`
	Variables []Variable `json:"variables"`
}

// Variable represents a single template variable
type Variable struct {
	Key         string `json:"key"`         // e.g., "mortgage.balance"
	Label       string `json:"label"`       // Display name
	Description string `json:"description"` // Help text
	Example     string `json:"example"`     // Example value
}

// GetVariableDictionary returns all well-known template variables organized
// by category, for the template editor's insert-variable picker. Party
// tokens beyond the canonical borrower/lender sets are synthesized from the
// case at resolve time and are not listed here.
func GetVariableDictionary() []VariableCategory {
	return []VariableCategory{
		{
			Name: "Case",
			Variables: []Variable{
				{Key: "case.file_number", Label: "File Number", Example: "FC-2026-014"},
				{Key: "case.title", Label: "Case Title", Example: "Acme Bank v. Doe"},
				{Key: "case.status", Label: "Case Status", Example: "Petition Filed"},
				{Key: "case.opened_date", Label: "Opened Date", Example: "January 15, 2026"},
				{Key: "case.notes", Label: "Case Notes", Example: "Borrower requested payout figures."},
			},
		},
		{
			Name: "Property",
			Variables: []Variable{
				{Key: "property.address", Label: "Property Address", Example: "123 Main St, Springfield"},
				{Key: "property.legal_description", Label: "Legal Description", Example: "Lot 4, Block 2, Plan 8812"},
				{Key: "property.parcel_identifier", Label: "Parcel Identifier", Example: "014-223-677"},
				{Key: "property.assessed_value", Label: "Assessed Value", Example: "$485,000"},
			},
		},
		{
			Name: "Mortgage",
			Variables: []Variable{
				{Key: "mortgage.registration_number", Label: "Registration Number", Example: "CA1234567"},
				{Key: "mortgage.principal", Label: "Original Principal", Example: "820,000"},
				{Key: "mortgage.interest_rate", Label: "Interest Rate", Example: "5.25%"},
				{Key: "mortgage.start_date", Label: "Start Date", Example: "March 1, 2021"},
				{Key: "mortgage.balance", Label: "Current Balance", Example: "750,000"},
				{Key: "mortgage.per_diem", Label: "Per Diem Interest", Example: "76.71"},
				{Key: "mortgage.arrears", Label: "Arrears", Example: "18,400"},
				{Key: "mortgage.payment_amount", Label: "Payment Amount", Example: "3,120"},
				{Key: "mortgage.payment_frequency", Label: "Payment Frequency", Example: "MONTHLY"},
				{Key: "mortgage.accrued_interest", Label: "Accrued Interest", Example: "28,100.33"},
			},
		},
		{
			Name: "Court",
			Variables: []Variable{
				{Key: "court.file_number", Label: "Court File Number", Example: "S-229914"},
				{Key: "court.registry", Label: "Registry", Example: "Vancouver"},
				{Key: "court.hearing_date", Label: "Hearing Date", Example: "June 3, 2026"},
				{Key: "court.judge", Label: "Judge", Example: "Justice Morrison"},
			},
		},
		{
			Name: "Parties",
			Variables: []Variable{
				{Key: "borrower.name", Label: "Borrower Name", Example: "John Doe"},
				{Key: "borrower.email", Label: "Borrower Email", Example: "john@example.com"},
				{Key: "borrower.phone", Label: "Borrower Phone", Example: "+1 555-123-4567"},
				{Key: "borrower.address", Label: "Borrower Address", Example: "123 Main St"},
				{Key: "lender.name", Label: "Lender Name", Example: "Acme Bank"},
				{Key: "lender.email", Label: "Lender Email", Example: "recovery@acmebank.com"},
				{Key: "lender.phone", Label: "Lender Phone", Example: "+1 555-987-6543"},
				{Key: "lender.address", Label: "Lender Address", Example: "900 Bank Tower"},
			},
		},
		{
			Name: "Dates",
			Variables: []Variable{
				{Key: "date", Label: "Today's Date", Example: "January 19, 2026"},
			},
		},
	}
}

// ResolveVariables builds the flat token-to-value mapping for a case. Every
// key includes its surrounding braces, ready for literal substitution. The
// case record is read only; no I/O is performed.
func ResolveVariables(caseRecord *models.Case, f Formatter) map[string]string {
	return resolveVariablesAt(caseRecord, f, time.Now())
}

func resolveVariablesAt(caseRecord *models.Case, f Formatter, now time.Time) map[string]string {
	vars := map[string]string{
		"{date}": f.LongDate(now),
	}

	vars["{case.file_number}"] = orMissing(caseRecord.FileNumber)
	vars["{case.title}"] = orMissingPtr(caseRecord.Title)
	vars["{case.status}"] = models.StatusDisplayName(caseRecord.Status)
	vars["{case.notes}"] = orMissing(caseRecord.Notes)
	if caseRecord.OpenedAt.IsZero() {
		vars["{case.opened_date}"] = MissingValue
	} else {
		vars["{case.opened_date}"] = f.LongDate(caseRecord.OpenedAt)
	}

	resolveProperty(vars, caseRecord.Property, f)
	resolveMortgage(vars, caseRecord.Mortgage, f, now)
	resolveCourt(vars, caseRecord, f)
	resolveParties(vars, caseRecord.Parties)

	return vars
}

func resolveProperty(vars map[string]string, p *models.Property, f Formatter) {
	if p == nil {
		vars["{property.address}"] = MissingValue
		vars["{property.legal_description}"] = MissingValue
		vars["{property.parcel_identifier}"] = MissingValue
		vars["{property.assessed_value}"] = MissingValue
		return
	}

	address := p.Address
	if p.City != "" {
		address = p.Address + ", " + p.City
	}
	vars["{property.address}"] = orMissing(address)
	vars["{property.legal_description}"] = orMissingPtr(p.LegalDescription)
	vars["{property.parcel_identifier}"] = orMissingPtr(p.ParcelIdentifier)
	if p.AssessedValue != nil {
		vars["{property.assessed_value}"] = f.Currency(*p.AssessedValue)
	} else {
		vars["{property.assessed_value}"] = MissingValue
	}
}

func resolveMortgage(vars map[string]string, m *models.Mortgage, f Formatter, now time.Time) {
	keys := []string{
		"{mortgage.registration_number}", "{mortgage.principal}",
		"{mortgage.interest_rate}", "{mortgage.start_date}",
		"{mortgage.balance}", "{mortgage.per_diem}", "{mortgage.arrears}",
		"{mortgage.payment_amount}", "{mortgage.payment_frequency}",
		"{mortgage.accrued_interest}",
	}
	for _, k := range keys {
		vars[k] = MissingValue
	}
	if m == nil {
		return
	}

	vars["{mortgage.registration_number}"] = orMissing(m.RegistrationNumber)
	vars["{mortgage.principal}"] = f.Amount(m.Principal)
	vars["{mortgage.interest_rate}"] = f.Percent(m.InterestRate)
	if !m.StartDate.IsZero() {
		vars["{mortgage.start_date}"] = f.LongDate(m.StartDate)
	}
	vars["{mortgage.balance}"] = f.Amount(m.CurrentBalance)
	vars["{mortgage.per_diem}"] = f.Amount(m.PerDiemInterest)
	if m.Arrears != nil {
		vars["{mortgage.arrears}"] = f.Amount(*m.Arrears)
	}
	if m.PaymentAmount != nil {
		vars["{mortgage.payment_amount}"] = f.Amount(*m.PaymentAmount)
	}
	vars["{mortgage.payment_frequency}"] = orMissingPtr(m.PaymentFrequency)
	if !m.StartDate.IsZero() {
		// Accrued interest is daysSinceStart x perDiem. This ignores any
		// payments or principal reductions since the start date; it is a
		// payout approximation carried over from firm practice.
		vars["{mortgage.accrued_interest}"] = f.Amount(m.AccruedInterest(now))
	}
}

func resolveCourt(vars map[string]string, c *models.Case, f Formatter) {
	vars["{court.file_number}"] = orMissingPtr(c.CourtFileNumber)
	vars["{court.registry}"] = orMissingPtr(c.CourtRegistry)
	vars["{court.judge}"] = orMissingPtr(c.JudgeName)
	if c.HearingDate != nil {
		vars["{court.hearing_date}"] = f.LongDate(*c.HearingDate)
	} else {
		vars["{court.hearing_date}"] = MissingValue
	}
}

// resolveParties synthesizes one token set per distinct party type present
// on the case, keyed by the lowercased type label, then fills the canonical
// lender/borrower sets by alias when no party carries those exact types.
func resolveParties(vars map[string]string, links []models.CasePartyLink) {
	seen := map[string]bool{}
	for _, link := range links {
		key := strings.ToLower(link.Party.PartyType)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		bindParty(vars, key, &link.Party)
	}

	if !seen[strings.ToLower(models.PartyTypeLender)] {
		if p := findPartyByTypeSubstring(links, "lender", "mortgagee"); p != nil {
			bindParty(vars, "lender", p)
		}
	}
	if !seen[strings.ToLower(models.PartyTypeBorrower)] {
		if p := findPartyByTypeSubstring(links, "borrower", "mortgagor"); p != nil {
			bindParty(vars, "borrower", p)
		}
	}
}

// findPartyByTypeSubstring returns the first party whose type label contains
// any of the given fragments, case-insensitively. With multiple qualifying
// parties the first in case order wins.
func findPartyByTypeSubstring(links []models.CasePartyLink, fragments ...string) *models.Party {
	for i := range links {
		label := strings.ToLower(links[i].Party.PartyType)
		for _, fragment := range fragments {
			if strings.Contains(label, fragment) {
				return &links[i].Party
			}
		}
	}
	return nil
}

func bindParty(vars map[string]string, key string, p *models.Party) {
	vars["{"+key+".name}"] = orMissing(p.Name)
	vars["{"+key+".email}"] = orMissingPtr(p.Email)
	vars["{"+key+".phone}"] = orMissingPtr(p.Phone)
	vars["{"+key+".address}"] = orMissingPtr(p.Address)
}

func orMissing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}

func orMissingPtr(s *string) string {
	if s == nil || *s == "" {
		return MissingValue
	}
	return *s
}
