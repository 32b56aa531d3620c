package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"credit-conveyor/internal/domain/client"
)

// Loan request minimums checked before a statement is created.
const (
	MinAmount = 20000
	MinTerm   = 6
)

// LoanRequest carries the prescoring fields an applicant submits to get
// offers. Immutable once submitted.
type LoanRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Term           int             `json:"term"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	MiddleName     string          `json:"middle_name,omitempty"`
	Email          string          `json:"email"`
	BirthDate      time.Time       `json:"birth_date"`
	PassportSeries string          `json:"passport_series"`
	PassportNumber string          `json:"passport_number"`
}

// ScoringData is the full risk profile assembled from the statement, the
// stored client and the finish-registration form. It is only ever used to
// gate eligibility and compute the rate adjustment.
type ScoringData struct {
	Amount              decimal.Decimal      `json:"amount"`
	Term                int                  `json:"term"`
	FirstName           string               `json:"first_name"`
	LastName            string               `json:"last_name"`
	MiddleName          string               `json:"middle_name,omitempty"`
	Gender              client.Gender        `json:"gender"`
	BirthDate           time.Time            `json:"birth_date"`
	PassportSeries      string               `json:"passport_series"`
	PassportNumber      string               `json:"passport_number"`
	PassportIssueDate   time.Time            `json:"passport_issue_date"`
	PassportIssueBranch string               `json:"passport_issue_branch"`
	MaritalStatus       client.MaritalStatus `json:"marital_status"`
	DependentAmount     int                  `json:"dependent_amount"`
	Employment          client.Employment    `json:"employment"`
	AccountNumber       string               `json:"account_number"`
	InsuranceEnabled    bool                 `json:"is_insurance_enabled"`
	SalaryClient        bool                 `json:"is_salary_client"`
}

// DeniedError is the single taxonomy for every credit denial: a failed
// eligibility check, a missing position, or an SES verification failure
// translated by the caller. Terminal for the statement.
type DeniedError struct{ Reason string }

func (e *DeniedError) Error() string { return "credit denied: " + e.Reason }
