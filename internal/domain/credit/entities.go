package credit

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("credit not found")

type Status string

const (
	StatusCalculated Status = "CALCULATED"
	StatusIssued     Status = "ISSUED"
)

// Offer is one priced, non-binding loan quote. Four are generated per
// statement, one for every insurance/payroll-client combination.
type Offer struct {
	StatementID      string          `json:"statement_id"`
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Term             int             `json:"term"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	Rate             decimal.Decimal `json:"rate"`
	InsuranceEnabled bool            `json:"is_insurance_enabled"`
	SalaryClient     bool            `json:"is_salary_client"`
}

// ScheduleEntry is one row of the amortization schedule. The components are
// rounded for presentation; the remaining debt of the last row is zero unless
// rounding left an accepted residual.
type ScheduleEntry struct {
	Number          int             `json:"number"`
	Date            time.Time       `json:"date"`
	TotalPayment    decimal.Decimal `json:"total_payment"`
	InterestPayment decimal.Decimal `json:"interest_payment"`
	DebtPayment     decimal.Decimal `json:"debt_payment"`
	RemainingDebt   decimal.Decimal `json:"remaining_debt"`
}

// Credit holds the finalized loan terms produced by the scoring step.
type Credit struct {
	ID               string          `gorm:"primaryKey;size:36;column:credit_id" json:"credit_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,2)" json:"amount"`
	Term             int             `json:"term"`
	MonthlyPayment   decimal.Decimal `gorm:"type:decimal(20,2)" json:"monthly_payment"`
	Rate             decimal.Decimal `gorm:"type:decimal(10,6)" json:"rate"`
	PSK              decimal.Decimal `gorm:"type:decimal(20,2)" json:"psk"`
	InsuranceEnabled bool            `json:"is_insurance_enabled"`
	SalaryClient     bool            `json:"is_salary_client"`
	Schedule         []ScheduleEntry `gorm:"serializer:json" json:"payment_schedule"`
	Status           Status          `gorm:"size:16;default:'CALCULATED'" json:"credit_status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Credit) TableName() string { return "credits" }
