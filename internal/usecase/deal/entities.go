package deal

import (
	"errors"
	"time"

	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
	"credit-conveyor/internal/domain/statement"
)

// ErrSesMismatch is returned when the caller-supplied signature code does not
// match the persisted one. The statement is denied as a side effect.
var ErrSesMismatch = errors.New("ses codes do not match")

// ErrNoAppliedOffer is returned when scoring is requested for a statement
// whose applicant has not selected an offer yet.
var ErrNoAppliedOffer = errors.New("statement has no applied offer")

// FinishRegistrationInput is the supplementary form that completes the risk
// profile before scoring.
type FinishRegistrationInput struct {
	Gender              client.Gender        `json:"gender"`
	MaritalStatus       client.MaritalStatus `json:"marital_status"`
	DependentAmount     int                  `json:"dependent_amount"`
	PassportIssueDate   time.Time            `json:"passport_issue_date"`
	PassportIssueBranch string               `json:"passport_issue_branch"`
	Employment          client.Employment    `json:"employment"`
	AccountNumber       string               `json:"account_number"`
}

// StatementDTO is the read model returned by the query operations.
type StatementDTO struct {
	StatementID   string                   `json:"statement_id"`
	ClientID      string                   `json:"client_id"`
	CreditID      *string                  `json:"credit_id,omitempty"`
	Status        statement.Status         `json:"status"`
	CreationDate  time.Time                `json:"creation_date"`
	AppliedOffer  *credit.Offer            `json:"applied_offer,omitempty"`
	SignDate      *time.Time               `json:"sign_date,omitempty"`
	SesCode       string                   `json:"ses_code,omitempty"`
	StatusHistory []statement.HistoryEntry `json:"status_history"`
}

// DocumentData is everything the dossier worker needs to render the credit
// documents.
type DocumentData struct {
	Credit     credit.Credit `json:"credit"`
	FirstName  string        `json:"first_name"`
	MiddleName string        `json:"middle_name,omitempty"`
	LastName   string        `json:"last_name"`
	BirthDate  time.Time     `json:"birth_date"`
}

func toDTO(st *statement.Statement) StatementDTO {
	return StatementDTO{
		StatementID:   st.ID,
		ClientID:      st.ClientID,
		CreditID:      st.CreditID,
		Status:        st.Status,
		CreationDate:  st.CreationDate,
		AppliedOffer:  st.AppliedOffer,
		SignDate:      st.SignDate,
		SesCode:       st.SesCode,
		StatusHistory: st.StatusHistory,
	}
}
