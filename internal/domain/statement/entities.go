package statement

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"credit-conveyor/internal/domain/credit"
)

var (
	ErrNotFound      = errors.New("statement not found")
	ErrChangeBlocked = errors.New("statement change blocked: statement had been denied earlier")
)

type Status string

const (
	StatusPreapproval      Status = "PREAPPROVAL"
	StatusApproved         Status = "APPROVED"
	StatusCCDenied         Status = "CC_DENIED"
	StatusCCApproved       Status = "CC_APPROVED"
	StatusPrepareDocuments Status = "PREPARE_DOCUMENTS"
	StatusDocumentCreated  Status = "DOCUMENT_CREATED"
	StatusDocumentSigned   Status = "DOCUMENT_SIGNED"
	StatusCreditIssued     Status = "CREDIT_ISSUED"
)

type ChangeType string

const (
	ChangeAutomatic ChangeType = "AUTOMATIC"
	ChangeManual    ChangeType = "MANUAL"
)

// HistoryEntry is one element of the append-only status trail.
type HistoryEntry struct {
	Status     Status     `json:"status"`
	Timestamp  time.Time  `json:"timestamp"`
	ChangeType ChangeType `json:"change_type"`
}

// Statement is one loan application as it moves through the origination
// workflow. Cross-entity references are kept as foreign-key ids; the applied
// offer and the status history are stored as JSON columns.
type Statement struct {
	ID            string         `gorm:"primaryKey;size:36;column:statement_id" json:"statement_id"`
	ClientID      string         `gorm:"size:36;index" json:"client_id"`
	CreditID      *string        `gorm:"size:36" json:"credit_id,omitempty"`
	Status        Status         `gorm:"size:32" json:"status"`
	CreationDate  time.Time      `json:"creation_date"`
	AppliedOffer  *credit.Offer  `gorm:"serializer:json" json:"applied_offer,omitempty"`
	SignDate      *time.Time     `json:"sign_date,omitempty"`
	SesCode       string         `gorm:"size:6" json:"-"`
	StatusHistory []HistoryEntry `gorm:"serializer:json" json:"status_history"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"-"`
}

func (Statement) TableName() string { return "statements" }

// New creates a statement for the given applicant in the initial
// pre-approval status with its first history entry.
func New(clientID string) *Statement {
	s := &Statement{
		ID:           uuid.NewString(),
		ClientID:     clientID,
		CreationDate: time.Now().UTC(),
	}
	s.Transition(StatusPreapproval)
	return s
}

// Transition overwrites the current status and appends one history entry.
// History entries are never edited or removed. The denial guard is the
// caller's responsibility; callers must check IsDenied before mutating.
func (s *Statement) Transition(status Status) {
	s.Status = status
	s.StatusHistory = append(s.StatusHistory, HistoryEntry{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		ChangeType: ChangeAutomatic,
	})
}

// IsDenied reports whether the statement reached the absorbing CC_DENIED
// status, after which every business mutation is blocked.
func (s *Statement) IsDenied() bool { return s.Status == StatusCCDenied }
