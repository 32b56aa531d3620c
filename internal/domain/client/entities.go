package client

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("client not found")

type Gender string

const (
	GenderMale      Gender = "MALE"
	GenderFemale    Gender = "FEMALE"
	GenderNonBinary Gender = "NON_BINARY"
)

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "SINGLE"
	MaritalMarried  MaritalStatus = "MARRIED"
	MaritalDivorced MaritalStatus = "DIVORCED"
	MaritalWidowed  MaritalStatus = "WIDOWED"
)

type EmploymentStatus string

const (
	EmploymentNotEmployed  EmploymentStatus = "NOT_EMPLOYED"
	EmploymentEmployed     EmploymentStatus = "EMPLOYED"
	EmploymentSelfEmployed EmploymentStatus = "SELF_EMPLOYED"
	EmploymentEmployer     EmploymentStatus = "EMPLOYER"
)

type WorkPosition string

const (
	PositionJunior     WorkPosition = "JUNIOR"
	PositionMiddle     WorkPosition = "MIDDLE"
	PositionSenior     WorkPosition = "SENIOR"
	PositionTeamLead   WorkPosition = "TEAM_LEAD"
	PositionTopManager WorkPosition = "TOP_MANAGER"
)

// Employment is the applicant's job record collected with the finish-registration
// form. Stored on the client as a JSON column.
type Employment struct {
	Status                EmploymentStatus `json:"employmentStatus"`
	EmployerINN           string           `json:"employerInn"`
	Salary                decimal.Decimal  `json:"salary"`
	Position              WorkPosition     `json:"position"`
	WorkExperienceTotal   int              `json:"workExperienceTotal"`
	WorkExperienceCurrent int              `json:"workExperienceCurrent"`
}

// Client is one loan applicant. Created with the minimal prescoring fields and
// enriched with the full risk profile before scoring.
type Client struct {
	ID                  string        `gorm:"primaryKey;size:36;column:client_id" json:"client_id"`
	FirstName           string        `gorm:"size:30" json:"first_name"`
	LastName            string        `gorm:"size:30" json:"last_name"`
	MiddleName          string        `gorm:"size:30" json:"middle_name,omitempty"`
	Email               string        `gorm:"size:255" json:"email"`
	BirthDate           time.Time     `json:"birth_date"`
	PassportSeries      string        `gorm:"size:4" json:"-"`
	PassportNumber      string        `gorm:"size:6" json:"-"`
	PassportIssueDate   *time.Time    `json:"-"`
	PassportIssueBranch string        `gorm:"size:255" json:"-"`
	Gender              Gender        `gorm:"size:16" json:"gender,omitempty"`
	MaritalStatus       MaritalStatus `gorm:"size:16" json:"marital_status,omitempty"`
	DependentAmount     int           `json:"dependent_amount"`
	Employment          *Employment   `gorm:"serializer:json" json:"employment,omitempty"`
	AccountNumber       string        `gorm:"size:32" json:"account_number,omitempty"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"-"`
}

func (Client) TableName() string { return "clients" }
