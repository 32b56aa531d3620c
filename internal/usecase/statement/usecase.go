package statement

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"credit-conveyor/internal/domain/credit"
	domain "credit-conveyor/internal/domain/statement"
)

// Usecase owns the ordered status trail of a statement. Transition appends
// one immutable history entry and always persists; it performs no denial
// check of its own — callers check IsDenied first.
type Usecase struct {
	repo domain.Repository
	log  *logrus.Logger
}

func NewUsecase(repo domain.Repository, log *logrus.Logger) *Usecase {
	return &Usecase{repo: repo, log: log}
}

func (u *Usecase) Create(ctx context.Context, clientID string) (*domain.Statement, error) {
	st := domain.New(clientID)
	if err := u.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	u.log.WithField("statement_id", st.ID).Info("created statement in PREAPPROVAL")
	return st, nil
}

func (u *Usecase) FindByID(ctx context.Context, id string) (*domain.Statement, error) {
	st, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (u *Usecase) All(ctx context.Context) ([]domain.Statement, error) {
	return u.repo.All(ctx)
}

// Transition overwrites the current status, appends one history entry and
// persists. Writing the same status twice is harmless: the status is
// unchanged and history keeps growing monotonically.
func (u *Usecase) Transition(ctx context.Context, st *domain.Statement, status domain.Status) error {
	old := st.Status
	st.Transition(status)
	if err := u.repo.Save(ctx, st); err != nil {
		return err
	}
	u.log.WithFields(logrus.Fields{
		"statement_id": st.ID,
		"from":         old,
		"to":           status,
	}).Info("changed statement status")
	return nil
}

// ApplyOffer sets the chosen offer and advances to APPROVED.
func (u *Usecase) ApplyOffer(ctx context.Context, offer credit.Offer) (*domain.Statement, error) {
	st, err := u.FindByID(ctx, offer.StatementID)
	if err != nil {
		return nil, err
	}
	st.AppliedOffer = &offer
	if err := u.Transition(ctx, st, domain.StatusApproved); err != nil {
		return nil, err
	}
	return st, nil
}

// AttachCredit links a finalized credit. It does not transition status.
func (u *Usecase) AttachCredit(ctx context.Context, st *domain.Statement, creditID string) error {
	st.CreditID = &creditID
	return u.repo.Save(ctx, st)
}

func (u *Usecase) UpdateSesCode(ctx context.Context, id, code string) (*domain.Statement, error) {
	st, err := u.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	st.SesCode = code
	if err := u.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	u.log.WithField("statement_id", id).Info("updated SES code")
	return st, nil
}

// IssueCredit stamps the sign date and advances to CREDIT_ISSUED.
func (u *Usecase) IssueCredit(ctx context.Context, st *domain.Statement) error {
	now := time.Now().UTC()
	st.SignDate = &now
	return u.Transition(ctx, st, domain.StatusCreditIssued)
}

func (u *Usecase) IsDenied(ctx context.Context, id string) (bool, error) {
	st, err := u.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return st.IsDenied(), nil
}
