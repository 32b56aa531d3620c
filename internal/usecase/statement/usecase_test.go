package statement

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"credit-conveyor/internal/domain/credit"
	domain "credit-conveyor/internal/domain/statement"
	"credit-conveyor/internal/testutil/statementmock"
)

func newTestUsecase(repo domain.Repository) *Usecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewUsecase(repo, log)
}

func TestCreate_StartsInPreapproval(t *testing.T) {
	var created *domain.Statement
	repo := &statementmock.Repo{
		CreateFn: func(ctx context.Context, s *domain.Statement) error {
			created = s
			return nil
		},
	}
	uc := newTestUsecase(repo)

	st, err := uc.Create(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created != st {
		t.Fatalf("statement not persisted")
	}
	if st.Status != domain.StatusPreapproval {
		t.Fatalf("status = %s, want PREAPPROVAL", st.Status)
	}
	if len(st.StatusHistory) != 1 || st.StatusHistory[0].Status != domain.StatusPreapproval {
		t.Fatalf("history = %+v, want single PREAPPROVAL entry", st.StatusHistory)
	}
	if st.StatusHistory[0].ChangeType != domain.ChangeAutomatic {
		t.Fatalf("change type = %s, want AUTOMATIC", st.StatusHistory[0].ChangeType)
	}
	if st.ID == "" || st.ClientID != "client-1" {
		t.Fatalf("ids not set: %+v", st)
	}
}

func TestFindByID_TranslatesNotFound(t *testing.T) {
	repo := &statementmock.Repo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Statement, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := newTestUsecase(repo)

	_, err := uc.FindByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want domain.ErrNotFound, got %v", err)
	}
}

func TestTransition_AppendsHistory(t *testing.T) {
	saved := 0
	repo := &statementmock.Repo{
		SaveFn: func(ctx context.Context, s *domain.Statement) error {
			saved++
			return nil
		},
	}
	uc := newTestUsecase(repo)

	st := domain.New("client-1")
	if err := uc.Transition(context.Background(), st, domain.StatusApproved); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if st.Status != domain.StatusApproved {
		t.Fatalf("status = %s", st.Status)
	}
	if len(st.StatusHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(st.StatusHistory))
	}

	// repeating the same status still appends
	if err := uc.Transition(context.Background(), st, domain.StatusApproved); err != nil {
		t.Fatalf("Transition repeat: %v", err)
	}
	if len(st.StatusHistory) != 3 {
		t.Fatalf("history length = %d, want 3", len(st.StatusHistory))
	}
	if saved != 2 {
		t.Fatalf("Save called %d times, want 2", saved)
	}
}

func TestApplyOffer(t *testing.T) {
	st := domain.New("client-1")
	repo := &statementmock.Repo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Statement, error) {
			if id != st.ID {
				return nil, gorm.ErrRecordNotFound
			}
			return st, nil
		},
		SaveFn: func(ctx context.Context, s *domain.Statement) error { return nil },
	}
	uc := newTestUsecase(repo)

	offer := credit.Offer{StatementID: st.ID, Term: 6}
	got, err := uc.ApplyOffer(context.Background(), offer)
	if err != nil {
		t.Fatalf("ApplyOffer: %v", err)
	}
	if got.AppliedOffer == nil || got.AppliedOffer.Term != 6 {
		t.Fatalf("offer not applied: %+v", got.AppliedOffer)
	}
	if got.Status != domain.StatusApproved {
		t.Fatalf("status = %s, want APPROVED", got.Status)
	}
}

func TestIssueCredit_StampsSignDate(t *testing.T) {
	repo := &statementmock.Repo{
		SaveFn: func(ctx context.Context, s *domain.Statement) error { return nil },
	}
	uc := newTestUsecase(repo)

	st := domain.New("client-1")
	if err := uc.IssueCredit(context.Background(), st); err != nil {
		t.Fatalf("IssueCredit: %v", err)
	}
	if st.SignDate == nil {
		t.Fatalf("sign date not set")
	}
	if st.Status != domain.StatusCreditIssued {
		t.Fatalf("status = %s, want CREDIT_ISSUED", st.Status)
	}
}

func TestIsDenied(t *testing.T) {
	st := domain.New("client-1")
	st.Transition(domain.StatusCCDenied)
	repo := &statementmock.Repo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Statement, error) {
			return st, nil
		},
	}
	uc := newTestUsecase(repo)

	denied, err := uc.IsDenied(context.Background(), st.ID)
	if err != nil {
		t.Fatalf("IsDenied: %v", err)
	}
	if !denied {
		t.Fatalf("want denied")
	}
}
