package deal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
	domain "credit-conveyor/internal/domain/statement"
	"credit-conveyor/internal/domain/uow"
	"credit-conveyor/internal/notification"
	"credit-conveyor/internal/usecase/calculator"
	statementuc "credit-conveyor/internal/usecase/statement"
	"credit-conveyor/pkg/id"
)

// Calculator is the narrow pricing contract the saga depends on. The local
// calculator usecase satisfies it in-process; a remote pricing service could
// as well.
type Calculator interface {
	GetOffers(ctx context.Context, req calculator.LoanRequest) ([]credit.Offer, error)
	Calculate(ctx context.Context, data calculator.ScoringData) (*credit.Credit, error)
}

// Usecase sequences the origination saga. Each mutating step re-checks the
// denied guard as its first action; state lives in the statement record and
// is re-read at the start of every step.
type Usecase struct {
	uow        uow.UnitOfWork
	statements *statementuc.Usecase
	clients    client.Repository
	credits    credit.Repository
	calc       Calculator
	notifier   notification.Sink
	log        *logrus.Logger
}

func NewUsecase(
	tx uow.UnitOfWork,
	statements *statementuc.Usecase,
	clients client.Repository,
	credits credit.Repository,
	calc Calculator,
	notifier notification.Sink,
	log *logrus.Logger,
) *Usecase {
	return &Usecase{
		uow:        tx,
		statements: statements,
		clients:    clients,
		credits:    credits,
		calc:       calc,
		notifier:   notifier,
		log:        log,
	}
}

// CreateStatement persists the applicant and a fresh statement, prices the
// four offers and stamps the statement id onto them. No denial is possible
// here.
func (u *Usecase) CreateStatement(ctx context.Context, req calculator.LoanRequest) ([]credit.Offer, error) {
	cl := &client.Client{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		Email:          req.Email,
		BirthDate:      req.BirthDate,
		PassportSeries: req.PassportSeries,
		PassportNumber: req.PassportNumber,
	}
	st := domain.New(cl.ID)

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Clients.Create(ctx, cl); err != nil {
			return err
		}
		return r.Statements.Create(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	u.log.WithField("statement_id", st.ID).Info("created client and statement")

	offers, err := u.calc.GetOffers(ctx, req)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		offers[i].StatementID = st.ID
	}
	return offers, nil
}

// ApplyOffer records the chosen offer, advances to APPROVED and asks the
// applicant to finish registration.
func (u *Usecase) ApplyOffer(ctx context.Context, offer credit.Offer) error {
	if err := u.guard(ctx, offer.StatementID); err != nil {
		return err
	}
	st, err := u.statements.ApplyOffer(ctx, offer)
	if err != nil {
		return err
	}
	cl, err := u.findClient(ctx, st.ClientID)
	if err != nil {
		return err
	}
	u.emit(ctx, notification.TopicFinishRegistration, st.ID, cl.Email, "Please finish registration.")
	return nil
}

// CalculateCredit is the scoring step: enrich the client's risk profile, run
// the eligibility gate and the credit calculation, persist the credit and
// advance to CC_APPROVED. A denial transitions to CC_DENIED, notifies the
// applicant once and propagates.
func (u *Usecase) CalculateCredit(ctx context.Context, statementID string, in FinishRegistrationInput) error {
	st, err := u.guardedFind(ctx, statementID)
	if err != nil {
		return err
	}
	if st.AppliedOffer == nil {
		return ErrNoAppliedOffer
	}

	cl, err := u.findClient(ctx, st.ClientID)
	if err != nil {
		return err
	}
	enrichClient(cl, in)
	if err := u.clients.Save(ctx, cl); err != nil {
		return err
	}

	data := scoringData(st, cl, in)

	cr, err := u.calc.Calculate(ctx, data)
	if err != nil {
		var denied *calculator.DeniedError
		if errors.As(err, &denied) {
			u.log.WithField("statement_id", st.ID).Warn("application denied, setting CC_DENIED")
			if terr := u.statements.Transition(ctx, st, domain.StatusCCDenied); terr != nil {
				return terr
			}
			u.emit(ctx, notification.TopicStatementDenied, st.ID, cl.Email,
				"Sorry, we can not loan you that amount of money.")
		}
		return err
	}

	cr.ID = uuid.NewString()
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Credits.Create(ctx, cr); err != nil {
			return err
		}
		st.CreditID = &cr.ID
		st.Transition(domain.StatusCCApproved)
		return r.Statements.Save(ctx, st)
	})
	if err != nil {
		return err
	}

	u.log.WithField("statement_id", st.ID).Info("credit calculated and saved, CC_APPROVED assigned")
	u.emit(ctx, notification.TopicCreateDocuments, st.ID, cl.Email,
		"Do you wish to proceed to create documents?")
	return nil
}

// SendDocuments advances to PREPARE_DOCUMENTS and asks the dossier worker to
// render and email the loan documents.
func (u *Usecase) SendDocuments(ctx context.Context, statementID string) error {
	st, err := u.guardedFind(ctx, statementID)
	if err != nil {
		return err
	}
	cl, err := u.findClient(ctx, st.ClientID)
	if err != nil {
		return err
	}
	if err := u.statements.Transition(ctx, st, domain.StatusPrepareDocuments); err != nil {
		return err
	}
	u.emit(ctx, notification.TopicSendDocuments, st.ID, cl.Email, "Your loan documents are here:")
	return nil
}

// DocumentCreated is the dossier worker's callback once documents were
// rendered and emailed.
func (u *Usecase) DocumentCreated(ctx context.Context, statementID string) error {
	st, err := u.guardedFind(ctx, statementID)
	if err != nil {
		return err
	}
	return u.statements.Transition(ctx, st, domain.StatusDocumentCreated)
}

// SignDocuments generates a fresh SES code, persists it and sends it to the
// applicant.
func (u *Usecase) SignDocuments(ctx context.Context, statementID string) error {
	if err := u.guard(ctx, statementID); err != nil {
		return err
	}
	st, err := u.statements.UpdateSesCode(ctx, statementID, id.NewSesCode())
	if err != nil {
		return err
	}
	cl, err := u.findClient(ctx, st.ClientID)
	if err != nil {
		return err
	}
	u.emit(ctx, notification.TopicSendSes, st.ID, cl.Email,
		"Sign documents with SES code. Your SES code is "+st.SesCode)
	return nil
}

// VerifyCode compares the supplied code with the persisted one. A mismatch
// denies the statement; a match issues the credit and completes the saga.
func (u *Usecase) VerifyCode(ctx context.Context, statementID, sesCode string) error {
	st, err := u.guardedFind(ctx, statementID)
	if err != nil {
		return err
	}
	cl, err := u.findClient(ctx, st.ClientID)
	if err != nil {
		return err
	}

	if st.SesCode != sesCode {
		u.log.WithField("statement_id", st.ID).Error("SES code provided by the client is not valid")
		if terr := u.statements.Transition(ctx, st, domain.StatusCCDenied); terr != nil {
			return terr
		}
		u.emit(ctx, notification.TopicStatementDenied, st.ID, cl.Email,
			"Sorry, we can not loan you that amount of money.")
		return ErrSesMismatch
	}

	if st.CreditID == nil {
		return credit.ErrNotFound
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cr, err := r.Credits.GetByID(ctx, *st.CreditID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return credit.ErrNotFound
			}
			return err
		}
		cr.Status = credit.StatusIssued
		return r.Credits.Save(ctx, cr)
	})
	if err != nil {
		return err
	}

	if err := u.statements.Transition(ctx, st, domain.StatusDocumentSigned); err != nil {
		return err
	}
	if err := u.statements.IssueCredit(ctx, st); err != nil {
		return err
	}

	u.log.WithField("statement_id", st.ID).Info("credit issued")
	u.emit(ctx, notification.TopicCreditIssued, st.ID, cl.Email, "Credit issued, congratulations")
	return nil
}

// DocumentData assembles the client and credit data the dossier worker
// renders documents from.
func (u *Usecase) DocumentData(ctx context.Context, statementID string) (*DocumentData, error) {
	st, err := u.guardedFind(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if st.CreditID == nil {
		return nil, credit.ErrNotFound
	}
	cl, err := u.findClient(ctx, st.ClientID)
	if err != nil {
		return nil, err
	}
	cr, err := u.credits.GetByID(ctx, *st.CreditID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, credit.ErrNotFound
		}
		return nil, err
	}
	return &DocumentData{
		Credit:     *cr,
		FirstName:  cl.FirstName,
		MiddleName: cl.MiddleName,
		LastName:   cl.LastName,
		BirthDate:  cl.BirthDate,
	}, nil
}

func (u *Usecase) GetStatement(ctx context.Context, statementID string) (*StatementDTO, error) {
	st, err := u.statements.FindByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(st)
	return &dto, nil
}

func (u *Usecase) GetAllStatements(ctx context.Context) ([]StatementDTO, error) {
	sts, err := u.statements.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StatementDTO, 0, len(sts))
	for i := range sts {
		out = append(out, toDTO(&sts[i]))
	}
	return out, nil
}

// guard fails fast with ErrChangeBlocked when the statement was denied
// earlier. Every mutating step runs it before any other work.
func (u *Usecase) guard(ctx context.Context, statementID string) error {
	denied, err := u.statements.IsDenied(ctx, statementID)
	if err != nil {
		return err
	}
	if denied {
		u.log.WithField("statement_id", statementID).Warn("statement had been denied earlier, changes are blocked")
		return domain.ErrChangeBlocked
	}
	return nil
}

func (u *Usecase) guardedFind(ctx context.Context, statementID string) (*domain.Statement, error) {
	st, err := u.statements.FindByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if st.IsDenied() {
		u.log.WithField("statement_id", statementID).Warn("statement had been denied earlier, changes are blocked")
		return nil, domain.ErrChangeBlocked
	}
	return st, nil
}

func (u *Usecase) findClient(ctx context.Context, clientID string) (*client.Client, error) {
	cl, err := u.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, err
	}
	return cl, nil
}

// emit is fire-and-forget: a failed notification is logged, never fails the
// step. Exactly-once delivery is the transport collaborator's concern.
func (u *Usecase) emit(ctx context.Context, topic, statementID, address, text string) {
	err := u.notifier.Emit(ctx, topic, notification.Message{
		StatementID: statementID,
		Address:     address,
		Text:        text,
	})
	if err != nil {
		u.log.WithError(err).WithField("topic", topic).Error("failed to emit notification")
	}
}

func enrichClient(cl *client.Client, in FinishRegistrationInput) {
	issue := in.PassportIssueDate
	cl.Gender = in.Gender
	cl.MaritalStatus = in.MaritalStatus
	cl.DependentAmount = in.DependentAmount
	cl.PassportIssueDate = &issue
	cl.PassportIssueBranch = in.PassportIssueBranch
	employment := in.Employment
	cl.Employment = &employment
	cl.AccountNumber = in.AccountNumber
}

func scoringData(st *domain.Statement, cl *client.Client, in FinishRegistrationInput) calculator.ScoringData {
	return calculator.ScoringData{
		Amount:              st.AppliedOffer.RequestedAmount,
		Term:                st.AppliedOffer.Term,
		FirstName:           cl.FirstName,
		LastName:            cl.LastName,
		MiddleName:          cl.MiddleName,
		Gender:              in.Gender,
		BirthDate:           cl.BirthDate,
		PassportSeries:      cl.PassportSeries,
		PassportNumber:      cl.PassportNumber,
		PassportIssueDate:   in.PassportIssueDate,
		PassportIssueBranch: in.PassportIssueBranch,
		MaritalStatus:       in.MaritalStatus,
		DependentAmount:     in.DependentAmount,
		Employment:          in.Employment,
		AccountNumber:       in.AccountNumber,
		InsuranceEnabled:    st.AppliedOffer.InsuranceEnabled,
		SalaryClient:        st.AppliedOffer.SalaryClient,
	}
}
