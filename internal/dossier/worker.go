package dossier

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"credit-conveyor/internal/notification"
	"credit-conveyor/internal/usecase/deal"
)

const linkTTL = 24 * time.Hour

// Mailer is the slice of the SMTP sender the worker needs.
type Mailer interface {
	Send(to, subject, body string, attachment []byte, filename string) error
}

// DocumentStore archives rendered documents and hands out download links.
type DocumentStore interface {
	UploadXLSX(ctx context.Context, key string, data []byte) (string, error)
	TemporaryURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// DealAPI is the slice of the origination API the worker needs.
type DealAPI interface {
	DocumentData(ctx context.Context, statementID string) (*deal.DocumentData, error)
	MarkDocumentCreated(ctx context.Context, statementID string) error
}

// Worker turns workflow notifications into emails and rendered documents.
type Worker struct {
	deal  DealAPI
	store DocumentStore
	mail  Mailer
	log   *logrus.Logger
}

func NewWorker(api DealAPI, store DocumentStore, mailer Mailer, log *logrus.Logger) *Worker {
	return &Worker{deal: api, store: store, mail: mailer, log: log}
}

// Handler returns the handler for one notification topic.
func (w *Worker) Handler(topic string) func(ctx context.Context, msg notification.Message) error {
	switch topic {
	case notification.TopicSendDocuments:
		return w.handleSendDocuments
	case notification.TopicFinishRegistration:
		return w.plainMail("Finish registration")
	case notification.TopicCreateDocuments:
		return w.plainMail("Your loan was approved")
	case notification.TopicSendSes:
		return w.plainMail("Signature code")
	case notification.TopicCreditIssued:
		return w.plainMail("Credit issued")
	case notification.TopicStatementDenied:
		return w.plainMail("Statement denied")
	default:
		return func(ctx context.Context, msg notification.Message) error {
			return fmt.Errorf("no handler for topic %q", topic)
		}
	}
}

func (w *Worker) plainMail(subject string) func(ctx context.Context, msg notification.Message) error {
	return func(ctx context.Context, msg notification.Message) error {
		return w.mail.Send(msg.Address, subject, msg.Text, nil, "")
	}
}

// handleSendDocuments renders the credit agreement, archives it, reports the
// document back to the API and mails it to the applicant with a download
// link.
func (w *Worker) handleSendDocuments(ctx context.Context, msg notification.Message) error {
	data, err := w.deal.DocumentData(ctx, msg.StatementID)
	if err != nil {
		return err
	}

	doc, err := RenderAgreement(data)
	if err != nil {
		return fmt.Errorf("render agreement: %w", err)
	}

	key := fmt.Sprintf("agreements/%s.xlsx", msg.StatementID)
	if _, err := w.store.UploadXLSX(ctx, key, doc); err != nil {
		return err
	}
	link, err := w.store.TemporaryURL(ctx, key, linkTTL)
	if err != nil {
		return err
	}

	if err := w.deal.MarkDocumentCreated(ctx, msg.StatementID); err != nil {
		return err
	}

	body := msg.Text + "\n\nDownload link (valid 24h): " + link
	if err := w.mail.Send(msg.Address, "Your credit documents", body, doc, "credit-agreement.xlsx"); err != nil {
		return err
	}

	w.log.WithField("statement_id", msg.StatementID).Info("documents delivered")
	return nil
}
