package dossier

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"credit-conveyor/internal/domain/credit"
	"credit-conveyor/internal/notification"
	"credit-conveyor/internal/usecase/deal"
)

// ---- function-backed fakes ----

type dealAPIMock struct {
	DocumentDataFn        func(ctx context.Context, statementID string) (*deal.DocumentData, error)
	MarkDocumentCreatedFn func(ctx context.Context, statementID string) error
	marked                []string
}

func (m *dealAPIMock) DocumentData(ctx context.Context, statementID string) (*deal.DocumentData, error) {
	if m.DocumentDataFn != nil {
		return m.DocumentDataFn(ctx, statementID)
	}
	return testDocumentData(), nil
}

func (m *dealAPIMock) MarkDocumentCreated(ctx context.Context, statementID string) error {
	if m.MarkDocumentCreatedFn != nil {
		return m.MarkDocumentCreatedFn(ctx, statementID)
	}
	m.marked = append(m.marked, statementID)
	return nil
}

type storeMock struct {
	uploads map[string][]byte
}

func (m *storeMock) UploadXLSX(ctx context.Context, key string, data []byte) (string, error) {
	if m.uploads == nil {
		m.uploads = map[string][]byte{}
	}
	m.uploads[key] = data
	return key, nil
}

func (m *storeMock) TemporaryURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://files.example.com/" + key, nil
}

type sentMail struct {
	to, subject, body string
	attachment        []byte
	filename          string
}

type mailerMock struct {
	sent   []sentMail
	SendFn func(to, subject, body string, attachment []byte, filename string) error
}

func (m *mailerMock) Send(to, subject, body string, attachment []byte, filename string) error {
	if m.SendFn != nil {
		return m.SendFn(to, subject, body, attachment, filename)
	}
	m.sent = append(m.sent, sentMail{to, subject, body, attachment, filename})
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testDocumentData() *deal.DocumentData {
	return &deal.DocumentData{
		Credit: credit.Credit{
			ID:             "credit-1",
			Amount:         dec("100000"),
			Term:           2,
			MonthlyPayment: dec("50667.78"),
			Rate:           dec("0.08"),
			PSK:            dec("101335.56"),
			Schedule: []credit.ScheduleEntry{
				{Number: 1, Date: time.Now().UTC().AddDate(0, 1, 0), TotalPayment: dec("50667.78"),
					InterestPayment: dec("666.67"), DebtPayment: dec("50001.11"), RemainingDebt: dec("49998.89")},
				{Number: 2, Date: time.Now().UTC().AddDate(0, 2, 0), TotalPayment: dec("50667.78"),
					InterestPayment: dec("333.33"), DebtPayment: dec("50334.45"), RemainingDebt: dec("0.00")},
			},
		},
		FirstName: "John",
		LastName:  "Doe",
		BirthDate: time.Date(1992, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func newTestWorker(api *dealAPIMock, store *storeMock, mailer *mailerMock) *Worker {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewWorker(api, store, mailer, log)
}

func TestRenderAgreement(t *testing.T) {
	doc, err := RenderAgreement(testDocumentData())
	if err != nil {
		t.Fatalf("RenderAgreement: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Agreement" || sheets[1] != "Schedule" {
		t.Fatalf("sheets = %v", sheets)
	}

	borrower, err := f.GetCellValue("Agreement", "B1")
	if err != nil {
		t.Fatalf("read borrower: %v", err)
	}
	if borrower != "Doe John" {
		t.Fatalf("borrower = %q", borrower)
	}

	rows, err := f.GetRows("Schedule")
	if err != nil {
		t.Fatalf("read schedule: %v", err)
	}
	// header + two installments
	if len(rows) != 3 {
		t.Fatalf("schedule rows = %d, want 3", len(rows))
	}
	if rows[2][5] != "0.00" {
		t.Fatalf("final remaining debt cell = %q", rows[2][5])
	}
}

func TestHandleSendDocuments(t *testing.T) {
	api := &dealAPIMock{}
	store := &storeMock{}
	mailer := &mailerMock{}
	w := newTestWorker(api, store, mailer)

	msg := notification.Message{
		StatementID: "st-1",
		Address:     "john@example.com",
		Text:        "Your loan documents are here:",
	}
	if err := w.Handler(notification.TopicSendDocuments)(context.Background(), msg); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if _, ok := store.uploads["agreements/st-1.xlsx"]; !ok {
		t.Fatalf("document not uploaded: %v", store.uploads)
	}
	if len(api.marked) != 1 || api.marked[0] != "st-1" {
		t.Fatalf("document status not reported: %v", api.marked)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("mail not sent")
	}
	m := mailer.sent[0]
	if m.to != "john@example.com" || m.filename != "credit-agreement.xlsx" {
		t.Fatalf("mail = %+v", m)
	}
	if len(m.attachment) == 0 {
		t.Fatalf("attachment missing")
	}
}

func TestHandleSendDocuments_FetchFailure(t *testing.T) {
	api := &dealAPIMock{
		DocumentDataFn: func(ctx context.Context, statementID string) (*deal.DocumentData, error) {
			return nil, errors.New("api down")
		},
	}
	store := &storeMock{}
	mailer := &mailerMock{}
	w := newTestWorker(api, store, mailer)

	err := w.Handler(notification.TopicSendDocuments)(context.Background(), notification.Message{StatementID: "st-1"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(store.uploads) != 0 || len(mailer.sent) != 0 {
		t.Fatalf("no side effects expected on fetch failure")
	}
}

func TestPlainMailTopics(t *testing.T) {
	cases := []struct {
		topic   string
		subject string
	}{
		{notification.TopicFinishRegistration, "Finish registration"},
		{notification.TopicCreateDocuments, "Your loan was approved"},
		{notification.TopicSendSes, "Signature code"},
		{notification.TopicCreditIssued, "Credit issued"},
		{notification.TopicStatementDenied, "Statement denied"},
	}
	for _, tc := range cases {
		t.Run(tc.topic, func(t *testing.T) {
			mailer := &mailerMock{}
			w := newTestWorker(&dealAPIMock{}, &storeMock{}, mailer)

			msg := notification.Message{StatementID: "st-1", Address: "john@example.com", Text: "hello"}
			if err := w.Handler(tc.topic)(context.Background(), msg); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if len(mailer.sent) != 1 {
				t.Fatalf("mail not sent")
			}
			if mailer.sent[0].subject != tc.subject {
				t.Fatalf("subject = %q, want %q", mailer.sent[0].subject, tc.subject)
			}
		})
	}
}

func TestHandler_UnknownTopic(t *testing.T) {
	w := newTestWorker(&dealAPIMock{}, &storeMock{}, &mailerMock{})
	if err := w.Handler("bogus")(context.Background(), notification.Message{}); err == nil {
		t.Fatalf("unknown topic must error")
	}
}
