package notification

import "context"

// Topics fanned out by the origination saga. The dossier worker consumes
// them to email the applicant and drive the document pipeline.
const (
	TopicFinishRegistration = "finish-registration"
	TopicCreateDocuments    = "create-documents"
	TopicSendDocuments      = "send-documents"
	TopicSendSes            = "send-ses"
	TopicCreditIssued       = "credit-issued"
	TopicStatementDenied    = "statement-denied"
)

// Message is the payload emitted for every workflow notification.
type Message struct {
	StatementID string `json:"statement_id"`
	Address     string `json:"address"`
	Text        string `json:"text"`
}

// Sink is the fire-and-forget notification contract. Delivery guarantees
// (and exactly-once side effects) are the transport's concern, not the
// saga's.
type Sink interface {
	Emit(ctx context.Context, topic string, msg Message) error
}
