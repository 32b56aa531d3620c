package dossier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"credit-conveyor/internal/usecase/deal"
	"credit-conveyor/pkg/id"
)

// DealClient calls back into the origination API for document data and
// status updates.
type DealClient struct {
	baseURL string
	http    *http.Client
}

func NewDealClient(baseURL string) *DealClient {
	return &DealClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// DocumentData fetches everything needed to render the credit documents.
func (c *DealClient) DocumentData(ctx context.Context, statementID string) (*deal.DocumentData, error) {
	url := fmt.Sprintf("%s/deal/document/%s/data", c.baseURL, statementID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch document data: unexpected status %d", resp.StatusCode)
	}
	var data deal.DocumentData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode document data: %w", err)
	}
	return &data, nil
}

// MarkDocumentCreated reports back that the documents were rendered. The
// mutating route sits behind the idempotency middleware, hence the headers.
func (c *DealClient) MarkDocumentCreated(ctx context.Context, statementID string) error {
	url := fmt.Sprintf("%s/deal/document/%s/status", c.baseURL, statementID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-Id", id.NewID32())
	req.Header.Set("X-Request-At", time.Now().UTC().Format(time.RFC3339))
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mark document created: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mark document created: unexpected status %d", resp.StatusCode)
	}
	return nil
}
