package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Dispatcher submits a moderation job to the external collaborator. The
// collaborator answers later through the callback endpoint; Dispatch only
// covers the hand-off.
type Dispatcher interface {
	Dispatch(ctx context.Context, job Job, contentURL string) error
}

// HTTPDispatcher posts job submissions to the collaborator's intake URL.
type HTTPDispatcher struct {
	client      *http.Client
	endpoint    string
	callbackURL string
}

func NewHTTPDispatcher(endpoint, callbackURL string) *HTTPDispatcher {
	return &HTTPDispatcher{
		client:      &http.Client{Timeout: 10 * time.Second},
		endpoint:    endpoint,
		callbackURL: callbackURL,
	}
}

type dispatchRequest struct {
	JobID       string `json:"jobId"`
	DocumentID  string `json:"documentId"`
	ContentURL  string `json:"contentUrl"`
	CallbackURL string `json:"callbackUrl"`
}

func (d *HTTPDispatcher) Dispatch(ctx context.Context, job Job, contentURL string) error {
	body, err := json.Marshal(dispatchRequest{
		JobID:       job.ID,
		DocumentID:  job.DocumentID.String(),
		ContentURL:  contentURL,
		CallbackURL: d.callbackURL,
	})
	if err != nil {
		return fmt.Errorf("marshal dispatch request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch moderation job: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("moderation collaborator responded %d", resp.StatusCode)
	}
	return nil
}

// NoopDispatcher drops submissions. Used in development when no moderation
// collaborator is configured; callbacks can still be posted manually.
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(context.Context, Job, string) error { return nil }
