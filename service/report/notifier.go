package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier posts reports as JSON to a webhook
type Notifier struct {
	URL    string
	client *http.Client
}

// Notify posts report; any non 2xx status is an error.
func (n *Notifier) Notify(ctx context.Context, report interface{}) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post report to %s: %w", n.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s responded with %d", n.URL, resp.StatusCode)
	}
	return nil
}

// NewNotifier creates a webhook notifier using the default transport
func NewNotifier(URL string, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{URL: URL, client: &http.Client{Timeout: timeout}}
}
