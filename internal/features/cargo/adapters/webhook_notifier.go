package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"privacy-cargo-tracking/internal/core/httpclient"
	"privacy-cargo-tracking/internal/features/cargo/domain"
)

const webhookTimeout = 10 * time.Second

// WebhookNotifier implements ports.Notifier by POSTing events as JSON to
// an external dashboard endpoint.
type WebhookNotifier struct {
	client *http.Client
	url    string
}

// NewWebhookNotifier creates a new WebhookNotifier. If egressProxyURL is
// non-empty, webhook traffic is routed through that proxy.
func NewWebhookNotifier(url, egressProxyURL string) (*WebhookNotifier, error) {
	client := httpclient.NewClient(webhookTimeout)
	if egressProxyURL != "" {
		var err error
		client, err = httpclient.NewProxiedClient(webhookTimeout, egressProxyURL)
		if err != nil {
			return nil, err
		}
	}

	return &WebhookNotifier{
		client: client,
		url:    url,
	}, nil
}

// Notify delivers the event. Non-2xx responses are errors so the caller
// can log the failed delivery; events are fire-and-forget, not queued.
func (n *WebhookNotifier) Notify(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
