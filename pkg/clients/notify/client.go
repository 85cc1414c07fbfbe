// Package notify delivers digest messages to a configured webhook endpoint.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client exposes the delivery operation used by the scheduler.
type Client interface {
	SendDigest(ctx context.Context, digest Digest) error
}

// Digest is the webhook payload for one monthly summary.
type Digest struct {
	Subject string   `json:"subject"`
	Lines   []string `json:"lines"`
}

// WebhookClient is a resty-backed implementation of Client posting JSON to a
// fixed URL.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds a webhook client for the given URL.
func NewWebhookClient(webhookURL string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// SendDigest posts the digest and fails on any non-2xx response.
func (c *WebhookClient) SendDigest(ctx context.Context, digest Digest) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(digest).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("post digest webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("digest webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
