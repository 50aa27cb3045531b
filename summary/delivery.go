package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DeliveryStatus describes what happened to a summary message.
type DeliveryStatus int

const (
	// DeliverySkipped means no attempt was made, because there was no destination or nothing
	// to send.
	DeliverySkipped DeliveryStatus = iota
	// Delivered means the destination accepted the message.
	Delivered
	// DeliveryFailed means an attempt was made and did not succeed.
	DeliveryFailed
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliverySkipped:
		return "skipped"
	case Delivered:
		return "delivered"
	case DeliveryFailed:
		return "failed"
	default:
		return fmt.Sprintf("DeliveryStatus(%d)", int(s))
	}
}

// DeliveryOutcome is the result of one delivery attempt. Err is set only for DeliveryFailed.
type DeliveryOutcome struct {
	Status DeliveryStatus
	Err    error
}

// Sender transmits an encoded message to a destination URL.
type Sender interface {
	Send(ctx context.Context, destination string, payload []byte) error
}

// StatusError is returned by WebhookSender for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned HTTP status %d", e.Code)
}

// WebhookSender POSTs JSON payloads with a single attempt per message.
type WebhookSender struct {
	client *http.Client
}

// NewWebhookSender creates a WebhookSender whose requests are bounded by timeout.
func NewWebhookSender(timeout time.Duration) *WebhookSender {
	return &WebhookSender{client: &http.Client{Timeout: timeout}}
}

// Send implements Sender. The response body is read and discarded.
func (s *WebhookSender) Send(ctx context.Context, destination string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = int64(len(payload))

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// EncodePayload builds the webhook request body: a JSON object whose "text" property is the
// message.
func EncodePayload(message string) []byte {
	return []byte(ldvalue.ObjectBuild().Set("text", ldvalue.String(message)).Build().JSONString())
}

func validateDestination(destination string) error {
	u, err := url.Parse(destination)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid webhook URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("invalid webhook URL: no host")
	}
	return nil
}
