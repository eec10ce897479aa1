package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// WebhookMessage is the JSON body posted for each event. The text field makes
// it acceptable to Slack-style incoming webhooks as is.
type WebhookMessage struct {
	Text      string    `json:"text"`
	Event     string    `json:"event"`
	AlarmID   string    `json:"alarm_id,omitempty"`
	TimeOfDay string    `json:"time_of_day,omitempty"`
	Next      time.Time `json:"next,omitzero"`
	Timestamp time.Time `json:"timestamp"`
}

// WebhookSender posts events to an HTTP endpoint.
type WebhookSender struct {
	url        string
	events     map[string]bool
	httpClient *http.Client
}

// WebhookOption configures a WebhookSender.
type WebhookOption func(*WebhookSender)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(s *WebhookSender) {
		s.httpClient = client
	}
}

// WithEvents limits the sender to the given event types.
func WithEvents(types ...string) WebhookOption {
	return func(s *WebhookSender) {
		s.events = make(map[string]bool, len(types))
		for _, t := range types {
			s.events[t] = true
		}
	}
}

// NewWebhookSender creates a sender posting to rawURL.
func NewWebhookSender(rawURL string, opts ...WebhookOption) (*WebhookSender, error) {
	if err := ValidateWebhookURL(rawURL); err != nil {
		return nil, err
	}

	s := &WebhookSender{
		url: rawURL,
		httpClient: &http.Client{
			Timeout: SendTimeout,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Name returns the sender name.
func (s *WebhookSender) Name() string {
	return "webhook"
}

// Send posts the event unless its type is filtered out.
func (s *WebhookSender) Send(ctx context.Context, event *Event) error {
	if s.events != nil && !s.events[event.Type] {
		return nil
	}

	body, err := json.Marshal(FormatWebhookMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// FormatWebhookMessage builds the JSON body for event.
func FormatWebhookMessage(event *Event) WebhookMessage {
	st := event.Status

	msg := WebhookMessage{
		Event:     event.Type,
		AlarmID:   st.ID,
		TimeOfDay: st.TimeOfDay,
		Next:      st.Next,
		Timestamp: event.Timestamp,
	}

	switch event.Type {
	case EventFired:
		msg.Text = fmt.Sprintf("%s (%s)", st.Message, event.Timestamp.Format("15:04:05"))
	case EventArmed:
		msg.Text = st.Message
	case EventDismissed:
		msg.Text = "Alarm dismissed"
	case EventCancelled:
		msg.Text = "Alarm cancelled"
	default:
		msg.Text = event.Type
	}

	return msg
}

// ValidateWebhookURL checks that rawURL is an absolute http(s) URL.
func ValidateWebhookURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("webhook URL is required")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid webhook URL %q: must be an absolute http or https URL", rawURL)
	}

	return nil
}
