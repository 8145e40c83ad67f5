package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client posts task schedule changes to an external calendar webhook.
// With no webhook configured every call is a local no-op that still
// returns a usable event ID, so task creation never depends on it.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

func New(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type eventPayload struct {
	Action      string    `json:"action"`
	EventID     string    `json:"eventId"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start,omitempty"`
	End         time.Time `json:"end,omitempty"`
	Attendee    string    `json:"attendee,omitempty"`
}

func (c *Client) CreateEvent(ctx context.Context, title, description string, start, end time.Time, attendee string) (string, error) {
	eventID := uuid.NewString()
	if c.webhookURL == "" {
		return eventID, nil
	}
	err := c.post(ctx, eventPayload{
		Action:      "create",
		EventID:     eventID,
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
		Attendee:    attendee,
	})
	if err != nil {
		return "", err
	}
	return eventID, nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if c.webhookURL == "" || eventID == "" {
		return nil
	}
	return c.post(ctx, eventPayload{Action: "delete", EventID: eventID})
}

func (c *Client) post(ctx context.Context, payload eventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("calendar webhook returned %d", resp.StatusCode)
	}
	return nil
}
