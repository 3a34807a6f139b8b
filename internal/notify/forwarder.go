package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskwallet/backend/pkg/clients"
)

// Forwarder POSTs events to a configured webhook so an external push
// gateway can deliver them to connected clients.
type Forwarder struct {
	url    string
	client clients.HTTPClientI
}

func NewForwarder(url string, client clients.HTTPClientI) *Forwarder {
	return &Forwarder{
		url:    url,
		client: client,
	}
}

func (f *Forwarder) Forward(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to forward event %s: %w", event.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d for event %s", resp.StatusCode, event.ID)
	}
	return nil
}
