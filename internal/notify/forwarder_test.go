package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskwallet/backend/pkg/clients"
)

func NewMockForwarder(t *testing.T) (*Forwarder, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)
	forwarder := NewForwarder("http://push.local/hook", client)
	defer ctrl.Finish()
	return forwarder, client
}

func TestForward(t *testing.T) {
	event := Event{
		ID:        "evt-1",
		UserID:    5,
		Type:      EventDepositConfirmed,
		Payload:   map[string]any{"amount_cents": int64(10000)},
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name        string
		prepareMock func(client *clients.MockHTTPClientI)
		expectErr   bool
	}{
		{
			name: "Successful delivery",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
					assert.Equal(t, http.MethodPost, req.Method)
					assert.Equal(t, "http://push.local/hook", req.URL.String())
					assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

					body, _ := io.ReadAll(req.Body)
					var sent Event
					assert.NoError(t, json.Unmarshal(body, &sent))
					assert.Equal(t, event.ID, sent.ID)
					assert.Equal(t, event.Type, sent.Type)

					return &http.Response{
						StatusCode: http.StatusOK,
						Body:       io.NopCloser(bytes.NewReader(nil)),
					}, nil
				})
			},
		},
		{
			name: "Webhook rejects the event",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Do(gomock.Any()).Return(&http.Response{
					StatusCode: http.StatusBadGateway,
					Body:       io.NopCloser(bytes.NewReader(nil)),
				}, nil)
			},
			expectErr: true,
		},
		{
			name: "Transport error",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forwarder, client := NewMockForwarder(t)
			tt.prepareMock(client)

			err := forwarder.Forward(context.Background(), event)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
