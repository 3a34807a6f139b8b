package deposits

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/dto"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/pkg/auth"
)

func NewMock(t *testing.T) (*DepositHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service, nil)
	defer ctrl.Finish()
	return handler, service
}

func depositForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	assert.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateDepositHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		fields       map[string]string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful claim",
			fields: map[string]string{
				"amount_cents":    "10000",
				"declared_name":   "J. Smith",
				"payer_reference": "TRX-1",
				"method_id":       "1",
			},
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, int64(10000), "J. Smith", "TRX-1", "", 1).
					Return(&domain.Deposit{ID: 17, UserID: 1, AmountCents: 10000, Status: domain.DepositPending, DeclaredName: "J. Smith"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Missing amount",
			fields: map[string]string{
				"declared_name": "J. Smith",
			},
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Missing declared name",
			fields: map[string]string{
				"amount_cents": "10000",
			},
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Amount below minimum",
			fields: map[string]string{
				"amount_cents":  "500",
				"declared_name": "J. Smith",
			},
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, int64(500), "J. Smith", "", "", 0).
					Return(nil, domain.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			fields: map[string]string{
				"amount_cents":  "10000",
				"declared_name": "J. Smith",
			},
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, int64(10000), "J. Smith", "", "", 0).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			body, contentType := depositForm(t, tt.fields)
			r := httptest.NewRequest(http.MethodPost, "/deposits", body)
			r.Header.Set("Content-Type", contentType)
			r = r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()

			handler.CreateDeposit(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.DepositResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&resp)
				assert.Equal(t, 17, resp.ID)
				assert.Equal(t, "PENDING", resp.Status)
			}
		})
	}
}

func TestGetDepositsHandler(t *testing.T) {
	handler, service := NewMock(t)
	now := time.Now()

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetDeposits(gomock.Any(), 1).Return([]domain.Deposit{
					{ID: 17, AmountCents: 10000, Status: domain.DepositConfirmed, CreatedAt: now},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No deposits",
			prepareMock: func() {
				service.EXPECT().GetDeposits(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetDeposits(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/deposits", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()

			handler.GetDeposits(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetPendingHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().GetPending(gomock.Any()).Return([]domain.Deposit{
		{ID: 17, UserID: 5, AmountCents: 10000, Status: domain.DepositPending},
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/deposits", nil)
	w := httptest.NewRecorder()

	handler.GetPending(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.AdminDepositResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 1)
	assert.Equal(t, 5, body[0].UserID)
}

func TestApproveHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		depositID    string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:      "Successful approval",
			depositID: "17",
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), 17).
					Return(&domain.Deposit{ID: 17, UserID: 5, AmountCents: 10000, Status: domain.DepositConfirmed}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid deposit id",
			depositID:    "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "Deposit not found",
			depositID: "99",
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), 99).Return(nil, domain.ErrRecordNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:      "Already resolved",
			depositID: "17",
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), 17).Return(nil, domain.ErrInvalidState)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:      "Store busy",
			depositID: "17",
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), 17).Return(nil, pg.ErrStoreBusy)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/deposits/"+tt.depositID+"/approve", nil)
			r = withURLParam(r, "id", tt.depositID)
			w := httptest.NewRecorder()

			handler.Approve(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRejectHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().Reject(gomock.Any(), 17).
		Return(&domain.Deposit{ID: 17, UserID: 5, AmountCents: 10000, Status: domain.DepositRejected}, nil)

	r := httptest.NewRequest(http.MethodPost, "/deposits/17/reject", nil)
	r = withURLParam(r, "id", "17")
	w := httptest.NewRecorder()

	handler.Reject(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.AdminDepositResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Equal(t, "REJECTED", body.Status)
}
