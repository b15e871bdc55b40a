package webhook

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Unlucky13unny/playerzero/internal/paymentprovider"
)

// MockService реализует интерфейс webhook.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ProcessWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	args := m.Called(ctx, payload, signature)
	return args.Error(0)
}

func TestWebhookHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)

	tests := []struct {
		name           string
		signature      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "событие обработано",
			signature: "t=1718000000,v1=abc",
			setupMock: func(m *MockService) {
				m.On("ProcessWebhookEvent", mock.Anything, payload, "t=1718000000,v1=abc").
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:      "неверная подпись",
			signature: "t=1718000000,v1=bad",
			setupMock: func(m *MockService) {
				m.On("ProcessWebhookEvent", mock.Anything, payload, "t=1718000000,v1=bad").
					Return(paymentprovider.ErrBadSignature)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid webhook signature"`,
		},
		{
			name:      "ошибка сервиса",
			signature: "t=1718000000,v1=abc",
			setupMock: func(m *MockService) {
				m.On("ProcessWebhookEvent", mock.Anything, payload, "t=1718000000,v1=abc").
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not process event"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(payload))
			req.Header.Set("Provider-Signature", tt.signature)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
