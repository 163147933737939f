package checkout

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/baedyl/resume-builder-front-sub000/internal/http/middlewarectx"
	"github.com/baedyl/resume-builder-front-sub000/internal/subscription"
)

// MockService реализует интерфейс checkout.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Checkout(ctx context.Context, identityID, token, priceID string) (string, error) {
	args := m.Called(ctx, identityID, token, priceID)
	return args.String(0), args.Error(1)
}

func authedRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscription/checkout", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middlewarectx.Identity, "auth0|user-1")
	ctx = context.WithValue(ctx, middlewarectx.Token, "token-1")
	return req.WithContext(ctx)
}

func typedError(code subscription.Code, message string) *subscription.Error {
	return &subscription.Error{Code: code, Message: message}
}

func TestCheckoutHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный запуск checkout",
			body: `{"price_id": "price_123"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "price_123").
					Return("https://checkout.test/pay/cs_abc", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"url":"https://checkout.test/pay/cs_abc"`,
		},
		{
			name: "пустое тело использует настроенную цену",
			body: "",
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "").
					Return("https://checkout.test/pay/cs_abc", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"url"`,
		},
		{
			name:           "цена без префикса отбивается валидатором",
			body:           `{"price_id": "bad-format"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field PriceID has an invalid format",
		},
		{
			name:           "некорректный JSON",
			body:           `{"price_id": `,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "ошибка конфигурации цены",
			body: `{"price_id": "price_123"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "price_123").
					Return("", typedError(subscription.CodeInvalidPriceConfiguration,
						"The subscription price is not configured correctly. Please contact support."))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   "not configured correctly",
		},
		{
			name: "ошибка формата цены из сервиса",
			body: `{"price_id": "price_123"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "price_123").
					Return("", typedError(subscription.CodeInvalidPriceID, "No subscription price is configured."))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "No subscription price is configured.",
		},
		{
			name: "отказ провайдера на редиректе",
			body: `{"price_id": "price_123"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "price_123").
					Return("", typedError(subscription.CodeCheckoutRedirectFailed,
						"Failed to redirect to checkout. Please try again."))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   "Failed to redirect to checkout.",
		},
		{
			name: "некорректный ответ бэкенда",
			body: `{"price_id": "price_123"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "price_123").
					Return("", typedError(subscription.CodeInvalidResponse,
						"Received an invalid checkout session. Please try again."))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   "Received an invalid checkout session.",
		},
		{
			name: "сбой создания сессии получает 500",
			body: `{"price_id": "price_123"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "price_123").
					Return("", typedError(subscription.CodeCheckoutFailed,
						"Failed to start the upgrade. Please try again."))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Failed to start the upgrade.",
		},
		{
			name: "неизвестная ошибка получает общий текст",
			body: `{"price_id": "price_123"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "auth0|user-1", "token-1", "price_123").
					Return("", assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Something went wrong. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest(tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCheckoutHandler_Unauthorized(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	handler := New(logger, new(MockService))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscription/checkout", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
