package gate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baedyl/resume-builder-front-sub000/internal/access"
	"github.com/baedyl/resume-builder-front-sub000/internal/models"
	"github.com/baedyl/resume-builder-front-sub000/internal/paymentprovider"
	"github.com/baedyl/resume-builder-front-sub000/internal/subscription"
)

// testBackend поднимает httptest-бэкенд и считает запросы статуса.
type testBackend struct {
	srv          *httptest.Server
	statusCalls  atomic.Int64
	statusToSend models.SubscriptionStatus
}

func newTestBackend(t *testing.T, status models.SubscriptionStatus) *testBackend {
	t.Helper()
	tb := &testBackend{statusToSend: status}
	tb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/subscription/status":
			tb.statusCalls.Add(1)
			_ = json.NewEncoder(w).Encode(tb.statusToSend)
		case "/api/subscription/create-checkout-session":
			_ = json.NewEncoder(w).Encode(map[string]string{"sessionId": "cs_abc"})
		case "/api/subscription/cancel", "/api/subscription/resume":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(tb.srv.Close)
	return tb
}

func newTestService(t *testing.T, backendURL string) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	providerClient, err := paymentprovider.NewClient("pk_test_1", "https://checkout.test/pay")
	require.NoError(t, err)

	registry, err := subscription.NewRegistry(providerClient, backendURL, 5*time.Second, 5*time.Minute, 30*time.Second, logger)
	require.NoError(t, err)

	return New(registry, "price_default", logger)
}

func premiumStatus() models.SubscriptionStatus {
	return models.SubscriptionStatus{PlanType: models.PlanPremium, Status: models.StateActive}
}

func TestService_StatusUsesCache(t *testing.T) {
	backend := newTestBackend(t, premiumStatus())
	service := newTestService(t, backend.srv.URL)

	first, err := service.Status(context.Background(), "auth0|user-1", "token", false)
	require.NoError(t, err)
	assert.True(t, first.IsPremium())

	second, err := service.Status(context.Background(), "auth0|user-1", "token", false)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, int64(1), backend.statusCalls.Load())
}

func TestService_CheckoutUsesDefaultPrice(t *testing.T) {
	backend := newTestBackend(t, premiumStatus())
	service := newTestService(t, backend.srv.URL)

	url, err := service.Checkout(context.Background(), "auth0|user-1", "token", "")
	require.NoError(t, err)
	assert.Contains(t, url, "cs_abc")
	assert.Contains(t, url, "key=pk_test_1")
}

func TestService_CancelForcesRefetch(t *testing.T) {
	backend := newTestBackend(t, premiumStatus())
	service := newTestService(t, backend.srv.URL)

	_, err := service.Status(context.Background(), "auth0|user-1", "token", false)
	require.NoError(t, err)

	require.NoError(t, service.Cancel(context.Background(), "auth0|user-1", "token"))

	backend.statusToSend = models.SubscriptionStatus{
		PlanType: models.PlanPremium,
		Status:   models.StateCanceled,
	}

	status, err := service.Status(context.Background(), "auth0|user-1", "token", false)
	require.NoError(t, err)
	assert.False(t, status.IsPremium())
	assert.Equal(t, int64(2), backend.statusCalls.Load())
}

func TestService_DecideForFreeUser(t *testing.T) {
	backend := newTestBackend(t, models.FreeStatus())
	service := newTestService(t, backend.srv.URL)

	decision, err := service.Decide(context.Background(), "auth0|user-1", "token", "ai-enhance")
	require.NoError(t, err)
	assert.Equal(t, access.StateGated, decision.State)
	assert.Equal(t, access.DefaultGateTitle, decision.Title)
	assert.Contains(t, decision.Message, "ai-enhance")
}

func TestService_DecideForPremiumUser(t *testing.T) {
	backend := newTestBackend(t, premiumStatus())
	service := newTestService(t, backend.srv.URL)

	decision, err := service.Decide(context.Background(), "auth0|user-1", "token", "ai-enhance")
	require.NoError(t, err)
	assert.Equal(t, access.StateContent, decision.State)
}

func TestService_LogoutDropsCachedState(t *testing.T) {
	backend := newTestBackend(t, premiumStatus())
	service := newTestService(t, backend.srv.URL)

	_, err := service.Status(context.Background(), "auth0|user-1", "token", false)
	require.NoError(t, err)

	service.Logout("auth0|user-1")

	_, err = service.Status(context.Background(), "auth0|user-1", "token", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), backend.statusCalls.Load())
}
