// Package backend реализует REST-клиент бэкенда resume-builder.
// Все запросы авторизуются bearer-токеном из identity.TokenSource;
// токен не интерпретируется, а пересылается как есть.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/baedyl/resume-builder-front-sub000/internal/identity"
	"github.com/baedyl/resume-builder-front-sub000/internal/models"
)

const (
	statusPath   = "/api/subscription/status"
	checkoutPath = "/api/subscription/create-checkout-session"
	cancelPath   = "/api/subscription/cancel"
	resumePath   = "/api/subscription/resume"
)

// Client клиент REST API бэкенда.
type Client struct {
	baseURL    string
	tokens     identity.TokenSource
	httpClient *http.Client
}

// NewClient создаёт новый клиент бэкенда. Возвращает ошибку при пустом
// базовом URL: работать с частично сконфигурированным клиентом нельзя.
func NewClient(baseURL string, timeout time.Duration, tokens identity.TokenSource) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("backend.NewClient: base URL is not configured")
	}
	if tokens == nil {
		return nil, errors.New("backend.NewClient: token source is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.baseURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var body errorBody
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetSubscriptionStatus запрашивает текущее биллинговое состояние пользователя.
func (c *Client) GetSubscriptionStatus(ctx context.Context) (*models.SubscriptionStatus, error) {
	const op = "backend.GetSubscriptionStatus"

	req, err := c.newRequest(ctx, http.MethodGet, statusPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var status models.SubscriptionStatus
	if err := c.do(req, &status); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &status, nil
}

// CreateCheckoutSession создаёт checkout-сессию у платёжного провайдера
// через бэкенд и возвращает её идентификатор как есть, без проверки формата.
func (c *Client) CreateCheckoutSession(ctx context.Context, priceID string) (*CheckoutSessionResponse, error) {
	const op = "backend.CreateCheckoutSession"

	req, err := c.newRequest(ctx, http.MethodPost, checkoutPath, CreateCheckoutSessionRequest{PriceID: priceID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var session CheckoutSessionResponse
	if err := c.do(req, &session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}

// CancelSubscription отменяет подписку текущего пользователя.
func (c *Client) CancelSubscription(ctx context.Context) error {
	const op = "backend.CancelSubscription"

	req, err := c.newRequest(ctx, http.MethodPost, cancelPath, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ResumeSubscription возобновляет отменённую подписку текущего пользователя.
func (c *Client) ResumeSubscription(ctx context.Context) error {
	const op = "backend.ResumeSubscription"

	req, err := c.newRequest(ctx, http.MethodPost, resumePath, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
