// Package subscription содержит бизнес-логику работы со статусом подписки:
// кеширование с деградацией до бесплатного тарифа, запуск checkout и
// мутации подписки с инвалидацией кеша.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/baedyl/resume-builder-front-sub000/internal/backend"
	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
	"github.com/baedyl/resume-builder-front-sub000/internal/models"
)

// PricePrefix обязательный префикс идентификатора цены.
const PricePrefix = "price_"

// SessionPrefix обязательный префикс идентификатора checkout-сессии.
const SessionPrefix = "cs_"

// BackendClient определяет методы бэкенда, используемые хранилищем.
type BackendClient interface {
	// GetSubscriptionStatus возвращает текущее биллинговое состояние пользователя.
	GetSubscriptionStatus(ctx context.Context) (*models.SubscriptionStatus, error)
	// CreateCheckoutSession создаёт checkout-сессию для указанной цены.
	CreateCheckoutSession(ctx context.Context, priceID string) (*backend.CheckoutSessionResponse, error)
	// CancelSubscription отменяет подписку пользователя.
	CancelSubscription(ctx context.Context) error
	// ResumeSubscription возобновляет отменённую подписку.
	ResumeSubscription(ctx context.Context) error
}

// ProviderClient определяет клиент hosted-checkout страницы провайдера.
type ProviderClient interface {
	// RedirectToCheckout возвращает URL перехода на оплату для сессии.
	RedirectToCheckout(sessionID string) (string, error)
}

// cachedStatus запись кеша: статус и момент его получения.
// Запись всегда заменяется целиком, частичных обновлений нет.
type cachedStatus struct {
	Status    models.SubscriptionStatus
	FetchedAt time.Time
}

// Store единственный источник истины о том, является ли пользователь
// premium. Кеширует статус на StatusTTL, при ошибке бэкенда молча отдаёт
// бесплатный тариф с укороченным FallbackTTL и никогда не возвращает
// ошибку из чтения статуса.
type Store struct {
	backendClient  BackendClient
	providerClient ProviderClient
	identityID     string
	statusTTL      time.Duration
	fallbackTTL    time.Duration
	log            *slog.Logger

	cache *gocache.Cache
	group singleflight.Group

	mu        sync.Mutex
	epoch     uint64
	observers []func(models.SubscriptionStatus)
}

// New создает Store для одного аутентифицированного пользователя.
// Отказывается инициализироваться без клиентов или идентификатора.
func New(backendClient BackendClient, providerClient ProviderClient, identityID string, statusTTL, fallbackTTL time.Duration, log *slog.Logger) (*Store, error) {
	if backendClient == nil {
		return nil, errors.New("subscription.New: backend client is required")
	}
	if providerClient == nil {
		return nil, errors.New("subscription.New: provider client is required")
	}
	if identityID == "" {
		return nil, errors.New("subscription.New: identity id is required")
	}
	if statusTTL <= 0 {
		statusTTL = 5 * time.Minute
	}
	if fallbackTTL <= 0 {
		fallbackTTL = 30 * time.Second
	}
	return &Store{
		backendClient:  backendClient,
		providerClient: providerClient,
		identityID:     identityID,
		statusTTL:      statusTTL,
		fallbackTTL:    fallbackTTL,
		log:            log,
		cache:          gocache.New(statusTTL, 2*statusTTL),
	}, nil
}

func (s *Store) cacheKey() string {
	return fmt.Sprintf("subscription:%s", s.identityID)
}

// Peek возвращает закешированный статус без похода в сеть.
// Второе значение false означает, что статус ещё не загружался.
func (s *Store) Peek() (models.SubscriptionStatus, bool) {
	entry, found := s.cache.Get(s.cacheKey())
	if !found {
		return models.SubscriptionStatus{}, false
	}
	return entry.(cachedStatus).Status, true
}

// GetStatus возвращает статус подписки. Свежая запись кеша отдаётся без
// сетевого вызова; иначе выполняется запрос к бэкенду, при этом
// конкурентные вызовы для одного пользователя ждут один общий запрос.
// Никогда не возвращает ошибку: любой сбой деградирует до free-статуса.
func (s *Store) GetStatus(ctx context.Context, forceRefresh bool) models.SubscriptionStatus {
	if !forceRefresh {
		if status, found := s.Peek(); found {
			statusReads.WithLabelValues(outcomeHit).Inc()
			return status
		}
	}

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	// Ключ полёта включает epoch: вызов после Invalidate не присоединится
	// к запросу, начатому до сброса, а запустит свой.
	flightKey := fmt.Sprintf("%s#%d", s.cacheKey(), epoch)
	result, _, _ := s.group.Do(flightKey, func() (any, error) {
		return s.fetch(ctx, epoch), nil
	})
	return result.(models.SubscriptionStatus)
}

// fetch выполняет запрос статуса и обновляет кеш. Ответ, пришедший после
// смены epoch (инвалидация, смена пользователя), в кеш не записывается.
func (s *Store) fetch(ctx context.Context, epoch uint64) models.SubscriptionStatus {
	const op = "subscription.fetch"
	log := s.log.With(slog.String("op", op), sl.Identity(s.identityID))

	statusReads.WithLabelValues(outcomeMiss).Inc()

	status, err := s.backendClient.GetSubscriptionStatus(ctx)
	if err == nil && status.PlanType == "" {
		err = errors.New("response has empty planType")
	}
	if err != nil {
		log.Error("failed to fetch subscription status, falling back to free tier", sl.Err(err))
		statusReads.WithLabelValues(outcomeFallback).Inc()
		fallback := models.FreeStatus()
		s.write(fallback, s.fallbackTTL, epoch)
		return fallback
	}

	s.write(*status, s.statusTTL, epoch)
	return *status
}

// write заменяет запись кеша целиком и уведомляет подписчиков.
func (s *Store) write(status models.SubscriptionStatus, ttl time.Duration, epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch {
		// Запоздавший ответ для уже сброшенного состояния: молча отбрасываем.
		s.mu.Unlock()
		return
	}
	// Set выполняется под мьютексом: Invalidate не должен вклиниться между
	// проверкой epoch и записью, иначе устаревшая запись переживёт сброс.
	s.cache.Set(s.cacheKey(), cachedStatus{Status: status, FetchedAt: time.Now()}, ttl)
	observers := make([]func(models.SubscriptionStatus), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, notify := range observers {
		notify(status)
	}
}

// Invalidate сбрасывает кеш, заставляя следующий GetStatus идти в бэкенд.
// Ответы запросов, начатых до сброса, в кеш уже не попадут.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.cache.Delete(s.cacheKey())
}

// OnChange регистрирует наблюдателя, вызываемого после каждой записи
// статуса в кеш. Замена реактивной модели UI-фреймворка из оригинала.
func (s *Store) OnChange(fn func(models.SubscriptionStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// CreateCheckoutSession создаёт checkout-сессию и возвращает её идентификатор.
// Кеш статусов не затрагивает.
func (s *Store) CreateCheckoutSession(ctx context.Context, priceID string) (string, error) {
	if priceID == "" {
		return "", newError(CodeInvalidPriceID, "No subscription price is configured.", nil)
	}

	session, err := s.backendClient.CreateCheckoutSession(ctx, priceID)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return "", newError(CodeInvalidPriceConfiguration,
				"The subscription price is not configured correctly. Please contact support.", err)
		}
		return "", newError(CodeCheckoutFailed, "Failed to start the upgrade. Please try again.", err)
	}
	if !strings.HasPrefix(session.SessionID, SessionPrefix) {
		return "", newError(CodeInvalidResponse, "Received an invalid checkout session. Please try again.", nil)
	}
	return session.SessionID, nil
}

// RedirectToCheckout проверяет формат цены, создаёт сессию и возвращает
// URL hosted-checkout страницы. Nil-ошибка означает «переход инициирован»,
// а не «подписка оформлена».
func (s *Store) RedirectToCheckout(ctx context.Context, priceID string) (string, error) {
	if !strings.HasPrefix(priceID, PricePrefix) {
		return "", newError(CodeInvalidPriceID, "No subscription price is configured.", nil)
	}

	sessionID, err := s.CreateCheckoutSession(ctx, priceID)
	if err != nil {
		return "", err
	}

	redirectURL, err := s.providerClient.RedirectToCheckout(sessionID)
	if err != nil {
		return "", newError(CodeCheckoutRedirectFailed, "Failed to redirect to checkout. Please try again.", err)
	}
	return redirectURL, nil
}

// CancelSubscription отменяет подписку. При успехе кеш сбрасывается,
// чтобы следующий GetStatus не отдал устаревший premium-флаг; при ошибке
// кеш не меняется и операцию можно безопасно повторить.
func (s *Store) CancelSubscription(ctx context.Context) error {
	if err := s.backendClient.CancelSubscription(ctx); err != nil {
		return newError(CodeCancelFailed, "Failed to cancel the subscription. Please try again.", err)
	}
	s.Invalidate()
	return nil
}

// ResumeSubscription возобновляет отменённую подписку. Семантика кеша
// та же, что у CancelSubscription.
func (s *Store) ResumeSubscription(ctx context.Context) error {
	if err := s.backendClient.ResumeSubscription(ctx); err != nil {
		return newError(CodeResumeFailed, "Failed to resume the subscription. Please try again.", err)
	}
	s.Invalidate()
	return nil
}
