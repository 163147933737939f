// Package gate содержит бизнес-логику шлюза подписок: достаёт хранилище
// статусов конкретного пользователя из реестра и выполняет над ним
// операции чтения, апгрейда и мутаций.
package gate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baedyl/resume-builder-front-sub000/internal/access"
	"github.com/baedyl/resume-builder-front-sub000/internal/models"
	"github.com/baedyl/resume-builder-front-sub000/internal/subscription"
)

// Service реализует операции шлюза поверх реестра хранилищ.
type Service struct {
	registry *subscription.Registry
	priceID  string
	log      *slog.Logger
}

// New создает новый экземпляр Service. priceID — цена premium-тарифа,
// используемая, когда запрос не указал свою.
func New(registry *subscription.Registry, priceID string, log *slog.Logger) *Service {
	return &Service{
		registry: registry,
		priceID:  priceID,
		log:      log,
	}
}

// Status возвращает статус подписки пользователя, при refresh=true минуя кеш.
func (s *Service) Status(ctx context.Context, identityID, token string, refresh bool) (models.SubscriptionStatus, error) {
	store, err := s.registry.Acquire(identityID, token)
	if err != nil {
		return models.SubscriptionStatus{}, fmt.Errorf("gate.Status: %w", err)
	}
	return store.GetStatus(ctx, refresh), nil
}

// Checkout инициирует переход на оплату и возвращает URL hosted-checkout
// страницы. Пустой priceID заменяется настроенной ценой premium-тарифа.
func (s *Service) Checkout(ctx context.Context, identityID, token, priceID string) (string, error) {
	store, err := s.registry.Acquire(identityID, token)
	if err != nil {
		return "", fmt.Errorf("gate.Checkout: %w", err)
	}
	if priceID == "" {
		priceID = s.priceID
	}
	return store.RedirectToCheckout(ctx, priceID)
}

// Cancel отменяет подписку пользователя.
func (s *Service) Cancel(ctx context.Context, identityID, token string) error {
	store, err := s.registry.Acquire(identityID, token)
	if err != nil {
		return fmt.Errorf("gate.Cancel: %w", err)
	}
	return store.CancelSubscription(ctx)
}

// Resume возобновляет отменённую подписку пользователя.
func (s *Service) Resume(ctx context.Context, identityID, token string) error {
	store, err := s.registry.Acquire(identityID, token)
	if err != nil {
		return fmt.Errorf("gate.Resume: %w", err)
	}
	return store.ResumeSubscription(ctx)
}

// Decide возвращает решение о доступе к функции: контент или заглушка.
// Статус при необходимости загружается, поэтому StateLoading наружу
// не отдается.
func (s *Service) Decide(ctx context.Context, identityID, token, feature string) (access.Decision, error) {
	store, err := s.registry.Acquire(identityID, token)
	if err != nil {
		return access.Decision{}, fmt.Errorf("gate.Decide: %w", err)
	}

	controller := access.New(store, access.NewConfig(feature, s.priceID), s.log)
	controller.Refresh(ctx)
	return controller.Decide(), nil
}

// Logout выбрасывает хранилище пользователя: кеш статусов не должен
// переживать смену личности.
func (s *Service) Logout(identityID string) {
	s.registry.Drop(identityID)
}
