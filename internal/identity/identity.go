// Package identity связывает модуль с внешним провайдером аутентификации.
//
// Провайдер выдаёт bearer-токены; их криптографическую проверку выполняет
// бэкенд, которому токен пересылается с каждым запросом. Здесь из токена
// извлекается только стабильный идентификатор пользователя (claim "sub"),
// используемый как ключ кеша статусов подписки.
package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource выдаёт актуальный bearer-токен для авторизации запросов
// к бэкенду. Реализация может обновлять токен под капотом.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource простейшая реализация TokenSource поверх уже
// известного токена, например извлечённого из входящего HTTP-запроса.
type StaticTokenSource struct {
	token string
}

// NewStaticTokenSource создает TokenSource с фиксированным токеном.
func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

// Token возвращает сохраненный токен.
func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("identity.Token: empty token")
	}
	return s.token, nil
}

// RefreshableTokenSource хранит последний предъявленный пользователем
// токен и позволяет обновлять его при каждом новом запросе. Безопасен
// для конкурентного использования.
type RefreshableTokenSource struct {
	mu    sync.RWMutex
	token string
}

// NewRefreshableTokenSource создает RefreshableTokenSource с начальным токеном.
func NewRefreshableTokenSource(token string) *RefreshableTokenSource {
	return &RefreshableTokenSource{token: token}
}

// Set заменяет хранимый токен.
func (s *RefreshableTokenSource) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token возвращает последний сохраненный токен.
func (s *RefreshableTokenSource) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", fmt.Errorf("identity.Token: empty token")
	}
	return s.token, nil
}

// SubjectFromToken извлекает claim "sub" из JWT без проверки подписи.
// Подпись валидирует бэкенд; здесь subject нужен только как ключ кеша,
// поэтому достаточно разбора.
func SubjectFromToken(tokenStr string) (string, error) {
	const op = "identity.SubjectFromToken"

	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if subject == "" {
		return "", fmt.Errorf("%s: token has no subject", op)
	}
	return subject, nil
}
