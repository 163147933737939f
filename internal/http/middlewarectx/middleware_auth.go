// Package middlewarectx содержит HTTP middleware шлюза подписок.
//
// IdentityMiddleware извлекает bearer-токен из заголовка Authorization
// и кладёт в контекст стабильный идентификатор пользователя (claim "sub")
// вместе с самим токеном: токен пересылается бэкенду, который и выполняет
// криптографическую проверку.
//
// В случае ошибки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/baedyl/resume-builder-front-sub000/internal/http/response"
	"github.com/baedyl/resume-builder-front-sub000/internal/identity"
	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Identity — ключ для идентификатора пользователя в контексте
	Identity Key = "identity"
	// Token — ключ для bearer-токена в контексте
	Token Key = "token"
)

// IdentityFromContext достаёт идентификатор пользователя и его токен,
// положенные IdentityMiddleware.
func IdentityFromContext(ctx context.Context) (identityID, token string, ok bool) {
	identityID, okID := ctx.Value(Identity).(string)
	token, okToken := ctx.Value(Token).(string)
	return identityID, token, okID && okToken && identityID != ""
}

// IdentityMiddleware возвращает HTTP middleware, который извлекает
// идентификатор пользователя из bearer-токена.
//
// Если токен отсутствует или не разбирается, возвращает ошибку
// с HTTP статусом 401 Unauthorized.
func IdentityMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.IdentityMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			subject, err := identity.SubjectFromToken(tokenStr)
			if err != nil {
				log.Error("invalid bearer token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid bearer token"))
				return
			}

			ctx := context.WithValue(r.Context(), Identity, subject)
			ctx = context.WithValue(ctx, Token, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
