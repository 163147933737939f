package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/baedyl/resume-builder-front-sub000/internal/access"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/response"
	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
)

// AccessService определяет интерфейс для принятия решения о доступе к функции.
type AccessService interface {
	Decide(ctx context.Context, identityID, token, feature string) (access.Decision, error)
}

// gatePayload тело ответа 403: данные заглушки для клиента.
type gatePayload struct {
	Feature string `json:"feature"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PremiumGateMiddleware создает middleware, пускающее к маршруту только
// premium-пользователей. Остальным возвращается 403 с данными заглушки.
// Ошибка загрузки статуса не блокирует пользователя навсегда: она уже
// деградировала до free-статуса внутри хранилища.
func PremiumGateMiddleware(log *slog.Logger, service AccessService, feature string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.PremiumGateMiddleware"

			identityID, token, ok := IdentityFromContext(r.Context())
			if !ok {
				log.Error("user identification missing", slog.String("op", op))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			decision, err := service.Decide(r.Context(), identityID, token, feature)
			if err != nil {
				log.Error("failed to decide feature access", slog.String("op", op), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if decision.State != access.StateContent {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Response{
					Status: response.StatusError,
					Error:  "premium subscription required",
					Data: gatePayload{
						Feature: feature,
						Title:   decision.Title,
						Message: decision.Message,
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
