// Package gate обрабатывает запросы маршрутных guard'ов фронтенда:
// по названию функции возвращает решение — контент или заглушка.
package gate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/baedyl/resume-builder-front-sub000/internal/access"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/middlewarectx"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/response"
	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
)

// Service определяет интерфейс для принятия решения о доступе.
type Service interface {
	Decide(ctx context.Context, identityID, token, feature string) (access.Decision, error)
}

// Handler обрабатывает запросы решения о доступе к функции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Решение о доступе к функции
// @Description Возвращает, показывать ли функцию, превью с заглушкой или заглушку без превью
// @Tags Subscription
// @Produce json
// @Param feature path string true "Название защищаемой функции"
// @Success 200 {object} response.Response "Решение о доступе"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /gate/{feature} [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.gate"
	log := h.log.With(slog.String("op", op))

	identityID, token, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	feature := chi.URLParam(r, "feature")
	if feature == "" {
		log.Error("feature name missing in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("feature name is required"))
		return
	}

	decision, err := h.service.Decide(r.Context(), identityID, token, feature)
	if err != nil {
		log.Error("failed to decide feature access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"allowed": decision.State == access.StateContent,
		"preview": decision.Preview,
		"title":   decision.Title,
		"message": decision.Message,
	}))
}
