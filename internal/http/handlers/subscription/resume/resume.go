// Package resume обрабатывает возобновление отменённой подписки.
package resume

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/baedyl/resume-builder-front-sub000/internal/http/middlewarectx"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/response"
	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
	"github.com/baedyl/resume-builder-front-sub000/internal/subscription"
)

// Service определяет интерфейс для возобновления подписки.
type Service interface {
	Resume(ctx context.Context, identityID, token string) error
}

// Handler обрабатывает запросы на возобновление подписки.
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
// @Summary Возобновление подписки
// @Description Возобновляет отменённую подписку; кеш статуса сбрасывается при успехе
// @Tags Subscription
// @Produce json
// @Success 200 {object} response.Response "Подписка возобновлена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Возобновление не удалось"
// @Router /subscription/resume [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.resume"
	log := h.log.With(slog.String("op", op))

	identityID, token, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	if err := h.service.Resume(r.Context(), identityID, token); err != nil {
		log.Error("failed to resume subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(subscription.UserMessage(err)))
		return
	}

	log.Info("subscription resumed", sl.Identity(identityID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"resumed": true,
	}))
}
