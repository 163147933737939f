// Package cancel обрабатывает отмену подписки текущего пользователя.
package cancel

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

// Service определяет интерфейс для отмены подписки.
type Service interface {
	Cancel(ctx context.Context, identityID, token string) error
}

// Handler обрабатывает запросы на отмену подписки.
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
// @Summary Отмена подписки
// @Description Отменяет подписку; кеш статуса сбрасывается при успехе
// @Tags Subscription
// @Produce json
// @Success 200 {object} response.Response "Подписка отменена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Отмена не удалась"
// @Router /subscription/cancel [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.cancel"
	log := h.log.With(slog.String("op", op))

	identityID, token, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	if err := h.service.Cancel(r.Context(), identityID, token); err != nil {
		log.Error("failed to cancel subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(subscription.UserMessage(err)))
		return
	}

	log.Info("subscription canceled", sl.Identity(identityID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"canceled": true,
	}))
}
