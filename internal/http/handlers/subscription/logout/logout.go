// Package logout обрабатывает выход пользователя: кеш статусов не должен
// переживать смену личности.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/baedyl/resume-builder-front-sub000/internal/http/middlewarectx"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/response"
	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
)

// Service определяет интерфейс сброса состояния пользователя.
type Service interface {
	Logout(identityID string)
}

// Handler обрабатывает запросы на выход.
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
// @Summary Выход пользователя
// @Description Выбрасывает кеш статусов подписки текущего пользователя
// @Tags Subscription
// @Produce json
// @Success 200 {object} response.Response "Состояние сброшено"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /logout [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.logout"
	log := h.log.With(slog.String("op", op))

	identityID, _, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	h.service.Logout(identityID)

	log.Info("identity state dropped", sl.Identity(identityID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logged_out": true,
	}))
}
