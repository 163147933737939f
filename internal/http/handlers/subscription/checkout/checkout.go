// Package checkout обрабатывает запуск перехода на оплату premium-тарифа.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/baedyl/resume-builder-front-sub000/internal/http/middlewarectx"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/response"
	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
	"github.com/baedyl/resume-builder-front-sub000/internal/subscription"
)

// Request представляет запрос на создание checkout-перехода.
// Пустой price_id означает настроенную цену premium-тарифа.
type Request struct {
	PriceID string `json:"price_id" validate:"omitempty,startswith=price_"`
}

// Service определяет интерфейс для запуска checkout.
type Service interface {
	Checkout(ctx context.Context, identityID, token, priceID string) (string, error)
}

// Handler обрабатывает запросы на переход к оплате.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переход к оплате
// @Description Создает checkout-сессию и возвращает URL hosted-checkout страницы
// @Tags Subscription
// @Accept json
// @Produce json
// @Param request body Request false "Цена premium-тарифа"
// @Success 200 {object} response.Response "URL для перехода на оплату"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Некорректный идентификатор цены"
// @Failure 502 {object} response.ErrorResponse "Отказ платёжного провайдера"
// @Router /subscription/checkout [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkout"
	log := h.log.With(slog.String("op", op))

	identityID, token, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	url, err := h.service.Checkout(r.Context(), identityID, token, req.PriceID)
	if err != nil {
		log.Error("failed to start checkout", sl.Err(err))
		w.WriteHeader(statusForError(err))
		render.JSON(w, r, response.Error(subscription.UserMessage(err)))
		return
	}

	log.Info("checkout redirect initiated", sl.Identity(identityID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"url": url,
	}))
}

// statusForError переводит типизированные ошибки checkout в HTTP-статусы.
func statusForError(err error) int {
	switch {
	case errors.Is(err, subscription.ErrInvalidPriceID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, subscription.ErrInvalidPriceConfiguration),
		errors.Is(err, subscription.ErrInvalidResponse),
		errors.Is(err, subscription.ErrCheckoutRedirectFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
