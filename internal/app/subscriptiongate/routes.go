// Package subscriptiongate предоставляет маршруты шлюза подписок.
package subscriptiongate

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/baedyl/resume-builder-front-sub000/internal/http/handlers/subscription/cancel"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/handlers/subscription/checkout"
	gatehandler "github.com/baedyl/resume-builder-front-sub000/internal/http/handlers/subscription/gate"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/handlers/subscription/health"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/handlers/subscription/logout"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/handlers/subscription/resume"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/handlers/subscription/status"
	"github.com/baedyl/resume-builder-front-sub000/internal/http/middlewarectx"
	gateservice "github.com/baedyl/resume-builder-front-sub000/internal/services/gate"
)

// RegisterRoutes регистрирует все маршруты шлюза.
func RegisterRoutes(r chi.Router, logger *slog.Logger, service *gateservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с идентификацией по bearer-токену
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.IdentityMiddleware(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/subscription", status.New(logger, service).ServeHTTP)
			r.Post("/subscription/checkout", checkout.New(logger, service).ServeHTTP)
			r.Post("/subscription/cancel", cancel.New(logger, service).ServeHTTP)
			r.Post("/subscription/resume", resume.New(logger, service).ServeHTTP)
			r.Get("/gate/{feature}", gatehandler.New(logger, service).ServeHTTP)
			r.Post("/logout", logout.New(logger, service).ServeHTTP)

			// Жёсткая проверка для premium-маршрутов фронтенда
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.PremiumGateMiddleware(logger, service, "premium-features"))
				r.Get("/premium/verify", health.New(logger).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
