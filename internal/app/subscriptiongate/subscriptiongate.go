package subscriptiongate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/baedyl/resume-builder-front-sub000/internal/config"
	"github.com/baedyl/resume-builder-front-sub000/internal/paymentprovider"
	gateservice "github.com/baedyl/resume-builder-front-sub000/internal/services/gate"
	"github.com/baedyl/resume-builder-front-sub000/internal/subscription"
)

type App struct {
	server *http.Server
	logger *slog.Logger
}

// New собирает приложение: клиент провайдера, реестр хранилищ статусов,
// сервис шлюза и HTTP-сервер. Возвращает ошибку при неполной конфигурации.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	providerClient, err := paymentprovider.NewClient(cfg.PublicKey, cfg.CheckoutURL)
	if err != nil {
		return nil, err
	}

	registry, err := subscription.NewRegistry(
		providerClient,
		cfg.BaseURL,
		cfg.TimeoutAPI,
		cfg.StatusTTL,
		cfg.FallbackTTL,
		logger,
	)
	if err != nil {
		return nil, err
	}

	service := gateservice.New(registry, cfg.PriceID, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, service)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
