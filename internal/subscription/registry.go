package subscription

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/baedyl/resume-builder-front-sub000/internal/backend"
	"github.com/baedyl/resume-builder-front-sub000/internal/identity"
)

// Registry управляет жизненным циклом хранилищ статусов: по одному Store
// на пользователя, создаваемому лениво при первом обращении. Конкурентные
// запросы одного пользователя делят общий кеш и общий in-flight запрос.
type Registry struct {
	providerClient ProviderClient
	backendURL     string
	backendTimeout time.Duration
	statusTTL      time.Duration
	fallbackTTL    time.Duration
	log            *slog.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	store  *Store
	tokens *identity.RefreshableTokenSource
}

// NewRegistry создает Registry. Возвращает ошибку при пустом адресе
// бэкенда или отсутствующем клиенте провайдера.
func NewRegistry(providerClient ProviderClient, backendURL string, backendTimeout, statusTTL, fallbackTTL time.Duration, log *slog.Logger) (*Registry, error) {
	if providerClient == nil {
		return nil, fmt.Errorf("subscription.NewRegistry: provider client is required")
	}
	if backendURL == "" {
		return nil, fmt.Errorf("subscription.NewRegistry: backend URL is not configured")
	}
	return &Registry{
		providerClient: providerClient,
		backendURL:     backendURL,
		backendTimeout: backendTimeout,
		statusTTL:      statusTTL,
		fallbackTTL:    fallbackTTL,
		log:            log,
		entries:        make(map[string]*registryEntry),
	}, nil
}

// Acquire возвращает Store для пользователя, создавая его при первом
// обращении, и запоминает свежий bearer-токен для запросов к бэкенду.
func (r *Registry) Acquire(identityID, token string) (*Store, error) {
	const op = "subscription.Registry.Acquire"

	if identityID == "" {
		return nil, fmt.Errorf("%s: identity id is required", op)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[identityID]; ok {
		entry.tokens.Set(token)
		return entry.store, nil
	}

	tokens := identity.NewRefreshableTokenSource(token)
	backendClient, err := backend.NewClient(r.backendURL, r.backendTimeout, tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	store, err := New(backendClient, r.providerClient, identityID, r.statusTTL, r.fallbackTTL, r.log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.entries[identityID] = &registryEntry{store: store, tokens: tokens}
	return store, nil
}

// Drop выбрасывает Store пользователя, предварительно сбросив его кеш.
// Вызывается при логауте или смене пользователя; ответы незавершённых
// запросов старого пользователя в кеш уже не попадут.
func (r *Registry) Drop(identityID string) {
	r.mu.Lock()
	entry, ok := r.entries[identityID]
	delete(r.entries, identityID)
	r.mu.Unlock()

	if ok {
		entry.store.Invalidate()
	}
}
