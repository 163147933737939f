// Package access решает, показывать ли пользователю premium-функцию:
// контент целиком, затемнённое превью с предложением апгрейда или
// жёсткую заглушку для истёкшей подписки.
package access

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/baedyl/resume-builder-front-sub000/internal/lib/sl"
	"github.com/baedyl/resume-builder-front-sub000/internal/models"
)

// DefaultGateTitle заголовок заглушки по умолчанию.
const DefaultGateTitle = "Premium Feature"

// GateReason явная причина показа заглушки, передаваемая вызывающим кодом.
type GateReason int

const (
	// ReasonUnset — причина не указана, действует старое определение
	// по подстроке "expired" в заголовке или сообщении.
	ReasonUnset GateReason = iota
	// ReasonNotSubscribed — у пользователя нет подписки.
	ReasonNotSubscribed
	// ReasonExpired — подписка истекла, продление только через checkout.
	ReasonExpired
	// ReasonForced — заглушка включена принудительно.
	ReasonForced
)

// State результат решения контроллера.
type State int

const (
	// StateLoading — статус ещё не загружен, показываем индикатор.
	StateLoading State = iota
	// StateContent — premium-пользователь, контент без ограничений.
	StateContent
	// StateGated — контент закрыт заглушкой.
	StateGated
)

// ActionKind вид действия основной кнопки заглушки.
type ActionKind int

const (
	// ActionNavigate — переход по настроенному URL.
	ActionNavigate ActionKind = iota
	// ActionCheckout — переход на hosted-checkout страницу.
	ActionCheckout
)

// Action описывает, куда увести пользователя по нажатию кнопки.
type Action struct {
	Kind ActionKind
	URL  string
}

// Decision описывает, что именно рендерить.
type Decision struct {
	State       State
	Preview     bool   // Показывать ли затемнённое превью под заглушкой
	Title       string // Заголовок заглушки
	Message     string // Сообщение заглушки
	Description string // Дополнительное описание функции
}

// Config конфигурация контроллера для одной защищаемой функции.
type Config struct {
	Feature     string     // Название функции для текстов заглушки
	Description string     // Дополнительное описание (опционально)
	ShowPreview bool       // Показывать превью контента под заглушкой
	ForceGate   bool       // Принудительная заглушка независимо от статуса
	GateTitle   string     // Переопределение заголовка
	GateMessage string     // Переопределение сообщения
	UpgradeURL  string     // Прямой URL апгрейда вместо checkout
	Reason      GateReason // Явная причина заглушки
	PriceID     string     // Цена для checkout-потока
}

// NewConfig возвращает конфигурацию с включённым превью — значение
// по умолчанию из оригинального интерфейса.
func NewConfig(feature, priceID string) Config {
	return Config{
		Feature:     feature,
		PriceID:     priceID,
		ShowPreview: true,
	}
}

// Store определяет методы хранилища статусов, используемые контроллером.
type Store interface {
	// Peek возвращает закешированный статус без сетевого вызова.
	Peek() (models.SubscriptionStatus, bool)
	// GetStatus возвращает статус, при необходимости загружая его.
	GetStatus(ctx context.Context, forceRefresh bool) models.SubscriptionStatus
	// RedirectToCheckout инициирует переход на оплату.
	RedirectToCheckout(ctx context.Context, priceID string) (string, error)
}

// Controller принимает решение о показе premium-контента и запускает
// апгрейд. Не хранит ничего, кроме флага незавершённого checkout.
type Controller struct {
	store Store
	cfg   Config
	log   *slog.Logger

	mu        sync.Mutex
	upgrading bool
}

// New создает контроллер для одной защищаемой функции.
func New(store Store, cfg Config, log *slog.Logger) *Controller {
	return &Controller{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Refresh загружает статус подписки. Вызывается на «жизненных событиях»:
// создание контроллера, смена пользователя.
func (c *Controller) Refresh(ctx context.Context) {
	c.store.GetStatus(ctx, false)
}

// Decide возвращает решение для текущего рендера. Порядок проверок:
// статус не загружен -> индикатор загрузки; premium без ForceGate ->
// контент; иначе заглушка.
func (c *Controller) Decide() Decision {
	status, loaded := c.store.Peek()
	if !loaded {
		return Decision{State: StateLoading}
	}

	if status.IsPremium() && !c.cfg.ForceGate {
		return Decision{State: StateContent}
	}

	title := c.cfg.GateTitle
	if title == "" {
		title = DefaultGateTitle
	}
	message := c.cfg.GateMessage
	if message == "" {
		message = c.cfg.Feature + " is available on the premium plan. Upgrade to unlock it."
	}

	return Decision{
		State:       StateGated,
		Preview:     c.cfg.ShowPreview,
		Title:       title,
		Message:     message,
		Description: c.cfg.Description,
	}
}

// expiredContext сообщает, что заглушка показана из-за истёкшей подписки.
// Явная причина имеет приоритет; при её отсутствии сохраняется старое
// поведение с поиском слова "expired" в текстах заглушки.
func (c *Controller) expiredContext() bool {
	if c.cfg.Reason != ReasonUnset {
		return c.cfg.Reason == ReasonExpired
	}
	if !c.cfg.ForceGate {
		return false
	}
	title := strings.ToLower(c.cfg.GateTitle)
	message := strings.ToLower(c.cfg.GateMessage)
	return strings.Contains(title, "expired") || strings.Contains(message, "expired")
}

// PrimaryAction выполняет действие основной кнопки заглушки. Для истёкшей
// подписки всегда запускается checkout: продление не может идти через
// произвольный UpgradeURL. Ошибка пригодна для показа пользователю через
// subscription.UserMessage; после неё кнопка снова активна.
func (c *Controller) PrimaryAction(ctx context.Context) (Action, error) {
	if !c.expiredContext() && c.cfg.UpgradeURL != "" {
		return Action{Kind: ActionNavigate, URL: c.cfg.UpgradeURL}, nil
	}
	return c.startCheckout(ctx)
}

func (c *Controller) startCheckout(ctx context.Context) (Action, error) {
	const op = "access.startCheckout"

	c.mu.Lock()
	c.upgrading = true
	c.mu.Unlock()

	url, err := c.store.RedirectToCheckout(ctx, c.cfg.PriceID)
	if err != nil {
		c.log.Error("checkout initiation failed", slog.String("op", op), sl.Err(err))
		c.mu.Lock()
		c.upgrading = false
		c.mu.Unlock()
		return Action{}, err
	}

	// Флаг не сбрасываем: успешный вызов означает уход со страницы.
	return Action{Kind: ActionCheckout, URL: url}, nil
}

// Upgrading возвращает true, пока идёт незавершённый checkout-переход.
func (c *Controller) Upgrading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.upgrading
}
