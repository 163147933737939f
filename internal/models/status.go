// Package models содержит доменные структуры, описывающие биллинговое
// состояние пользователя, получаемое от бэкенда resume-builder.
package models

// PlanType тип тарифного плана пользователя.
type PlanType string

const (
	// PlanFree — бесплатный тариф.
	PlanFree PlanType = "free"
	// PlanPremium — платный тариф.
	PlanPremium PlanType = "premium"
)

// SubscriptionState состояние подписки у платёжного провайдера.
// Пустая строка означает отсутствие подписки (бесплатный тариф).
type SubscriptionState string

const (
	// StateActive — подписка активна.
	StateActive SubscriptionState = "active"
	// StateCanceled — подписка отменена.
	StateCanceled SubscriptionState = "canceled"
	// StatePastDue — просрочен платёж.
	StatePastDue SubscriptionState = "past_due"
	// StateIncomplete — оформление не завершено.
	StateIncomplete SubscriptionState = "incomplete"
)

// SubscriptionStatus представляет состояние биллинга одного пользователя
// на момент запроса. Все даты приходят строками в формате ISO-8601 и
// не парсятся до момента реального использования.
type SubscriptionStatus struct {
	PlanType          PlanType          `json:"planType" validate:"required"` // Тарифный план
	Status            SubscriptionState `json:"subscriptionStatus,omitempty"` // Состояние подписки, пусто для free
	SubscriptionStart string            `json:"subscriptionStart,omitempty"`  // Дата начала подписки
	SubscriptionEnd   string            `json:"subscriptionEnd,omitempty"`    // Дата окончания оплаченного периода
	SubscriptionID    string            `json:"subscriptionId,omitempty"`     // Идентификатор подписки у провайдера
	CancelAtPeriodEnd bool              `json:"cancelAtPeriodEnd,omitempty"`  // Отмена с доступом до конца периода
}

// IsPremium возвращает true только для комбинации premium-плана с активной
// подпиской. Любая другая комбинация, включая premium с отсутствующим
// состоянием, считается бесплатным доступом.
func (s SubscriptionStatus) IsPremium() bool {
	return s.PlanType == PlanPremium && s.Status == StateActive
}

// FreeStatus возвращает статус бесплатного тарифа. Используется как
// безопасное значение по умолчанию при недоступности бэкенда.
func FreeStatus() SubscriptionStatus {
	return SubscriptionStatus{PlanType: PlanFree}
}
