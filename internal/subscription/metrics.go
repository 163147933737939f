package subscription

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// statusReads учитывает исходы чтения статуса: hit — ответ из кеша,
// miss — поход в бэкенд, fallback — бэкенд недоступен, отдан free-статус.
var statusReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "subscription_gate",
	Name:      "status_reads_total",
	Help:      "Subscription status reads by outcome.",
}, []string{"outcome"})

const (
	outcomeHit      = "hit"
	outcomeMiss     = "miss"
	outcomeFallback = "fallback"
)
