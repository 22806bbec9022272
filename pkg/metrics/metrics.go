package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_processed_total",
		Help: "Total number of payments processed, by terminal status",
	}, []string{"status"})

	PaymentsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_failed_total",
		Help: "Total number of failed payments, by reason code",
	}, []string{"reason"})

	MandateValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mandate_validation_failures_total",
		Help: "Total number of rejected mandates, by failure kind",
	}, []string{"kind"})

	RefundsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refunds_processed_total",
		Help: "Total number of refunds processed",
	})

	TokensRedeemedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallet_tokens_redeemed_total",
		Help: "Total number of one-time wallet tokens redeemed",
	})

	SettlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_duration_seconds",
		Help:    "Latency of payment settlement, from token resolution to terminal state",
		Buckets: prometheus.DefBuckets,
	})
)
