package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allyoucangym_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "allyoucangym_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allyoucangym_bookings_total",
			Help: "Session booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	UnbookingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "allyoucangym_unbookings_total",
			Help: "Total number of session unbookings",
		},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allyoucangym_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"package"},
	)

	SubscriptionCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "allyoucangym_subscription_cancellations_total",
			Help: "Total number of subscription cancellations",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allyoucangym_payments_total",
			Help: "Checkout attempts by status",
		},
		[]string{"status"},
	)

	PaymentAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "allyoucangym_payment_amount_cents_total",
			Help: "Sum of successful payment amounts in cents",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allyoucangym_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "allyoucangym_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordBooking counts a booking attempt; outcome is "booked", "full",
// "duplicate", "not_found" or "error".
func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordUnbooking() {
	UnbookingsTotal.Inc()
}

func RecordSubscription(packageKey string) {
	SubscriptionsCreatedTotal.WithLabelValues(packageKey).Inc()
}

func RecordSubscriptionCancellation() {
	SubscriptionCancellationsTotal.Inc()
}

func RecordPayment(status string, amountCents int64) {
	PaymentsTotal.WithLabelValues(status).Inc()
	if status == "success" && amountCents > 0 {
		PaymentAmountTotal.Add(float64(amountCents))
	}
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}
