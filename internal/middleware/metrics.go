package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiredev_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MailSendFailures counts verification emails that could not be delivered.
	MailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hiredev_mail_send_failures_total",
		Help: "Total number of failed email deliveries",
	})

	// StorageUploadFailures counts object uploads rejected by the storage backend.
	StorageUploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hiredev_storage_upload_failures_total",
		Help: "Total number of failed object storage uploads",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
