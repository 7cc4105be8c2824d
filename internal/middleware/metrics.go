package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reconnect_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

// Signups counts accounts created via the API.
var Signups = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reconnect_signups_total",
	Help: "Total number of accounts created",
})

// Logins counts successful logins.
var Logins = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reconnect_logins_total",
	Help: "Total number of successful logins",
})

// FriendRequestsSent counts friend requests created via the API.
var FriendRequestsSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reconnect_friend_requests_sent_total",
	Help: "Total number of friend requests sent",
})

// FriendRequestsAccepted counts friend requests accepted via the API.
var FriendRequestsAccepted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reconnect_friend_requests_accepted_total",
	Help: "Total number of friend requests accepted",
})

// StreamTokensIssued counts chat provider tokens issued, labeled by outcome.
var StreamTokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reconnect_stream_tokens_issued_total",
	Help: "Total number of chat provider tokens issued",
}, []string{"outcome"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware adapts the fiberprometheus middleware into a fiber.Handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
