package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "todo"

// Auth failure reasons. Reasons are recorded server-side only.
const (
	ReasonMissingCredentials = "missing_credentials"
	ReasonMalformedToken     = "malformed_token"
	ReasonInvalidSignature   = "invalid_signature"
	ReasonTokenExpired       = "token_expired"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonForbidden          = "forbidden"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// Auth
	AuthFailuresTotal *prometheus.CounterVec
	AccountEvents     *prometheus.CounterVec
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		AuthFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "failures_total",
				Help:      "Rejected authentication and authorization attempts by reason.",
			},
			[]string{"reason"},
		),
		AccountEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "account_events_total",
				Help:      "Signup and login outcomes.",
			},
			[]string{"event", "result"}, // event=signup|login, result=ok|rejected|error
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.AuthFailuresTotal, p.AccountEvents)

	return p
}

// AuthFailure counts a rejected request. Safe on a nil receiver.
func (p *Prom) AuthFailure(reason string) {
	if p == nil {
		return
	}
	p.AuthFailuresTotal.WithLabelValues(reason).Inc()
}

// AccountEvent counts a signup or login outcome. Safe on a nil receiver.
func (p *Prom) AccountEvent(event, result string) {
	if p == nil {
		return
	}
	p.AccountEvents.WithLabelValues(event, result).Inc()
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
