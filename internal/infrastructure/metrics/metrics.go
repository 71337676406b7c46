// Package metrics exposes Prometheus counters for HTTP traffic and domain events.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/christoffels/menu/internal/domain/events"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "menu"

// Subscriber is the part of the event bus the collector listens on
type Subscriber interface {
	Subscribe(eventType events.EventType, handler ports.EventHandler) func()
}

// Collector owns a private registry so tests can create as many as they like
type Collector struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	events        *prometheus.CounterVec
	sessionsSwept prometheus.Counter
}

// New creates a Collector with Go runtime and process collectors registered
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Domain events published on the event bus.",
		}, []string{"type"}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_swept_total",
			Help:      "Expired or revoked sessions purged by the scheduler.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.requests,
		c.duration,
		c.events,
		c.sessionsSwept,
	)
	return c
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records one sample per request, labelled by the matched route
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.requests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Observe subscribes to each event type and returns a function that undoes every subscription
func (c *Collector) Observe(bus Subscriber, types ...events.EventType) func() {
	unsubs := make([]func(), 0, len(types))
	for _, t := range types {
		unsubs = append(unsubs, bus.Subscribe(t, c.countEvent(t)))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// sweptSessions is satisfied by the sweep payload without importing the services package
type sweptSessions interface {
	SweptCount() int
}

func (c *Collector) countEvent(t events.EventType) ports.EventHandler {
	counter := c.events.WithLabelValues(t.String())
	return func(_ context.Context, payload interface{}) error {
		counter.Inc()
		if p, ok := payload.(sweptSessions); ok {
			c.sessionsSwept.Add(float64(p.SweptCount()))
		}
		return nil
	}
}
