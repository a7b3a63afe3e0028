// Package metrics owns the prometheus collectors of the service.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"signupservice/internal/domain"
	"signupservice/internal/domain/activity"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "signup_service",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	activityEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "directory",
		Name:      "events_total",
		Help:      "Successful sign-ups and unregistrations by event type.",
	}, []string{"type"})

	participants = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "directory",
		Name:      "participants",
		Help:      "Current number of participants per activity.",
	}, []string{"activity"})

	capacity = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "directory",
		Name:      "max_participants",
		Help:      "Advertised capacity per activity.",
	}, []string{"activity"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, activityEvents, participants, capacity)
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveDirectory sets the per-activity gauges from a full listing.
func ObserveDirectory(list []activity.Activity) {
	for _, a := range list {
		participants.WithLabelValues(a.Name).Set(float64(len(a.Participants)))
		capacity.WithLabelValues(a.Name).Set(float64(a.MaxParticipants))
	}
}

// EventSink updates directory metrics from domain events.
type EventSink struct{}

func (EventSink) Name() string { return "metrics" }

func (EventSink) Handle(_ context.Context, e domain.Event) error {
	activityEvents.WithLabelValues(e.Type).Inc()

	name, ok := e.Payload["activity"].(string)
	if !ok {
		return nil
	}
	if n, ok := e.Payload["participants"].(int); ok {
		participants.WithLabelValues(name).Set(float64(n))
	}
	if n, ok := e.Payload["max_participants"].(int); ok {
		capacity.WithLabelValues(name).Set(float64(n))
	}
	return nil
}
