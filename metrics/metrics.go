// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/ballot-kiosk/event"
)

// Metrics holds the kiosk's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	ScansTotal        *prometheus.CounterVec
	ScanErrorsTotal   *prometheus.CounterVec
	ScreenChanges     *prometheus.CounterVec
	AdminOpensTotal   prometheus.Counter
	AdminUnlocksTotal prometheus.Counter
	StatsResetsTotal  prometheus.Counter
	HelpRequestsTotal *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New creates and registers every collector, plus the Go runtime and
// process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ScansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiosk_scans_total",
				Help: "Completed ballot scans by outcome and origin (kiosk or api)",
			},
			[]string{"result", "source"},
		),
		ScanErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiosk_scan_errors_total",
				Help: "Scans that ended in an error, by error type",
			},
			[]string{"error_type"},
		),
		ScreenChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiosk_screen_transitions_total",
				Help: "Screen transitions of the kiosk controller",
			},
			[]string{"from", "to"},
		),
		AdminOpensTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kiosk_admin_panel_opens_total",
				Help: "Times the hidden admin panel was opened",
			},
		),
		AdminUnlocksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kiosk_admin_unlocks_total",
				Help: "Admin panel unlocks with the correct PIN",
			},
		),
		StatsResetsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kiosk_stats_resets_total",
				Help: "Statistics resets",
			},
		),
		HelpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiosk_help_requests_total",
				Help: "Voter requests for poll workers or the election commission",
			},
			[]string{"event"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ScansTotal,
		m.ScanErrorsTotal,
		m.ScreenChanges,
		m.AdminOpensTotal,
		m.AdminUnlocksTotal,
		m.StatsResetsTotal,
		m.HelpRequestsTotal,
		m.HTTPRequestsTotal,
		m.HTTPDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Subscribe counts kiosk events as they pass through the bus, and exposes
// the events the bus had to drop
func (m *Metrics) Subscribe(bus *event.Bus) {
	event.On(bus, m.onScan)
	event.On(bus, func(_ event.Event, c event.ScreenChange) {
		m.ScreenChanges.WithLabelValues(c.From, c.To).Inc()
	})
	event.On(bus, func(event.Event, event.AdminOpen) { m.AdminOpensTotal.Inc() })
	event.On(bus, func(event.Event, event.AdminUnlock) { m.AdminUnlocksTotal.Inc() })
	event.On(bus, func(event.Event, event.Reset) { m.StatsResetsTotal.Inc() })
	event.On(bus, func(_ event.Event, h event.HelpRequest) {
		m.HelpRequestsTotal.WithLabelValues(h.Event).Inc()
	})

	m.registry.MustRegister(prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "kiosk_events_dropped_total",
			Help: "Events discarded because the event bus buffer was full",
		},
		func() float64 { return float64(bus.Dropped()) },
	))
}

func (m *Metrics) onScan(_ event.Event, s event.ScanOutcome) {
	m.ScansTotal.WithLabelValues(s.Result, s.Source).Inc()
	if s.ErrorType != "" {
		m.ScanErrorsTotal.WithLabelValues(s.ErrorType).Inc()
	}
}
