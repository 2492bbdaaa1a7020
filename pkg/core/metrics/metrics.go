// ============================================================================
// bigmath - Arbitrary-precision function engine
// ============================================================================
//
// Package:     metrics
// Description: Prometheus instrumentation for the function engine: an
//              engine observer, a cache statistics collector and the HTTP
//              handler serving both
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

// Observer implements mathx.Observer on top of prometheus collectors
type Observer struct {
	seriesTerms    *prometheus.HistogramVec
	seriesDuration *prometheus.HistogramVec
	seriesDigits   *prometheus.HistogramVec
	callDuration   *prometheus.HistogramVec
	calls          *prometheus.CounterVec
	errors         *prometheus.CounterVec
}

var _ mathx.Observer = (*Observer)(nil)

// NewObserver creates the engine collectors and registers them with reg
func NewObserver(namespace string, reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		seriesTerms: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "series",
			Name:      "terms",
			Help:      "Number of terms summed per series evaluation",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 12),
		}, []string{"function"}),
		seriesDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "series",
			Name:      "duration_seconds",
			Help:      "Time spent summing one series",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"function"}),
		seriesDigits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "series",
			Name:      "digits",
			Help:      "Working precision of series evaluations",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
		}, []string{"function"}),
		callDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Latency of public engine calls",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"function"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Public engine calls",
		}, []string{"function"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed engine calls by error code",
		}, []string{"function", "code"}),
	}

	for _, c := range []prometheus.Collector{o.seriesTerms, o.seriesDuration, o.seriesDigits, o.callDuration, o.calls, o.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ObserveSeries records one series evaluation
func (o *Observer) ObserveSeries(function string, terms int, digits uint32, d time.Duration) {
	o.seriesTerms.WithLabelValues(function).Observe(float64(terms))
	o.seriesDuration.WithLabelValues(function).Observe(d.Seconds())
	o.seriesDigits.WithLabelValues(function).Observe(float64(digits))
}

// ObserveCall records one public call and its error code, if any
func (o *Observer) ObserveCall(function string, d time.Duration, err error) {
	o.calls.WithLabelValues(function).Inc()
	o.callDuration.WithLabelValues(function).Observe(d.Seconds())
	if err != nil {
		o.errors.WithLabelValues(function, string(bmerror.GetCode(err))).Inc()
	}
}

// StatsCollector exports the cache state of an engine context at scrape
// time
type StatsCollector struct {
	engine       *mathx.EngineContext
	coefficients *prometheus.Desc
	constants    *prometheus.Desc
	factorials   *prometheus.Desc
	calls        *prometheus.Desc
	failures     *prometheus.Desc
}

var _ prometheus.Collector = (*StatsCollector)(nil)

// NewStatsCollector creates a collector for engine
func NewStatsCollector(namespace string, engine *mathx.EngineContext) *StatsCollector {
	constLabels := prometheus.Labels{"context": engine.ID()}
	return &StatsCollector{
		engine: engine,
		coefficients: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "coefficients"),
			"Cached series coefficients per family",
			[]string{"family"}, constLabels),
		constants: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "constant_digits"),
			"Digits held by the constant cache",
			[]string{"constant"}, constLabels),
		factorials: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "factorials"),
			"Cached exact factorials",
			nil, constLabels),
		calls: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "context", "calls_total"),
			"Public calls served by the context",
			nil, constLabels),
		failures: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "context", "failures_total"),
			"Public calls of the context that returned an error",
			nil, constLabels),
	}
}

// Describe implements prometheus.Collector
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.coefficients
	ch <- c.constants
	ch <- c.factorials
	ch <- c.calls
	ch <- c.failures
}

// Collect implements prometheus.Collector
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.engine.Stats()
	for family, n := range stats.Coefficients {
		ch <- prometheus.MustNewConstMetric(c.coefficients, prometheus.GaugeValue, float64(n), string(family))
	}
	for name, digits := range stats.Constants {
		ch <- prometheus.MustNewConstMetric(c.constants, prometheus.GaugeValue, float64(digits), name)
	}
	ch <- prometheus.MustNewConstMetric(c.factorials, prometheus.GaugeValue, float64(stats.Factorials))
	ch <- prometheus.MustNewConstMetric(c.calls, prometheus.CounterValue, float64(stats.Calls))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(stats.Failures))
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// BuildInfo registers a constant gauge carrying version labels
func BuildInfo(namespace, version, commit string, reg prometheus.Registerer) error {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "build_info",
		Help:        "Build information of the running binary",
		ConstLabels: prometheus.Labels{"version": version, "commit": commit},
	})
	g.Set(1)
	return reg.Register(g)
}
