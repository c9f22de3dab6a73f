// Package metrics counts logger outcomes with Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/mordilloSan/go-logcore/logger"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "logcore"

// ErrPushNotConfigured is returned by Push without a gateway URL.
var ErrPushNotConfigured = errors.New("pushgateway url not configured")

// Observer implements logger.Observer with per-severity counters:
//
//   - <ns>_entries_written_total
//   - <ns>_entries_suppressed_total
//   - <ns>_entries_filtered_total
//   - <ns>_sink_errors_total
//
// Metrics live in a private registry so several loggers never collide.
type Observer struct {
	registry   *prometheus.Registry
	written    *prometheus.CounterVec
	suppressed *prometheus.CounterVec
	filtered   *prometheus.CounterVec
	sinkErrors *prometheus.CounterVec
}

var _ logger.Observer = (*Observer)(nil)

// NewObserver registers the counters under namespace (DefaultNamespace
// when empty).
func NewObserver(namespace string) (*Observer, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help},
			[]string{"severity"},
		)
	}
	o := &Observer{
		registry:   prometheus.NewRegistry(),
		written:    counter("entries_written_total", "Log lines written to the sink."),
		suppressed: counter("entries_suppressed_total", "Repeated entries folded into a pending line."),
		filtered:   counter("entries_filtered_total", "Entries below the minimum severity."),
		sinkErrors: counter("sink_errors_total", "Sink write failures."),
	}
	for _, c := range []prometheus.Collector{o.written, o.suppressed, o.filtered, o.sinkErrors} {
		if err := o.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return o, nil
}

// Written implements logger.Observer.
func (o *Observer) Written(s logger.Severity) { o.written.WithLabelValues(s.String()).Inc() }

// Suppressed implements logger.Observer.
func (o *Observer) Suppressed(s logger.Severity) { o.suppressed.WithLabelValues(s.String()).Inc() }

// Filtered implements logger.Observer.
func (o *Observer) Filtered(s logger.Severity) { o.filtered.WithLabelValues(s.String()).Inc() }

// SinkFailed implements logger.Observer.
func (o *Observer) SinkFailed(s logger.Severity) { o.sinkErrors.WithLabelValues(s.String()).Inc() }

// Registry returns the private registry holding the counters.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler serves the counters in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

// Push sends the counters to a Pushgateway, for short-lived processes that
// are never scraped.
func (o *Observer) Push(ctx context.Context, gatewayURL, job string, timeout time.Duration) error {
	if gatewayURL == "" {
		return ErrPushNotConfigured
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := push.New(gatewayURL, job).Gatherer(o.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
