package selectors

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/on-the-ground/select_ive_go/selectors")

var (
	readHits     metric.Int64Counter
	readMisses   metric.Int64Counter
	resultReuses metric.Int64Counter
	instances    metric.Int64Counter
	evictions    metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the counters against whichever meter provider is
// installed. Safe to call on every read; without a provider the counters are
// no-ops.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		readHits, err = meter.Int64Counter(
			"selector_read_hits_total",
			metric.WithDescription("Reads answered from unchanged dependencies without recomputing"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		readMisses, err = meter.Int64Counter(
			"selector_read_misses_total",
			metric.WithDescription("Reads that invoked the combiner"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		resultReuses, err = meter.Int64Counter(
			"selector_result_reuses_total",
			metric.WithDescription("Recomputed results collapsed onto the previous value by equality"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		instances, err = meter.Int64Counter(
			"selector_instances_total",
			metric.WithDescription("Memoized instances created for distinct argument sets"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		evictions, err = meter.Int64Counter(
			"selector_evictions_total",
			metric.WithDescription("Instances evicted from bounded stores"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordReadHit(name string) {
	if initMetrics() != nil {
		return
	}
	readHits.Add(context.Background(), 1, metric.WithAttributes(attribute.String("selector", name)))
}

func recordReadMiss(name string) {
	if initMetrics() != nil {
		return
	}
	readMisses.Add(context.Background(), 1, metric.WithAttributes(attribute.String("selector", name)))
}

func recordResultReuse(name string) {
	if initMetrics() != nil {
		return
	}
	resultReuses.Add(context.Background(), 1, metric.WithAttributes(attribute.String("selector", name)))
}

func recordInstance(name string) {
	if initMetrics() != nil {
		return
	}
	instances.Add(context.Background(), 1, metric.WithAttributes(attribute.String("selector", name)))
}

func recordEviction(name string) {
	if initMetrics() != nil {
		return
	}
	evictions.Add(context.Background(), 1, metric.WithAttributes(attribute.String("selector", name)))
}
