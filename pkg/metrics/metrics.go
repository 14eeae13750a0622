// Package metrics provides Prometheus instrumentation for seqflow
// components.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vnykmshr/seqflow/pkg/bridge"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Registry holds all metric instances for seqflow components.
type Registry struct {
	// Sequence metrics
	SequenceItems     *prometheus.CounterVec
	SequenceErrors    *prometheus.CounterVec
	SequenceCompleted *prometheus.CounterVec

	// Bridge metrics
	BridgeEmitted   *prometheus.CounterVec
	BridgeDropped   *prometheus.CounterVec
	BridgeDelivered *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by seqflow
// components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus
// registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, "seqflow")
}

// NewRegistryWithConfig creates a metrics registry from a Config. When
// collection is disabled the counters are registered against a private
// registry so they update without being exported anywhere.
func NewRegistryWithConfig(config Config) *Registry {
	namespace := config.Namespace
	if namespace == "" {
		namespace = "seqflow"
	}
	registerer := config.Registry
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if !config.Enabled {
		registerer = prometheus.NewRegistry()
	}
	return newRegistry(registerer, namespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		SequenceItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "items_total",
				Help:      "Total number of values pulled through a sequence",
			},
			[]string{"sequence_name"},
		),

		SequenceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "errors_total",
				Help:      "Total number of errors surfaced by a sequence",
			},
			[]string{"sequence_name"},
		),

		SequenceCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "completed_total",
				Help:      "Total number of iterations driven to a clean end",
			},
			[]string{"sequence_name"},
		),

		BridgeEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bridge",
				Name:      "emitted_total",
				Help:      "Total number of values emitted into a bridge",
			},
			[]string{"bridge_name"},
		),

		BridgeDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bridge",
				Name:      "dropped_total",
				Help:      "Total number of values discarded by bridge coalescing",
			},
			[]string{"bridge_name"},
		),

		BridgeDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bridge",
				Name:      "delivered_total",
				Help:      "Total number of values pulled out of a bridge",
			},
			[]string{"bridge_name"},
		),
	}
}

// InstrumentSequence wraps seq so every iteration reports items,
// errors, and clean completions to the registry under the given name.
func InstrumentSequence[T any](reg *Registry, name string, seq sequence.Sequence[T]) sequence.Sequence[T] {
	items := reg.SequenceItems.WithLabelValues(name)
	errs := reg.SequenceErrors.WithLabelValues(name)
	completed := reg.SequenceCompleted.WithLabelValues(name)

	return sequence.FromFactory(func() sequence.Iterator[T] {
		upstream := seq.Iterator()
		return sequence.NextFunc[T](func(ctx context.Context) (T, bool, error) {
			value, ok, err := upstream.Next(ctx)
			switch {
			case err != nil:
				errs.Inc()
			case ok:
				items.Inc()
			default:
				completed.Inc()
			}
			return value, ok, err
		})
	})
}

// InstrumentedBridge wraps a Bridge so its emit, drop, and delivery
// activity reports to a Registry.
type InstrumentedBridge[T any] struct {
	bridge    *bridge.Bridge[T]
	emitted   prometheus.Counter
	delivered prometheus.Counter
}

// InstrumentBridge creates a bridge whose activity reports to the
// registry under the given name. Drops are counted through the
// bridge's drop hook; any hook already set in config still runs.
func InstrumentBridge[T any](reg *Registry, name string, config bridge.Config[T]) *InstrumentedBridge[T] {
	dropped := reg.BridgeDropped.WithLabelValues(name)
	prev := config.OnDrop
	config.OnDrop = func(value T) {
		dropped.Inc()
		if prev != nil {
			prev(value)
		}
	}

	return &InstrumentedBridge[T]{
		bridge:    bridge.NewWithConfig(config),
		emitted:   reg.BridgeEmitted.WithLabelValues(name),
		delivered: reg.BridgeDelivered.WithLabelValues(name),
	}
}

// Emit forwards a value to the underlying bridge, counting accepted
// emissions.
func (b *InstrumentedBridge[T]) Emit(value T) error {
	if err := b.bridge.Emit(value); err != nil {
		return err
	}
	b.emitted.Inc()
	return nil
}

// Complete marks the underlying bridge as cleanly finished.
func (b *InstrumentedBridge[T]) Complete() {
	b.bridge.Complete()
}

// Fail marks the underlying bridge as failed with the given error.
func (b *InstrumentedBridge[T]) Fail(err error) {
	b.bridge.Fail(err)
}

// Stats returns the underlying bridge's counters.
func (b *InstrumentedBridge[T]) Stats() bridge.Stats {
	return b.bridge.Stats()
}

// Sequence returns the consumer side of the bridge with every
// delivered value counted.
func (b *InstrumentedBridge[T]) Sequence() sequence.Sequence[T] {
	seq := b.bridge.Sequence()
	return sequence.FromFactory(func() sequence.Iterator[T] {
		upstream := seq.Iterator()
		return sequence.NextFunc[T](func(ctx context.Context) (T, bool, error) {
			value, ok, err := upstream.Next(ctx)
			if err == nil && ok {
				b.delivered.Inc()
			}
			return value, ok, err
		})
	})
}
