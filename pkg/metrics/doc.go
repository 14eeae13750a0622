// Package metrics provides Prometheus instrumentation for seqflow components.
//
// This package enables monitoring of sequence pipelines and push bridges
// through Prometheus metrics, without changing the way either is consumed.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Sequence iteration (items pulled, errors surfaced, clean completions)
//   - Bridges (values emitted, values dropped by coalescing, values delivered)
//
// # Quick Start
//
// Wrap a sequence with the default registry:
//
//	seq := sequence.FromSlice([]int{1, 2, 3})
//	instrumented := metrics.InstrumentSequence(metrics.DefaultRegistry, "orders", seq)
//
//	// Consume as usual; counters update as values flow.
//	values, _ := sequence.ToSlice(ctx, instrumented)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Instrumented Bridges
//
// InstrumentBridge builds a bridge whose producer and consumer activity
// is counted, including values discarded by coalescing:
//
//	b := metrics.InstrumentBridge(metrics.DefaultRegistry, "sensor",
//		bridge.Config[float64]{Capacity: 1})
//
//	b.Emit(42.5)
//	values, _ := sequence.ToSlice(ctx, b.Sequence())
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	reg := metrics.NewRegistry(registry)
//	instrumented := metrics.InstrumentSequence(reg, "orders", seq)
//
// Or build one from a Config, which also supports disabling export and
// overriding the metric namespace:
//
//	reg := metrics.NewRegistryWithConfig(metrics.Config{
//		Enabled:   true,
//		Namespace: "myapp",
//	})
//
// # Available Metrics
//
// ## Sequence Metrics
//
//   - seqflow_sequence_items_total: Total number of values pulled through a sequence
//   - seqflow_sequence_errors_total: Total number of errors surfaced by a sequence
//   - seqflow_sequence_completed_total: Total number of iterations driven to a clean end
//
// ## Bridge Metrics
//
//   - seqflow_bridge_emitted_total: Total number of values emitted into a bridge
//   - seqflow_bridge_dropped_total: Total number of values discarded by bridge coalescing
//   - seqflow_bridge_delivered_total: Total number of values pulled out of a bridge
//
// All metrics carry a sequence_name or bridge_name label so multiple
// pipelines can share one registry.
//
// # Performance
//
// Metrics collection is designed for minimal overhead:
//   - Counters are updated only as values flow
//   - No background goroutines or timers
//   - Label values are resolved once per instrumented component
package metrics
