// Package metrics exposes batch telemetry as Prometheus metrics and samples
// process memory for the interactive dashboard. Metrics are exported to a
// node_exporter textfile after each batch; there is no HTTP listener.
package metrics
